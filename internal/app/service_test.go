package service_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	service "github.com/sprinflow/indices/internal/app"
	"github.com/sprinflow/indices/internal/domain/model"
	"github.com/sprinflow/indices/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

var testNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newStartedService(t *testing.T) *service.Service {
	t.Helper()
	svc := service.New(
		service.WithClock(func() time.Time { return testNow.Add(9 * time.Hour) }),
		service.WithMinCalibrationDays(7),
		service.WithWindows(30, 90),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("failed to start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

// seedAthlete loads a calibrated athlete: 61 tracked days, a full sleep
// week, steady training, one body-composition sample and squat records
// inside both evolution windows.
func seedAthlete(t *testing.T, svc *service.Service, id string) {
	t.Helper()
	ctx := context.Background()

	bf := 12.0
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	must(svc.RecordPersonalRecord(ctx, id, model.PersonalRecord{
		ExerciseID: "back_squat", Value: 170, RecordedAt: testNow.AddDate(0, 0, -60),
	}))
	must(svc.RecordPersonalRecord(ctx, id, model.PersonalRecord{
		ExerciseID: "back_squat", Value: 180, RecordedAt: testNow.AddDate(0, 0, -10),
	}))
	must(svc.RecordBodyComposition(ctx, id, model.BodyComposition{
		Date: testNow.AddDate(0, 0, -1), WeightKG: 80, BodyFatPct: &bf,
	}))
	for i := 0; i < 7; i++ {
		must(svc.RecordSleep(ctx, id, model.SleepEntry{
			Date: testNow.AddDate(0, 0, -i), DurationHours: 8, Quality: 4,
		}))
	}
	for i := 0; i < 28; i++ {
		must(svc.RecordTrainingSession(ctx, id, model.TrainingSession{
			Date: testNow.AddDate(0, 0, -i), DurationMin: 60, RPE: 6,
		}))
	}
}

func TestService(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := newStartedService(t)

		Convey("When scoring an athlete nobody has heard of", func() {
			_, err := svc.Scores(ctx, "ghost")

			Convey("Then the unknown-athlete kind is returned", func() {
				So(err, ShouldWrap, service.ErrUnknownAthlete)
			})
		})

		Convey("When scoring a fully seeded athlete", func() {
			seedAthlete(t, svc, "a1")
			env, err := svc.Scores(ctx, "a1")

			Convey("Then all three indices come back", func() {
				So(err, ShouldBeNil)

				// squat ratio 2.25 scores 90; only category present.
				So(env.IndicePoidsPuissance.ScoreForce, ShouldNotBeNil)
				So(*env.IndicePoidsPuissance.ScoreForce, ShouldEqual, 90)
				// body fat 12% scores 95.
				So(*env.IndicePoidsPuissance.ScoreCompo, ShouldEqual, 95)
				So(*env.IndicePoidsPuissance.Indice, ShouldEqual, 92)

				// 180 now vs 170 peak.
				So(env.ScoreEvolution.Indice, ShouldNotBeNil)
				So(*env.ScoreEvolution.Indice, ShouldEqual, 106)

				// sleep 94, load 100, perf capped at 100.
				So(env.ScoreForme.Calibration, ShouldBeFalse)
				So(env.ScoreForme.Score, ShouldNotBeNil)
				So(*env.ScoreForme.Score, ShouldEqual, 97)
			})
		})

		Convey("When the same athlete is scored twice on the same day", func() {
			seedAthlete(t, svc, "a2")
			first, err1 := svc.Scores(ctx, "a2")
			second, err2 := svc.Scores(ctx, "a2")

			Convey("Then the envelopes are byte-identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				b1, _ := json.Marshal(first)
				b2, _ := json.Marshal(second)
				So(string(b1), ShouldEqual, string(b2))
			})
		})

		Convey("When new data arrives between two reads", func() {
			seedAthlete(t, svc, "a3")
			before, err := svc.Scores(ctx, "a3")
			So(err, ShouldBeNil)

			// A rough night relogged over today's entry.
			So(svc.RecordSleep(ctx, "a3", model.SleepEntry{
				Date: testNow, DurationHours: 4, Quality: 1,
			}), ShouldBeNil)
			after, err := svc.Scores(ctx, "a3")

			Convey("Then the cached envelope is not served stale", func() {
				So(err, ShouldBeNil)
				So(*after.ScoreForme.Score, ShouldBeLessThan, *before.ScoreForme.Score)
			})
		})

		Convey("When an athlete has a profile but no measurements", func() {
			height := 180.0
			So(svc.UpsertProfile(ctx, "a4", model.Profile{HeightCM: &height}), ShouldBeNil)
			env, err := svc.Scores(ctx, "a4")

			Convey("Then scoring succeeds with null indices", func() {
				So(err, ShouldBeNil)
				So(env.IndicePoidsPuissance.Indice, ShouldBeNil)
				So(env.ScoreEvolution.Indice, ShouldBeNil)
				So(env.ScoreForme.Calibration, ShouldBeTrue)
			})
		})

		Convey("When a sample violates the input contract", func() {
			err := svc.RecordSleep(ctx, "a5", model.SleepEntry{
				Date: testNow, DurationHours: 30, Quality: 3,
			})

			Convey("Then the error propagates to the caller", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When stats are requested", func() {
			seedAthlete(t, svc, "a6")
			stats := svc.GetStats()

			Convey("Then the operational counters are present", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["athletes"], ShouldNotBeNil)
				So(stats["benchmarks"], ShouldNotBeNil)
				So(stats["cacheEntries"], ShouldNotBeNil)
			})
		})

		Convey("When the benchmark table is listed", func() {
			entries := svc.Benchmarks(ctx)

			Convey("Then the default table comes back ordered", func() {
				So(len(entries), ShouldEqual, 8)
				So(entries[0].ExerciseID, ShouldBeLessThan, entries[1].ExerciseID)
			})
		})
	})
}
