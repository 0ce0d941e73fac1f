package repository_test

import (
	"context"
	"testing"
	"time"

	repository "github.com/sprinflow/indices/internal/adapters/repository"
	"github.com/sprinflow/indices/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func day(offset int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		store := repository.NewMemStore()

		Convey("When reading an unknown athlete", func() {
			_, ok := store.Profile(ctx, "ghost")
			So(ok, ShouldBeFalse)
			So(store.Records(ctx, "ghost"), ShouldBeNil)
			_, ok = store.FirstEntryDate(ctx, "ghost")
			So(ok, ShouldBeFalse)
			So(store.Count(ctx), ShouldEqual, 0)
		})

		Convey("When body-composition samples arrive out of order", func() {
			So(store.AddBodyComposition(ctx, "a1", model.BodyComposition{Date: day(5), WeightKG: 81}), ShouldBeNil)
			So(store.AddBodyComposition(ctx, "a1", model.BodyComposition{Date: day(1), WeightKG: 80}), ShouldBeNil)
			So(store.AddBodyComposition(ctx, "a1", model.BodyComposition{Date: day(9), WeightKG: 82}), ShouldBeNil)

			Convey("Then the latest at a cutoff is date-ordered, not insert-ordered", func() {
				latest, ok := store.LatestBodyComposition(ctx, "a1", day(6))
				So(ok, ShouldBeTrue)
				So(latest.WeightKG, ShouldEqual, 81)
			})

			Convey("Then samples after the cutoff are invisible", func() {
				latest, ok := store.LatestBodyComposition(ctx, "a1", day(10))
				So(ok, ShouldBeTrue)
				So(latest.WeightKG, ShouldEqual, 82)
				_, ok = store.LatestBodyComposition(ctx, "a1", day(0))
				So(ok, ShouldBeFalse)
			})

			Convey("Then the first entry date reflects the earliest sample", func() {
				first, ok := store.FirstEntryDate(ctx, "a1")
				So(ok, ShouldBeTrue)
				So(first.Equal(day(1)), ShouldBeTrue)
			})
		})

		Convey("When a sleep entry is relogged for the same night", func() {
			So(store.AddSleepEntry(ctx, "a1", model.SleepEntry{Date: day(2), DurationHours: 6, Quality: 2}), ShouldBeNil)
			So(store.AddSleepEntry(ctx, "a1", model.SleepEntry{Date: day(2), DurationHours: 7.5, Quality: 4}), ShouldBeNil)

			Convey("Then the relog replaces the original", func() {
				entries := store.SleepBetween(ctx, "a1", day(0), day(7))
				So(len(entries), ShouldEqual, 1)
				So(entries[0].DurationHours, ShouldEqual, 7.5)
			})
		})

		Convey("When samples violate the input contract", func() {
			Convey("Then they are rejected with the sample error kind", func() {
				err := store.AddBodyComposition(ctx, "a1", model.BodyComposition{Date: day(1)})
				So(err, ShouldWrap, repository.ErrInvalidSample)
				err = store.AddSleepEntry(ctx, "a1", model.SleepEntry{Date: day(1), DurationHours: 8, Quality: 9})
				So(err, ShouldWrap, repository.ErrInvalidSample)
				err = store.AddPersonalRecord(ctx, "a1", model.PersonalRecord{ExerciseID: "squat", Value: -10})
				So(err, ShouldWrap, repository.ErrInvalidSample)
				err = store.AddTrainingSession(ctx, "a1", model.TrainingSession{Date: day(1), DurationMin: 60, RPE: 12})
				So(err, ShouldWrap, repository.ErrInvalidSample)
			})

			Convey("Then an empty athlete id is rejected", func() {
				err := store.AddSleepEntry(ctx, "", model.SleepEntry{Date: day(1), DurationHours: 8, Quality: 3})
				So(err, ShouldWrap, repository.ErrInvalidAthleteID)
			})
		})

		Convey("When window queries run over sessions", func() {
			for i := 1; i <= 10; i++ {
				So(store.AddTrainingSession(ctx, "a1", model.TrainingSession{
					Date: day(i), DurationMin: 60, RPE: 6,
				}), ShouldBeNil)
			}

			Convey("Then bounds are exclusive-from, inclusive-to", func() {
				sessions := store.SessionsBetween(ctx, "a1", day(3), day(7))
				So(len(sessions), ShouldEqual, 4)
				So(sessions[0].Date.Equal(day(4)), ShouldBeTrue)
				So(sessions[3].Date.Equal(day(7)), ShouldBeTrue)
			})
		})

		Convey("When multiple athletes have data", func() {
			So(store.AddPersonalRecord(ctx, "a1", model.PersonalRecord{ExerciseID: "squat", Value: 150, RecordedAt: day(1)}), ShouldBeNil)
			So(store.AddPersonalRecord(ctx, "a2", model.PersonalRecord{ExerciseID: "squat", Value: 120, RecordedAt: day(1)}), ShouldBeNil)

			Convey("Then Count tracks distinct athletes and reads do not leak across", func() {
				So(store.Count(ctx), ShouldEqual, 2)
				So(len(store.Records(ctx, "a1")), ShouldEqual, 1)
				So(store.Records(ctx, "a1")[0].Value, ShouldEqual, 150)
			})
		})
	})
}
