package scoring_test

import (
	"testing"

	"github.com/sprinflow/indices/internal/domain/model"
	scoring "github.com/sprinflow/indices/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScoreEvolution(t *testing.T) {
	Convey("Given current bests and 90-day peaks", t, func() {
		in := scoring.EvolutionInput{
			CurrentBests:    map[string]float64{"squat": 150, "bench": 95},
			HistoricalPeaks: map[string]float64{"squat": 140, "bench": 100},
			Names:           map[string]string{"squat": "Back Squat", "bench": "Bench Press"},
		}

		Convey("When scoring", func() {
			got := scoring.ScoreEvolution(in)

			Convey("Then each exercise scores current/peak*100 and the index is their mean", func() {
				// squat 107.14, bench 95 -> mean 101.07 -> 101
				So(*got.Indice, ShouldEqual, 101)
			})

			Convey("Then beating the peak lands in topProgress, regressing in bottomProgress", func() {
				So(len(got.Context.TopProgress), ShouldEqual, 1)
				So(got.Context.TopProgress[0].Exercice, ShouldEqual, "Back Squat")
				So(got.Context.TopProgress[0].Score, ShouldEqual, 107)
				So(len(got.Context.BottomProgress), ShouldEqual, 1)
				So(got.Context.BottomProgress[0].Exercice, ShouldEqual, "Bench Press")
				So(got.Context.BottomProgress[0].Score, ShouldEqual, 95)
			})
		})
	})

	Convey("Given a lower-is-better exercise", t, func() {
		in := scoring.EvolutionInput{
			CurrentBests:    map[string]float64{"sprint_60m": 6.8},
			HistoricalPeaks: map[string]float64{"sprint_60m": 7.0},
			Directions:      map[string]model.Direction{"sprint_60m": model.LowerIsBetter},
		}

		Convey("When the current time beats the historical one", func() {
			got := scoring.ScoreEvolution(in)

			Convey("Then the ratio inverts and exceeds 100 unclamped", func() {
				So(*got.Indice, ShouldEqual, 103) // 7.0/6.8*100 = 102.94
			})
		})

		Convey("When the direction flag is absent", func() {
			in.Directions = nil
			got := scoring.ScoreEvolution(in)

			Convey("Then higher-is-better applies and the slower time reads as regression", func() {
				So(*got.Indice, ShouldEqual, 97) // 6.8/7.0*100 = 97.14
			})
		})
	})

	Convey("Given exercises with a missing side", t, func() {
		in := scoring.EvolutionInput{
			CurrentBests:    map[string]float64{"squat": 150, "row": 80},
			HistoricalPeaks: map[string]float64{"squat": 150, "clean": 90},
		}

		Convey("When scoring", func() {
			got := scoring.ScoreEvolution(in)

			Convey("Then only exercises with both values count", func() {
				So(*got.Indice, ShouldEqual, 100)
				So(len(got.Context.TopProgress), ShouldEqual, 1)
				So(len(got.Context.BottomProgress), ShouldEqual, 0)
			})
		})
	})

	Convey("Given no overlapping exercises at all", t, func() {
		got := scoring.ScoreEvolution(scoring.EvolutionInput{
			CurrentBests:    map[string]float64{"row": 80},
			HistoricalPeaks: map[string]float64{"clean": 90},
		})

		Convey("Then the index is null with empty breakdowns", func() {
			So(got.Indice, ShouldBeNil)
			So(got.Context.TopProgress, ShouldBeEmpty)
			So(got.Context.BottomProgress, ShouldBeEmpty)
		})
	})

	Convey("Given more movers than the breakdown can hold", t, func() {
		in := scoring.EvolutionInput{
			CurrentBests: map[string]float64{
				"a": 120, "b": 115, "c": 110, "d": 105, "e": 90, "f": 85, "g": 80, "h": 70,
			},
			HistoricalPeaks: map[string]float64{
				"a": 100, "b": 100, "c": 100, "d": 100, "e": 100, "f": 100, "g": 100, "h": 100,
			},
		}

		got := scoring.ScoreEvolution(in)

		Convey("Then each list keeps its three largest deltas, ordered", func() {
			So(len(got.Context.TopProgress), ShouldEqual, 3)
			So(got.Context.TopProgress[0].Exercice, ShouldEqual, "a")
			So(got.Context.TopProgress[2].Exercice, ShouldEqual, "c")
			So(len(got.Context.BottomProgress), ShouldEqual, 3)
			So(got.Context.BottomProgress[0].Exercice, ShouldEqual, "h")
			So(got.Context.BottomProgress[2].Exercice, ShouldEqual, "f")
		})
	})
}
