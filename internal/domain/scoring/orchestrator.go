package scoring

import (
	"github.com/sprinflow/indices/internal/domain/model"
	"github.com/sprinflow/indices/internal/domain/types"
)

// Params carries the external knobs of the engine. Only the calibration
// threshold is configurable; all scoring weights are fixed policy.
type Params struct {
	// MinCalibrationDays is the history required before the form score
	// leaves the calibration state.
	MinCalibrationDays int
}

// ComputeEnvelope is the engine facade: it runs the three composite
// scorers over one immutable snapshot and returns the full response
// envelope plus the exercises excluded from the power index. It is pure;
// calling it twice with the same snapshot yields identical envelopes.
//
// The recent-performance sub-score of the form composite reuses the
// evolution mean (clamped to 100) so the two composites never disagree
// about the athlete's trend.
func ComputeEnvelope(snap model.Snapshot, params Params) (types.Envelope, []SkippedExercise) {
	directions := make(map[string]model.Direction, len(snap.Benchmarks))
	names := make(map[string]string, len(snap.Benchmarks))
	for _, b := range snap.Benchmarks {
		directions[b.ExerciseID] = b.Direction
		names[b.ExerciseID] = b.Name
	}

	evolution := ScoreEvolution(EvolutionInput{
		CurrentBests:    snap.CurrentBests,
		HistoricalPeaks: snap.HistoricalPeaks90d,
		Directions:      directions,
		Names:           names,
	})

	var recentPerf *float64
	if evolution.Indice != nil {
		p := clamp(float64(*evolution.Indice))
		recentPerf = &p
	}

	forme := ScoreForme(FormInput{
		SleepWindow:       snap.SleepWindow,
		TrainingSessions:  snap.TrainingSessions,
		RecentPerformance: recentPerf,
		TrackedDays:       snap.TrackedDays,
		MinDays:           params.MinCalibrationDays,
		Now:               snap.Now,
	})

	power, skipped := BuildPowerIndex(snap)

	return types.Envelope{
		ScoreForme:           forme,
		IndicePoidsPuissance: power,
		ScoreEvolution:       evolution,
	}, skipped
}
