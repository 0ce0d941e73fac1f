package scoring

import (
	"errors"

	"github.com/sprinflow/indices/internal/domain/model"
	"github.com/sprinflow/indices/internal/domain/types"
)

// Category weights for the weighted-force aggregation. Fixed domain policy;
// the sum over present categories renormalizes the average so athletes are
// not penalized for categories they simply have not logged.
var categoryWeights = map[model.Category]float64{
	model.CategoryOlympicLifts: 0.35,
	model.CategoryLowerBody:    0.35,
	model.CategoryUpperBody:    0.20,
	model.CategoryUnilateral:   0.10,
}

// SkippedExercise records an exercise excluded from the power index and why,
// for operator visibility.
type SkippedExercise struct {
	ExerciseID string
	Err        error
}

// BuildPowerIndex combines the per-category strength bests with the
// body-composition sub-score into the strength/power index.
//
// Records without a matching benchmark, with a malformed benchmark, or with
// a negative value are skipped deterministically and reported; they never
// abort the computation. When no category is present the force score is
// null (not zero), and the final index renormalizes its 40/60 blend over
// whichever of the two sides exists. The index is null only when both are
// missing.
func BuildPowerIndex(snap model.Snapshot) (types.PowerIndex, []SkippedExercise) {
	var skipped []SkippedExercise

	byExercise := make(map[string]model.Benchmark, len(snap.Benchmarks))
	for _, b := range snap.Benchmarks {
		byExercise[b.ExerciseID] = b
	}

	var weightKG float64
	if snap.LatestBodyComposition != nil {
		weightKG = snap.LatestBodyComposition.WeightKG
	}

	// Normalize each record's body-weight ratio against its benchmark.
	var scores []ExerciseScore
	if weightKG > 0 {
		for _, rec := range snap.PersonalRecords {
			b, ok := byExercise[rec.ExerciseID]
			if !ok {
				skipped = append(skipped, SkippedExercise{rec.ExerciseID, errors.New("no benchmark for exercise")})
				continue
			}
			s, err := Normalize(rec.Value/weightKG, b)
			if err != nil {
				skipped = append(skipped, SkippedExercise{rec.ExerciseID, err})
				continue
			}
			scores = append(scores, ExerciseScore{ExerciseID: rec.ExerciseID, Category: b.Category, Score: s})
		}
	}

	categoryBest := AggregateCategories(scores)

	// Weighted force over present categories only. Aggregation uses the
	// unrounded bests; rounding happens once, for display.
	var forceSum, weightSum float64
	display := make(map[string]int, len(categoryBest))
	for cat, score := range categoryBest {
		display[string(cat)] = round(score)
		if w, ok := categoryWeights[cat]; ok {
			forceSum += score * w
			weightSum += w
		}
	}

	var force *float64
	if weightSum > 0 {
		f := forceSum / weightSum
		force = &f
	}

	var compo *float64
	if c, ok := CompositionScore(snap.LatestBodyComposition, snap.Profile.HeightCM); ok {
		compo = &c
	}

	out := types.PowerIndex{CategorieScores: display}
	if snap.LatestBodyComposition != nil {
		out.Details = &types.PowerDetails{
			PoidsKG:        snap.LatestBodyComposition.WeightKG,
			TailleCM:       snap.Profile.HeightCM,
			MasseGrassePct: snap.LatestBodyComposition.BodyFatPct,
		}
	}
	if force != nil {
		out.ScoreForce = roundPtr(*force)
	}
	if compo != nil {
		out.ScoreCompo = roundPtr(*compo)
	}

	// Renormalized 40/60 blend, mirroring the form scorer's policy.
	var blendSum, blendWeight float64
	if compo != nil {
		blendSum += *compo * compoWeight
		blendWeight += compoWeight
	}
	if force != nil {
		blendSum += *force * forceWeight
		blendWeight += forceWeight
	}
	if blendWeight > 0 {
		out.Indice = roundPtr(blendSum / blendWeight)
	}

	return out, skipped
}
