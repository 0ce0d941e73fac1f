package scoring

import (
	"sort"

	"github.com/sprinflow/indices/internal/domain/model"
	"github.com/sprinflow/indices/internal/domain/types"
)

// maxProgressEntries bounds each of the top/bottom breakdown lists.
const maxProgressEntries = 3

// EvolutionInput feeds the relative-progress scorer. Directions and Names
// come from the exercise reference; exercises missing from Directions
// default to higher-is-better.
type EvolutionInput struct {
	CurrentBests    map[string]float64
	HistoricalPeaks map[string]float64
	Directions      map[string]model.Direction
	Names           map[string]string
}

// ScoreEvolution compares current best efforts against the rolling
// historical peaks. Each exercise scores current/peak*100 (inverted for
// lower-is-better exercises), deliberately unclamped above 100: exceeding
// your own peak is a legitimate signal. Exercises missing either value are
// excluded entirely. The index is the unweighted mean, null when no
// exercise has both values.
func ScoreEvolution(in EvolutionInput) types.EvolutionScore {
	type progress struct {
		id    string
		score float64
	}

	var entries []progress
	var sum float64
	for id, current := range in.CurrentBests {
		peak, ok := in.HistoricalPeaks[id]
		if !ok || peak <= 0 || current <= 0 {
			continue
		}
		rel := current / peak * maxScore
		if in.Directions[id] == model.LowerIsBetter {
			rel = peak / current * maxScore
		}
		entries = append(entries, progress{id, rel})
		sum += rel
	}

	out := types.EvolutionScore{Context: types.EvolutionContext{
		TopProgress:    []types.ExerciseProgress{},
		BottomProgress: []types.ExerciseProgress{},
	}}
	if len(entries) == 0 {
		return out
	}

	out.Indice = roundPtr(sum / float64(len(entries)))

	// Largest deltas from 100% in each direction, best movers first.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].id < entries[j].id
	})

	name := func(id string) string {
		if n, ok := in.Names[id]; ok && n != "" {
			return n
		}
		return id
	}

	for _, e := range entries {
		if e.score < maxScore || len(out.Context.TopProgress) >= maxProgressEntries {
			break
		}
		out.Context.TopProgress = append(out.Context.TopProgress,
			types.ExerciseProgress{Exercice: name(e.id), Score: round(e.score)})
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.score >= maxScore || len(out.Context.BottomProgress) >= maxProgressEntries {
			break
		}
		out.Context.BottomProgress = append(out.Context.BottomProgress,
			types.ExerciseProgress{Exercice: name(e.id), Score: round(e.score)})
	}

	return out
}
