// Package benchmarks provides the static exercise reference table: the
// threshold tiers the normalizer scores against, plus each exercise's
// category and direction of improvement.
package benchmarks

import (
	"sort"

	"github.com/sprinflow/indices/internal/domain/model"
	"github.com/sprinflow/indices/internal/domain/scoring"
)

// Invalid records a reference entry rejected at load time, for operator
// visibility. Rejected entries never reach the scoring engine.
type Invalid struct {
	ExerciseID string
	Err        error
}

// Table is an immutable benchmark lookup built once at startup.
type Table struct {
	byExercise map[string]model.Benchmark
}

// NewTable validates entries and builds a table from the usable ones.
// Entries with non-increasing tiers are excluded and reported.
func NewTable(entries []model.Benchmark) (*Table, []Invalid) {
	var rejected []Invalid
	byExercise := make(map[string]model.Benchmark, len(entries))
	for _, b := range entries {
		if b.Direction == "" {
			b.Direction = model.HigherIsBetter
		}
		if err := scoring.ValidateBenchmark(b); err != nil {
			rejected = append(rejected, Invalid{ExerciseID: b.ExerciseID, Err: err})
			continue
		}
		byExercise[b.ExerciseID] = b
	}
	return &Table{byExercise: byExercise}, rejected
}

// Lookup returns the benchmark for an exercise id.
func (t *Table) Lookup(exerciseID string) (model.Benchmark, bool) {
	b, ok := t.byExercise[exerciseID]
	return b, ok
}

// All returns every benchmark, ordered by exercise id.
func (t *Table) All() []model.Benchmark {
	out := make([]model.Benchmark, 0, len(t.byExercise))
	for _, b := range t.byExercise {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExerciseID < out[j].ExerciseID })
	return out
}

// Len returns the number of usable entries.
func (t *Table) Len() int {
	return len(t.byExercise)
}

// Default returns the built-in reference table used when no benchmark file
// is configured. Tiers are lifted-load to body-weight ratios.
func Default() *Table {
	t, _ := NewTable([]model.Benchmark{
		{ExerciseID: "snatch", Name: "Arraché", Category: model.CategoryOlympicLifts,
			Intermediate: 0.8, Advanced: 1.0, Elite: 1.3},
		{ExerciseID: "clean_jerk", Name: "Épaulé-jeté", Category: model.CategoryOlympicLifts,
			Intermediate: 1.0, Advanced: 1.2, Elite: 1.5},
		{ExerciseID: "back_squat", Name: "Squat arrière", Category: model.CategoryLowerBody,
			Intermediate: 1.5, Advanced: 2.0, Elite: 2.5},
		{ExerciseID: "deadlift", Name: "Soulevé de terre", Category: model.CategoryLowerBody,
			Intermediate: 1.75, Advanced: 2.25, Elite: 2.75},
		{ExerciseID: "bench_press", Name: "Développé couché", Category: model.CategoryUpperBody,
			Intermediate: 1.0, Advanced: 1.25, Elite: 1.5},
		{ExerciseID: "overhead_press", Name: "Développé militaire", Category: model.CategoryUpperBody,
			Intermediate: 0.65, Advanced: 0.85, Elite: 1.05},
		{ExerciseID: "split_squat", Name: "Squat bulgare", Category: model.CategoryUnilateral,
			Intermediate: 0.8, Advanced: 1.0, Elite: 1.25},
		{ExerciseID: "single_leg_rdl", Name: "Soulevé unijambiste", Category: model.CategoryUnilateral,
			Intermediate: 0.6, Advanced: 0.8, Elite: 1.0},
	})
	return t
}
