package scoring

import "github.com/sprinflow/indices/internal/domain/model"

// ExerciseScore pairs a normalized score with its exercise and category.
type ExerciseScore struct {
	ExerciseID string
	Category   model.Category
	Score      float64
}

// AggregateCategories reduces normalized exercise scores to one score per
// category, keeping the maximum observed in each. A single excellent lift
// defines the category; weaker accessory work never dilutes it. Categories
// with no observed exercise are absent from the result, not zero.
func AggregateCategories(scores []ExerciseScore) map[model.Category]float64 {
	best := make(map[model.Category]float64, len(scores))
	for _, s := range scores {
		if cur, ok := best[s.Category]; !ok || s.Score > cur {
			best[s.Category] = s.Score
		}
	}
	return best
}
