package scoring

import "github.com/sprinflow/indices/internal/domain/model"

// Composition tier tables. Thresholds mirror the reference scoring tables;
// both lookups share the floor of 30.
const (
	compoFloor = 30.0

	bodyFatDecayPerPct = 2.0
	bmiDecayPerPoint   = 5.0
)

// CompositionScore derives the body-composition sub-score from the latest
// sample. Body-fat percentage drives a six-tier lookup; when it is absent a
// BMI five-tier lookup is used instead. BMI is strictly a fallback, never
// averaged with body fat. The second return is false when neither path has
// the data it needs.
func CompositionScore(sample *model.BodyComposition, heightCM *float64) (float64, bool) {
	if sample == nil || sample.WeightKG <= 0 {
		return 0, false
	}

	if bf := sample.BodyFatPct; bf != nil && *bf > 0 {
		return bodyFatScore(*bf), true
	}

	if heightCM == nil || *heightCM <= 0 {
		return 0, false
	}
	h := *heightCM / 100
	return bmiScore(sample.WeightKG / (h * h)), true
}

func bodyFatScore(pct float64) float64 {
	switch {
	case pct <= 10:
		return 100
	case pct <= 12:
		return 95
	case pct <= 14:
		return 85
	case pct <= 16:
		return 75
	case pct <= 18:
		return 65
	case pct <= 20:
		return 50
	default:
		return max(compoFloor, 50-(pct-20)*bodyFatDecayPerPct)
	}
}

func bmiScore(bmi float64) float64 {
	switch {
	case bmi < 20:
		return 80
	case bmi < 22:
		return 90
	case bmi < 24:
		return 75
	case bmi < 26:
		return 60
	default:
		return max(compoFloor, 60-(bmi-26)*bmiDecayPerPoint)
	}
}
