package scoring

import (
	"fmt"

	"github.com/sprinflow/indices/internal/domain/model"
)

// Tier boundaries of the piecewise normalization curve.
const (
	eliteFloor         = 80.0
	advancedFloor      = 60.0
	tierSpan           = 20.0
	subIntermediateCap = 59.0
)

// ValidateBenchmark reports whether a benchmark's tiers are usable.
// Tiers must be strictly increasing and the intermediate tier positive.
func ValidateBenchmark(b model.Benchmark) error {
	if b.Intermediate <= 0 || b.Advanced <= b.Intermediate || b.Elite <= b.Advanced {
		return fmt.Errorf("%w: %s (%v/%v/%v)", ErrInvalidBenchmark,
			b.ExerciseID, b.Intermediate, b.Advanced, b.Elite)
	}
	return nil
}

// Normalize maps a measured value (already expressed in the benchmark's
// unit, typically a body-weight ratio) to a 0-100 sub-score:
//
//	value >= elite                 -> 100
//	advanced <= value < elite      -> 80 + linear share of 20
//	intermediate <= value < advanced -> 60 + linear share of 20
//	value < intermediate           -> (value/intermediate)*60, capped at 59
//
// Sub-intermediate output stays strictly below 60 so tier boundaries are
// never ambiguous. Malformed benchmarks and negative values are errors;
// callers skip the record and keep computing.
func Normalize(value float64, b model.Benchmark) (float64, error) {
	if err := ValidateBenchmark(b); err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("%w: %s (%v)", ErrNegativeValue, b.ExerciseID, value)
	}

	switch {
	case value >= b.Elite:
		return maxScore, nil
	case value >= b.Advanced:
		return eliteFloor + segment(value, b.Advanced, b.Elite)*tierSpan, nil
	case value >= b.Intermediate:
		return advancedFloor + segment(value, b.Intermediate, b.Advanced)*tierSpan, nil
	default:
		return min(value/b.Intermediate*advancedFloor, subIntermediateCap), nil
	}
}

// segment returns the position of value inside [lo, hi) as a 0-1 fraction.
// A collapsed segment degrades to a step function at its lower bound.
func segment(value, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return (value - lo) / (hi - lo)
}
