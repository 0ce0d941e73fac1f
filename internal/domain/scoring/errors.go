package scoring

import "errors"

// Sentinel kinds for scoring errors. These allow errors.Is/As from callers.
var (
	// ErrInvalidBenchmark flags non-increasing threshold tiers. The
	// offending exercise is excluded from aggregation, never fatal to the
	// envelope.
	ErrInvalidBenchmark = errors.New("invalid benchmark thresholds")

	// ErrNegativeValue flags a caller-supplied negative measurement.
	ErrNegativeValue = errors.New("negative value")
)
