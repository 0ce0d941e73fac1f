// Package scoring implements the performance scoring engine: benchmark
// normalization, category aggregation, and the three composite indices
// (power, form, evolution). Every function here is a pure transformation
// of an already-fetched snapshot; the package performs no I/O and holds no
// state.
package scoring

import "math"

// Score bounds shared across components.
const (
	minScore = 0.0
	maxScore = 100.0
)

// Composite weights. Fixed domain policy, deliberately not configurable.
const (
	compoWeight = 0.4
	forceWeight = 0.6

	sleepWeight        = 0.5
	loadRecoveryWeight = 0.3
	recentPerfWeight   = 0.2
)

// clamp bounds a sub-score to [0, 100]. NaN collapses to 0 so a bad input
// can never poison a composite.
func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return minScore
	}
	return math.Max(minScore, math.Min(maxScore, v))
}

// round converts an unrounded score to its display value.
func round(v float64) int {
	return int(math.Round(v))
}

// roundPtr rounds to a nullable display value.
func roundPtr(v float64) *int {
	r := round(v)
	return &r
}
