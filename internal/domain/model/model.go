// Package model contains domain models passed between layers.
package model

import "time"

// Category groups exercises sharing a movement pattern. The string values
// are the wire names used in categorieScores.
type Category string

// Known categories. The benchmark table may introduce further categories;
// unknown ones aggregate but carry no weight in the power index.
const (
	CategoryOlympicLifts Category = "halterophilie"
	CategoryLowerBody    Category = "muscu_bas"
	CategoryUpperBody    Category = "muscu_haut"
	CategoryUnilateral   Category = "unilateral"
)

// Direction states whether a bigger measured value means better performance.
// Lifted loads are higher-is-better; timed efforts are lower-is-better.
type Direction string

const (
	HigherIsBetter Direction = "higher_is_better"
	LowerIsBetter  Direction = "lower_is_better"
)

// Benchmark holds the reference thresholds for one exercise, expressed as a
// ratio of the lifted value to body weight. Tiers must be strictly
// increasing; a benchmark violating that is excluded from scoring.
type Benchmark struct {
	ExerciseID   string
	Name         string
	Category     Category
	Direction    Direction
	Intermediate float64
	Advanced     float64
	Elite        float64
}

// PersonalRecord is one best-effort entry for an exercise.
type PersonalRecord struct {
	ExerciseID string
	Value      float64
	RecordedAt time.Time
}

// BodyComposition is one dated body-composition sample. BodyFatPct is nil
// when the athlete logged weight only.
type BodyComposition struct {
	Date       time.Time
	WeightKG   float64
	BodyFatPct *float64
}

// Profile holds anthropometric facts from the profile store.
type Profile struct {
	HeightCM  *float64
	BirthDate *time.Time
}

// SleepEntry is one night of sleep. Quality is the perceived 1-5 rating.
type SleepEntry struct {
	Date          time.Time
	DurationHours float64
	Quality       int
}

// TrainingSession is one logged workout. Load is derived as the session-RPE
// product DurationMin * RPE.
type TrainingSession struct {
	Date        time.Time
	DurationMin float64
	RPE         float64
}

// Load returns the session-RPE training load for the session.
func (s TrainingSession) Load() float64 {
	if s.DurationMin <= 0 || s.RPE <= 0 {
		return 0
	}
	return s.DurationMin * s.RPE
}

// Snapshot is the immutable per-request input to the scoring engine. The
// engine fetches nothing itself; callers assemble a snapshot from the
// profile, measurement, records, and benchmark collaborators.
type Snapshot struct {
	// Now anchors all trailing windows; passing it explicitly keeps the
	// engine idempotent.
	Now time.Time

	Profile               Profile
	LatestBodyComposition *BodyComposition
	PersonalRecords       []PersonalRecord
	Benchmarks            []Benchmark

	SleepWindow      []SleepEntry
	TrainingSessions []TrainingSession
	// TrackedDays is the number of days elapsed since the athlete's first
	// logged entry of any kind, inclusive. It drives calibration.
	TrackedDays int

	// CurrentBests and HistoricalPeaks90d are keyed by exercise id.
	CurrentBests       map[string]float64
	HistoricalPeaks90d map[string]float64
}
