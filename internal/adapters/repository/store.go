// Package repository defines the athlete data store interfaces and errors.
// These model the profile, measurement, and records collaborators the
// scoring engine reads from; the engine itself never touches them.
package repository

import (
	"context"
	"time"

	"github.com/sprinflow/indices/internal/domain/model"
)

// Store provides read/write access to per-athlete measurement history.
// Reads return copies; time-windowed reads are ordered oldest first.
type Store interface {
	// UpsertProfile stores anthropometric facts for an athlete.
	UpsertProfile(ctx context.Context, athleteID string, p model.Profile) error
	// Profile returns the athlete's profile; ok is false when none exists.
	Profile(ctx context.Context, athleteID string) (model.Profile, bool)

	// AddBodyComposition appends a dated body-composition sample.
	AddBodyComposition(ctx context.Context, athleteID string, s model.BodyComposition) error
	// LatestBodyComposition returns the most recent sample at or before now.
	LatestBodyComposition(ctx context.Context, athleteID string, now time.Time) (*model.BodyComposition, bool)

	// AddSleepEntry records one night of sleep; a second entry for the
	// same day replaces the first.
	AddSleepEntry(ctx context.Context, athleteID string, e model.SleepEntry) error
	// SleepBetween returns entries with from < date <= to.
	SleepBetween(ctx context.Context, athleteID string, from, to time.Time) []model.SleepEntry

	// AddTrainingSession appends a logged workout.
	AddTrainingSession(ctx context.Context, athleteID string, s model.TrainingSession) error
	// SessionsBetween returns sessions with from < date <= to.
	SessionsBetween(ctx context.Context, athleteID string, from, to time.Time) []model.TrainingSession

	// AddPersonalRecord appends a best-effort entry.
	AddPersonalRecord(ctx context.Context, athleteID string, r model.PersonalRecord) error
	// Records returns all personal records for the athlete.
	Records(ctx context.Context, athleteID string) []model.PersonalRecord

	// FirstEntryDate returns the date of the athlete's earliest logged
	// datum of any kind; ok is false for an athlete with no data.
	FirstEntryDate(ctx context.Context, athleteID string) (time.Time, bool)

	// Count returns the number of athletes with any stored data.
	Count(ctx context.Context) int
}
