package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sprinflow/indices/internal/domain/model"
)

// athleteData holds one athlete's history. Slices stay sorted by date,
// oldest first.
type athleteData struct {
	profile    *model.Profile
	bodyComps  []model.BodyComposition
	sleep      []model.SleepEntry
	sessions   []model.TrainingSession
	records    []model.PersonalRecord
	firstEntry time.Time
}

// MemStore implements Store with per-athlete in-memory history.
type MemStore struct {
	mu       sync.RWMutex
	athletes map[string]*athleteData
}

// NewMemStore creates an empty in-memory store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		athletes: make(map[string]*athleteData),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// get returns the athlete's bucket, creating it on first write.
// Must hold s.mu.
func (s *MemStore) get(athleteID string) *athleteData {
	a, ok := s.athletes[athleteID]
	if !ok {
		a = &athleteData{}
		s.athletes[athleteID] = a
	}
	return a
}

// touch tracks the earliest logged datum for calibration accounting.
func (a *athleteData) touch(date time.Time) {
	if a.firstEntry.IsZero() || date.Before(a.firstEntry) {
		a.firstEntry = date
	}
}

func (s *MemStore) UpsertProfile(ctx context.Context, athleteID string, p model.Profile) error {
	if athleteID == "" {
		return ErrInvalidAthleteID
	}
	if p.HeightCM != nil && *p.HeightCM <= 0 {
		return fmt.Errorf("%w: non-positive height", ErrInvalidSample)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(athleteID).profile = &p
	return nil
}

func (s *MemStore) Profile(ctx context.Context, athleteID string) (model.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.athletes[athleteID]
	if !ok || a.profile == nil {
		return model.Profile{}, false
	}
	return *a.profile, true
}

func (s *MemStore) AddBodyComposition(ctx context.Context, athleteID string, sample model.BodyComposition) error {
	if athleteID == "" {
		return ErrInvalidAthleteID
	}
	if sample.WeightKG <= 0 {
		return fmt.Errorf("%w: non-positive weight", ErrInvalidSample)
	}
	if sample.BodyFatPct != nil && (*sample.BodyFatPct <= 0 || *sample.BodyFatPct >= 100) {
		return fmt.Errorf("%w: body fat out of range", ErrInvalidSample)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.get(athleteID)
	a.bodyComps = append(a.bodyComps, sample)
	sort.Slice(a.bodyComps, func(i, j int) bool { return a.bodyComps[i].Date.Before(a.bodyComps[j].Date) })
	a.touch(sample.Date)
	return nil
}

func (s *MemStore) LatestBodyComposition(ctx context.Context, athleteID string, now time.Time) (*model.BodyComposition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.athletes[athleteID]
	if !ok {
		return nil, false
	}
	for i := len(a.bodyComps) - 1; i >= 0; i-- {
		if !a.bodyComps[i].Date.After(now) {
			sample := a.bodyComps[i]
			return &sample, true
		}
	}
	return nil, false
}

func (s *MemStore) AddSleepEntry(ctx context.Context, athleteID string, e model.SleepEntry) error {
	if athleteID == "" {
		return ErrInvalidAthleteID
	}
	if e.DurationHours < 0 || e.DurationHours > 24 {
		return fmt.Errorf("%w: sleep duration out of range", ErrInvalidSample)
	}
	if e.Quality < 1 || e.Quality > 5 {
		return fmt.Errorf("%w: sleep quality must be 1-5", ErrInvalidSample)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.get(athleteID)
	// One entry per night: a relog for the same day wins.
	day := e.Date.Truncate(24 * time.Hour)
	for i, existing := range a.sleep {
		if existing.Date.Truncate(24*time.Hour).Equal(day) {
			a.sleep[i] = e
			a.touch(e.Date)
			return nil
		}
	}
	a.sleep = append(a.sleep, e)
	sort.Slice(a.sleep, func(i, j int) bool { return a.sleep[i].Date.Before(a.sleep[j].Date) })
	a.touch(e.Date)
	return nil
}

func (s *MemStore) SleepBetween(ctx context.Context, athleteID string, from, to time.Time) []model.SleepEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.athletes[athleteID]
	if !ok {
		return nil
	}
	var out []model.SleepEntry
	for _, e := range a.sleep {
		if e.Date.After(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out
}

func (s *MemStore) AddTrainingSession(ctx context.Context, athleteID string, sess model.TrainingSession) error {
	if athleteID == "" {
		return ErrInvalidAthleteID
	}
	if sess.DurationMin <= 0 {
		return fmt.Errorf("%w: non-positive duration", ErrInvalidSample)
	}
	if sess.RPE < 1 || sess.RPE > 10 {
		return fmt.Errorf("%w: RPE must be 1-10", ErrInvalidSample)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.get(athleteID)
	a.sessions = append(a.sessions, sess)
	sort.Slice(a.sessions, func(i, j int) bool { return a.sessions[i].Date.Before(a.sessions[j].Date) })
	a.touch(sess.Date)
	return nil
}

func (s *MemStore) SessionsBetween(ctx context.Context, athleteID string, from, to time.Time) []model.TrainingSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.athletes[athleteID]
	if !ok {
		return nil
	}
	var out []model.TrainingSession
	for _, sess := range a.sessions {
		if sess.Date.After(from) && !sess.Date.After(to) {
			out = append(out, sess)
		}
	}
	return out
}

func (s *MemStore) AddPersonalRecord(ctx context.Context, athleteID string, r model.PersonalRecord) error {
	if athleteID == "" {
		return ErrInvalidAthleteID
	}
	if r.ExerciseID == "" {
		return fmt.Errorf("%w: missing exercise id", ErrInvalidSample)
	}
	if r.Value <= 0 {
		return fmt.Errorf("%w: non-positive value", ErrInvalidSample)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.get(athleteID)
	a.records = append(a.records, r)
	sort.Slice(a.records, func(i, j int) bool { return a.records[i].RecordedAt.Before(a.records[j].RecordedAt) })
	a.touch(r.RecordedAt)
	return nil
}

func (s *MemStore) Records(ctx context.Context, athleteID string) []model.PersonalRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.athletes[athleteID]
	if !ok {
		return nil
	}
	out := make([]model.PersonalRecord, len(a.records))
	copy(out, a.records)
	return out
}

func (s *MemStore) FirstEntryDate(ctx context.Context, athleteID string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.athletes[athleteID]
	if !ok || a.firstEntry.IsZero() {
		return time.Time{}, false
	}
	return a.firstEntry, true
}

func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.athletes)
}
