// Package service provides the core business service that implements
// the dependencies required by the HTTP API: it assembles scoring
// snapshots from the store, runs the engine, and memoizes envelopes.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/sprinflow/indices/internal/adapters/benchmarks"
	repository "github.com/sprinflow/indices/internal/adapters/repository"
	"github.com/sprinflow/indices/internal/domain/cache"
	"github.com/sprinflow/indices/internal/domain/model"
	"github.com/sprinflow/indices/internal/domain/scoring"
	"github.com/sprinflow/indices/internal/domain/types"
	"github.com/sprinflow/indices/pkg/logger"
	"github.com/sprinflow/indices/pkg/metrics"
)

const (
	sleepWindowDays   = 7
	sessionWindowDays = 28
	hoursPerDay       = 24
)

// Service implements the API dependencies for the scoring system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	table     *benchmarks.Table
	envelopes cache.Cache

	// Configuration
	minCalibrationDays int
	recentWindowDays   int
	peakWindowDays     int
	cacheMaxEntries    int

	// State
	started bool
	now     func() time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore sets a custom athlete data store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithBenchmarkTable sets the exercise reference table.
func WithBenchmarkTable(table *benchmarks.Table) Option {
	return func(s *Service) {
		if table != nil {
			s.table = table
		}
	}
}

// WithCache sets a custom envelope cache.
func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.envelopes = c
		}
	}
}

// WithMinCalibrationDays sets the tracked history required before the
// form score leaves the calibration state.
func WithMinCalibrationDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.minCalibrationDays = days
		}
	}
}

// WithWindows sets the recent-best and historical-peak window lengths
// used by the evolution scorer.
func WithWindows(recentDays, peakDays int) Option {
	return func(s *Service) {
		if recentDays > 0 && peakDays >= recentDays {
			s.recentWindowDays = recentDays
			s.peakWindowDays = peakDays
		}
	}
}

// WithCacheMaxEntries bounds the envelope cache built at Start.
func WithCacheMaxEntries(max int) Option {
	return func(s *Service) {
		if max > 0 {
			s.cacheMaxEntries = max
		}
	}
}

// WithClock sets the time source. Tests use this to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		minCalibrationDays: 7,
		recentWindowDays:   30,
		peakWindowDays:     90,
		cacheMaxEntries:    10_000,
		now:                time.Now,
		logger:             nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting scoring service...")

	if s.store == nil {
		s.store = repository.NewMemStore()
		s.logger.Info(ctx, "using in-memory store")
	}
	if s.table == nil {
		s.table = benchmarks.Default()
		s.logger.Info(ctx, "using built-in benchmark table")
	}
	if s.envelopes == nil {
		s.envelopes = cache.New(cache.WithMaxEntries(s.cacheMaxEntries))
	}

	s.started = true
	s.logger.Info(ctx, "scoring service started",
		logger.Int("benchmarks", s.table.Len()),
		logger.Int("minCalibrationDays", s.minCalibrationDays),
		logger.Int("recentWindowDays", s.recentWindowDays),
		logger.Int("peakWindowDays", s.peakWindowDays),
	)

	return nil
}

// Stop shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "scoring service stopped")
}

// UpsertProfile stores anthropometric facts and drops any cached envelope.
func (s *Service) UpsertProfile(ctx context.Context, athleteID string, p model.Profile) error {
	if err := s.store.UpsertProfile(ctx, athleteID, p); err != nil {
		metrics.RecordIngestRejected()
		return err
	}
	s.envelopes.Invalidate(ctx, athleteID)
	return nil
}

// RecordBodyComposition appends a body-composition sample.
func (s *Service) RecordBodyComposition(ctx context.Context, athleteID string, sample model.BodyComposition) error {
	if err := s.store.AddBodyComposition(ctx, athleteID, sample); err != nil {
		metrics.RecordIngestRejected()
		return err
	}
	s.envelopes.Invalidate(ctx, athleteID)
	return nil
}

// RecordSleep appends one night of sleep.
func (s *Service) RecordSleep(ctx context.Context, athleteID string, entry model.SleepEntry) error {
	if err := s.store.AddSleepEntry(ctx, athleteID, entry); err != nil {
		metrics.RecordIngestRejected()
		return err
	}
	s.envelopes.Invalidate(ctx, athleteID)
	return nil
}

// RecordTrainingSession appends a logged workout.
func (s *Service) RecordTrainingSession(ctx context.Context, athleteID string, sess model.TrainingSession) error {
	if err := s.store.AddTrainingSession(ctx, athleteID, sess); err != nil {
		metrics.RecordIngestRejected()
		return err
	}
	s.envelopes.Invalidate(ctx, athleteID)
	return nil
}

// RecordPersonalRecord appends a best-effort entry.
func (s *Service) RecordPersonalRecord(ctx context.Context, athleteID string, rec model.PersonalRecord) error {
	if err := s.store.AddPersonalRecord(ctx, athleteID, rec); err != nil {
		metrics.RecordIngestRejected()
		return err
	}
	s.envelopes.Invalidate(ctx, athleteID)
	return nil
}

// Scores returns the full envelope for an athlete, serving from the cache
// when the underlying data is unchanged since the last computation.
func (s *Service) Scores(ctx context.Context, athleteID string) (types.Envelope, error) {
	if athleteID == "" {
		return types.Envelope{}, repository.ErrInvalidAthleteID
	}

	// Anchor all windows at day granularity so an athlete asking twice on
	// the same day gets an identical envelope.
	now := s.now().UTC().Truncate(hoursPerDay * time.Hour)

	snap, ok := s.assembleSnapshot(ctx, athleteID, now)
	if !ok {
		return types.Envelope{}, ErrUnknownAthlete
	}

	fp := fingerprint(snap)
	if env, hit := s.envelopes.Get(ctx, athleteID, fp); hit {
		metrics.RecordCacheHit()
		return env, nil
	}
	metrics.RecordCacheMiss()

	started := time.Now()
	env, skipped := scoring.ComputeEnvelope(snap, scoring.Params{MinCalibrationDays: s.minCalibrationDays})
	metrics.RecordEnvelopeComputed()
	metrics.RecordEnvelopeLatency(float64(time.Since(started).Microseconds()) / 1000.0)

	for _, sk := range skipped {
		metrics.RecordExerciseSkipped()
		s.logger.Warn(ctx, "exercise excluded from power index",
			logger.String("athleteID", athleteID),
			logger.String("exerciseID", sk.ExerciseID),
			logger.Error(sk.Err),
		)
	}
	if env.ScoreForme.Calibration {
		metrics.RecordCalibrationResponse()
	}
	if env.ScoreForme.Insufficient {
		metrics.RecordInsufficientResponse()
	}

	s.envelopes.Put(ctx, athleteID, fp, env)
	metrics.UpdateCacheEntries(int(s.envelopes.Size()))

	return env, nil
}

// assembleSnapshot gathers everything the engine needs for one athlete.
// ok is false when the store holds nothing at all for the athlete.
func (s *Service) assembleSnapshot(ctx context.Context, athleteID string, now time.Time) (model.Snapshot, bool) {
	first, hasData := s.store.FirstEntryDate(ctx, athleteID)
	profile, hasProfile := s.store.Profile(ctx, athleteID)
	if !hasData && !hasProfile {
		return model.Snapshot{}, false
	}

	snap := model.Snapshot{
		Now:        now,
		Profile:    profile,
		Benchmarks: s.table.All(),
	}

	if latest, ok := s.store.LatestBodyComposition(ctx, athleteID, now); ok {
		snap.LatestBodyComposition = latest
	}
	snap.PersonalRecords = s.store.Records(ctx, athleteID)
	snap.SleepWindow = s.store.SleepBetween(ctx, athleteID, now.AddDate(0, 0, -sleepWindowDays), now)
	snap.TrainingSessions = s.store.SessionsBetween(ctx, athleteID, now.AddDate(0, 0, -sessionWindowDays), now)

	if hasData {
		snap.TrackedDays = int(now.Sub(first).Hours()/hoursPerDay) + 1
	}

	recentFrom := now.AddDate(0, 0, -s.recentWindowDays)
	peakFrom := recentFrom.AddDate(0, 0, -s.peakWindowDays)
	snap.CurrentBests = s.bestsBetween(snap.PersonalRecords, recentFrom, now)
	snap.HistoricalPeaks90d = s.bestsBetween(snap.PersonalRecords, peakFrom, recentFrom)

	return snap, true
}

// bestsBetween reduces records with from < date <= to down to the best
// value per exercise, honoring each exercise's direction of improvement.
func (s *Service) bestsBetween(records []model.PersonalRecord, from, to time.Time) map[string]float64 {
	bests := make(map[string]float64)
	for _, r := range records {
		if !r.RecordedAt.After(from) || r.RecordedAt.After(to) {
			continue
		}
		dir := model.HigherIsBetter
		if b, ok := s.table.Lookup(r.ExerciseID); ok {
			dir = b.Direction
		}
		cur, seen := bests[r.ExerciseID]
		switch {
		case !seen:
			bests[r.ExerciseID] = r.Value
		case dir == model.LowerIsBetter && r.Value < cur:
			bests[r.ExerciseID] = r.Value
		case dir == model.HigherIsBetter && r.Value > cur:
			bests[r.ExerciseID] = r.Value
		}
	}
	return bests
}

// fingerprint derives a stable digest of the snapshot's inputs. A cached
// envelope is valid exactly as long as the fingerprint is unchanged.
func fingerprint(snap model.Snapshot) string {
	h := fnv.New64a()
	payload, err := json.Marshal(snap)
	if err != nil {
		// Snapshot is plain data; marshal cannot realistically fail. Fall
		// back to a never-matching fingerprint rather than a stale hit.
		return fmt.Sprintf("unhashable-%d", time.Now().UnixNano())
	}
	_, _ = h.Write(payload)
	return fmt.Sprintf("%016x", h.Sum64())
}

// Benchmarks returns the active reference table, ordered by exercise id.
func (s *Service) Benchmarks(ctx context.Context) []model.Benchmark {
	return s.table.All()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":            s.started,
		"minCalibrationDays": s.minCalibrationDays,
		"recentWindowDays":   s.recentWindowDays,
		"peakWindowDays":     s.peakWindowDays,
	}

	if s.started {
		athletes := s.store.Count(ctx)
		stats["athletes"] = athletes
		stats["benchmarks"] = s.table.Len()
		stats["cacheEntries"] = s.envelopes.Size()

		metrics.UpdateAthletesTracked(athletes)
		metrics.UpdateCacheEntries(int(s.envelopes.Size()))
	}

	return stats
}
