// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sprinflow/indices/internal/domain/model"
	"github.com/sprinflow/indices/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Ingestion operations feed the athlete data store.
	UpsertProfile(ctx context.Context, athleteID string, p model.Profile) error
	RecordBodyComposition(ctx context.Context, athleteID string, s model.BodyComposition) error
	RecordSleep(ctx context.Context, athleteID string, e model.SleepEntry) error
	RecordTrainingSession(ctx context.Context, athleteID string, s model.TrainingSession) error
	RecordPersonalRecord(ctx context.Context, athleteID string, r model.PersonalRecord) error

	// Read operations expose scores and the reference table.
	Scores(ctx context.Context, athleteID string) (types.Envelope, error)
	Benchmarks(ctx context.Context) []model.Benchmark
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	scoresHandler     *ScoresHandler
	ingestHandler     *IngestHandler
	benchmarksHandler *BenchmarksHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		scoresHandler:     NewScoresHandler(deps),
		ingestHandler:     NewIngestHandler(deps),
		benchmarksHandler: NewBenchmarksHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/benchmarks", MetricsMiddleware(s.benchmarksHandler.HandleGetBenchmarks, "benchmarks"))
	mux.HandleFunc("/scores/", MetricsMiddleware(s.scoresHandler.HandleGetScores, "scores"))
	mux.HandleFunc("/profile", MetricsMiddleware(s.ingestHandler.HandlePostProfile, "profile"))
	mux.HandleFunc("/body", MetricsMiddleware(s.ingestHandler.HandlePostBody, "body"))
	mux.HandleFunc("/sleep", MetricsMiddleware(s.ingestHandler.HandlePostSleep, "sleep"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.ingestHandler.HandlePostSession, "sessions"))
	mux.HandleFunc("/records", MetricsMiddleware(s.ingestHandler.HandlePostRecord, "records"))
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
