// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/sprinflow/indices/internal/domain/model"
)

// BenchmarksDependencies defines the interface for reference-table reads.
type BenchmarksDependencies interface {
	Benchmarks(ctx context.Context) []model.Benchmark
}

// BenchmarksHandler handles reference-table requests.
type BenchmarksHandler struct {
	deps BenchmarksDependencies
}

// NewBenchmarksHandler creates a new benchmarks handler.
func NewBenchmarksHandler(deps BenchmarksDependencies) *BenchmarksHandler {
	return &BenchmarksHandler{deps: deps}
}

// benchmarkEntry mirrors the wire shape of one reference-table row.
type benchmarkEntry struct {
	ExerciseID   string  `json:"exercise_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Direction    string  `json:"direction"`
	Intermediate float64 `json:"intermediate"`
	Advanced     float64 `json:"advanced"`
	Elite        float64 `json:"elite"`
}

// HandleGetBenchmarks handles GET /benchmarks requests.
func (h *BenchmarksHandler) HandleGetBenchmarks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	table := h.deps.Benchmarks(r.Context())
	out := make([]benchmarkEntry, len(table))
	for i, b := range table {
		out[i] = benchmarkEntry{
			ExerciseID:   b.ExerciseID,
			Name:         b.Name,
			Category:     string(b.Category),
			Direction:    string(b.Direction),
			Intermediate: b.Intermediate,
			Advanced:     b.Advanced,
			Elite:        b.Elite,
		}
	}
	writeJSON(w, http.StatusOK, out)
}
