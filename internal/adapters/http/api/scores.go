// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	service "github.com/sprinflow/indices/internal/app"
	"github.com/sprinflow/indices/internal/domain/types"
)

// ScoresDependencies defines the interface for score reads.
type ScoresDependencies interface {
	Scores(ctx context.Context, athleteID string) (types.Envelope, error)
}

// ScoresHandler handles score envelope requests.
type ScoresHandler struct {
	deps ScoresDependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps ScoresDependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

// HandleGetScores handles GET /scores/{athlete_id} requests.
func (h *ScoresHandler) HandleGetScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /scores/
	athleteID := strings.TrimPrefix(r.URL.Path, "/scores/")
	if athleteID == "" || strings.Contains(athleteID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	env, err := h.deps.Scores(r.Context(), athleteID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownAthlete) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}
