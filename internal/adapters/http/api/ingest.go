// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	repository "github.com/sprinflow/indices/internal/adapters/repository"
	"github.com/sprinflow/indices/internal/domain/model"
)

// IngestHandler handles measurement ingestion requests.
type IngestHandler struct {
	deps Dependencies
}

// NewIngestHandler creates a new ingest handler.
func NewIngestHandler(deps Dependencies) *IngestHandler {
	return &IngestHandler{deps: deps}
}

// parseDay accepts a calendar date or a full RFC3339 timestamp.
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("invalid date; must be YYYY-MM-DD or RFC3339")
	}
	return t, nil
}

// writeIngestResult maps store errors onto HTTP statuses and acks success.
func writeIngestResult(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
	case errors.Is(err, repository.ErrInvalidSample),
		errors.Is(err, repository.ErrInvalidAthleteID):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("invalid JSON body"))
		return false
	}
	return true
}

type profileRequest struct {
	AthleteID string   `json:"athlete_id"`
	HeightCM  *float64 `json:"height_cm,omitempty"`
	BirthDate string   `json:"birth_date,omitempty"`
}

func (p profileRequest) validate() error {
	if strings.TrimSpace(p.AthleteID) == "" {
		return errors.New("missing athlete_id")
	}
	if p.HeightCM != nil && *p.HeightCM <= 0 {
		return errors.New("height_cm must be positive")
	}
	return nil
}

// HandlePostProfile handles POST /profile requests.
func (h *IngestHandler) HandlePostProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	profile := model.Profile{HeightCM: req.HeightCM}
	if req.BirthDate != "" {
		born, err := parseDay(req.BirthDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		profile.BirthDate = &born
	}
	writeIngestResult(w, h.deps.UpsertProfile(r.Context(), req.AthleteID, profile))
}

type bodyRequest struct {
	AthleteID  string   `json:"athlete_id"`
	Date       string   `json:"date"`
	WeightKG   float64  `json:"weight_kg"`
	BodyFatPct *float64 `json:"body_fat_pct,omitempty"`
}

func (b bodyRequest) validate() error {
	switch {
	case strings.TrimSpace(b.AthleteID) == "":
		return errors.New("missing athlete_id")
	case strings.TrimSpace(b.Date) == "":
		return errors.New("missing date")
	}
	return nil
}

// HandlePostBody handles POST /body requests.
func (h *IngestHandler) HandlePostBody(w http.ResponseWriter, r *http.Request) {
	var req bodyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	date, err := parseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	sample := model.BodyComposition{Date: date, WeightKG: req.WeightKG, BodyFatPct: req.BodyFatPct}
	writeIngestResult(w, h.deps.RecordBodyComposition(r.Context(), req.AthleteID, sample))
}

type sleepRequest struct {
	AthleteID     string  `json:"athlete_id"`
	Date          string  `json:"date"`
	DurationHours float64 `json:"duration_hours"`
	Quality       int     `json:"quality"`
}

func (s sleepRequest) validate() error {
	switch {
	case strings.TrimSpace(s.AthleteID) == "":
		return errors.New("missing athlete_id")
	case strings.TrimSpace(s.Date) == "":
		return errors.New("missing date")
	}
	return nil
}

// HandlePostSleep handles POST /sleep requests.
func (h *IngestHandler) HandlePostSleep(w http.ResponseWriter, r *http.Request) {
	var req sleepRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	date, err := parseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	entry := model.SleepEntry{Date: date, DurationHours: req.DurationHours, Quality: req.Quality}
	writeIngestResult(w, h.deps.RecordSleep(r.Context(), req.AthleteID, entry))
}

type sessionRequest struct {
	AthleteID   string  `json:"athlete_id"`
	Date        string  `json:"date"`
	DurationMin float64 `json:"duration_min"`
	RPE         float64 `json:"rpe"`
}

func (s sessionRequest) validate() error {
	switch {
	case strings.TrimSpace(s.AthleteID) == "":
		return errors.New("missing athlete_id")
	case strings.TrimSpace(s.Date) == "":
		return errors.New("missing date")
	}
	return nil
}

// HandlePostSession handles POST /sessions requests.
func (h *IngestHandler) HandlePostSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	date, err := parseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	sess := model.TrainingSession{Date: date, DurationMin: req.DurationMin, RPE: req.RPE}
	writeIngestResult(w, h.deps.RecordTrainingSession(r.Context(), req.AthleteID, sess))
}

type recordRequest struct {
	AthleteID  string  `json:"athlete_id"`
	ExerciseID string  `json:"exercise_id"`
	Value      float64 `json:"value"`
	RecordedAt string  `json:"recorded_at"`
}

func (rr recordRequest) validate() error {
	switch {
	case strings.TrimSpace(rr.AthleteID) == "":
		return errors.New("missing athlete_id")
	case strings.TrimSpace(rr.ExerciseID) == "":
		return errors.New("missing exercise_id")
	case strings.TrimSpace(rr.RecordedAt) == "":
		return errors.New("missing recorded_at")
	}
	return nil
}

// HandlePostRecord handles POST /records requests.
func (h *IngestHandler) HandlePostRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	recordedAt, err := parseDay(req.RecordedAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	rec := model.PersonalRecord{ExerciseID: req.ExerciseID, Value: req.Value, RecordedAt: recordedAt}
	writeIngestResult(w, h.deps.RecordPersonalRecord(r.Context(), req.AthleteID, rec))
}
