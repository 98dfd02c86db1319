// Package api exposes quiz and study-sheet generation over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/quizcraft/backend/internal/export"
	"github.com/quizcraft/backend/internal/models"
	"github.com/quizcraft/backend/internal/pipeline"
)

type Handler struct {
	pipeline *pipeline.Pipeline
	defaults models.QuizConfig
}

// NewHandler binds the pipeline with the server-wide generation
// defaults; per-request config fields overlay them.
func NewHandler(p *pipeline.Pipeline, defaults models.QuizConfig) *Handler {
	return &Handler{pipeline: p, defaults: defaults}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type generateRequest struct {
	Text   string            `json:"text"`
	Config models.QuizConfig `json:"config"`
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	format, err := requestFormat(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.pipeline.GenerateQuiz(r.Context(), req.Text, h.merged(req.Config))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if format == export.FormatJSON {
		writeJSON(w, http.StatusOK, quiz)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	if err := export.WriteQuiz(w, quiz, format); err != nil {
		log.Printf("ERROR: exporting quiz %s as %s: %v", quiz.ID, format, err)
	}
}

func (h *Handler) CreateStudySheet(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	format, err := requestFormat(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	sheet, err := h.pipeline.GenerateStudySheet(r.Context(), req.Text, h.merged(req.Config))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if format == export.FormatJSON {
		writeJSON(w, http.StatusOK, sheet)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	if err := export.WriteStudySheet(w, sheet, format); err != nil {
		log.Printf("ERROR: exporting study sheet as %s: %v", format, err)
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// writeError maps pipeline errors onto HTTP statuses: caller mistakes
// are 400, content that cannot yield a quiz is 422, capability
// failures are 502.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var insufficient *models.InsufficientItemsError
	var capTimeout *models.CapabilityTimeoutError
	var capFailure *models.CapabilityFailureError

	switch {
	case errors.Is(err, models.ErrEmptyInput):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Input text is empty"})
	case errors.Is(err, models.ErrNoCandidates):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "No question candidates could be generated from this text"})
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.As(err, &capTimeout), errors.As(err, &capFailure):
		log.Printf("ERROR: capability failure: %v", err)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "Generation backend unavailable"})
	default:
		// Config validation errors read fine as-is; anything else is
		// still the caller's request shape.
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
}

// merged overlays non-zero request fields on the server defaults.
func (h *Handler) merged(req models.QuizConfig) models.QuizConfig {
	out := h.defaults
	if req.TargetItemCount > 0 {
		out.TargetItemCount = req.TargetItemCount
	}
	if req.MinItemCount > 0 {
		out.MinItemCount = req.MinItemCount
	}
	if len(req.TypesAllowed) > 0 {
		out.TypesAllowed = req.TypesAllowed
	}
	if len(req.TypeTarget) > 0 {
		out.TypeTarget = req.TypeTarget
	}
	if len(req.DifficultyTarget) > 0 {
		out.DifficultyTarget = req.DifficultyTarget
	}
	if req.MinUnitLength > 0 {
		out.MinUnitLength = req.MinUnitLength
	}
	if req.MaxUnitLength > 0 {
		out.MaxUnitLength = req.MaxUnitLength
	}
	if req.MinQuestionLength > 0 {
		out.MinQuestionLength = req.MinQuestionLength
	}
	if req.MaxQuestionLength > 0 {
		out.MaxQuestionLength = req.MaxQuestionLength
	}
	if req.MaxTypeShare > 0 {
		out.MaxTypeShare = req.MaxTypeShare
	}
	if req.MinDistinctUnits > 0 {
		out.MinDistinctUnits = req.MinDistinctUnits
	}
	if req.SimilarityThreshold > 0 {
		out.SimilarityThreshold = req.SimilarityThreshold
	}
	if req.GroundedThreshold > 0 {
		out.GroundedThreshold = req.GroundedThreshold
	}
	if req.WorthinessThreshold > 0 {
		out.WorthinessThreshold = req.WorthinessThreshold
	}
	if req.MaxRetriesPerUnit > 0 {
		out.MaxRetriesPerUnit = req.MaxRetriesPerUnit
	}
	if req.Concurrency > 0 {
		out.Concurrency = req.Concurrency
	}
	if req.PerRequestDeadline > 0 {
		out.PerRequestDeadline = req.PerRequestDeadline
	}
	if req.CapabilityTimeout > 0 {
		out.CapabilityTimeout = req.CapabilityTimeout
	}
	if req.ShuffleSeed != nil {
		out.ShuffleSeed = req.ShuffleSeed
	}
	return out
}

func requestFormat(r *http.Request) (export.Format, error) {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		return export.FormatJSON, nil
	}
	return export.ParseFormat(raw)
}

func contentType(format export.Format) string {
	switch format {
	case export.FormatText:
		return "text/plain; charset=utf-8"
	case export.FormatHTML:
		return "text/html; charset=utf-8"
	case export.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
