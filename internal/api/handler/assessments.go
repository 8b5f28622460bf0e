package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talentflow-hq/talentflow/internal/api/response"
	"github.com/talentflow-hq/talentflow/internal/assessment"
	"github.com/talentflow-hq/talentflow/pkg/models"
)

// NewGetAssessmentHandler returns the handler for GET /api/assessments/{jobId}.
// A job without a saved assessment gets a synthesized empty schema.
func NewGetAssessmentHandler(a *assessment.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "jobId")

		out, err := a.GetSchema(r.Context(), jobID)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}
		response.JSON(w, out)
	}
}

// NewPutAssessmentHandler returns the handler for PUT /api/assessments/{jobId}:
// a wholesale upsert of the job's schema. The path wins over any jobId in the
// body.
func NewPutAssessmentHandler(a *assessment.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "jobId")

		var req struct {
			JobID  string        `json:"jobId"`
			Schema models.Schema `json:"schema"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		saved := &models.Assessment{JobID: jobID, Schema: req.Schema}
		if err := a.SaveSchema(r.Context(), saved); err != nil {
			response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}
		response.JSON(w, saved)
	}
}

// NewSubmitAssessmentHandler returns the handler for
// POST /api/assessments/{jobId}/submit. Validation failures surface the
// failing question's message and record nothing.
func NewSubmitAssessmentHandler(a *assessment.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "jobId")

		var req struct {
			CandidateID string         `json:"candidateId"`
			Answers     models.Answers `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		_, err := a.Submit(r.Context(), jobID, req.CandidateID, req.Answers)
		var verr *assessment.ValidationError
		if errors.As(err, &verr) {
			response.Error(w, http.StatusBadRequest, verr.Message)
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}
		response.OK(w)
	}
}
