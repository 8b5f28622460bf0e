package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talentflow-hq/talentflow/internal/api/response"
	"github.com/talentflow-hq/talentflow/internal/pipeline"
	"github.com/talentflow-hq/talentflow/internal/store"
	"github.com/talentflow-hq/talentflow/pkg/models"
)

// NewListCandidatesHandler returns the handler for GET /api/candidates.
// Page size is fixed at store.CandidatePageSize.
func NewListCandidatesHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page := queryInt(q.Get("page"), 1)

		cands, total, err := s.ListCandidates(r.Context(), store.CandidateFilter{
			Search: q.Get("search"),
			Stage:  q.Get("stage"),
			Page:   page,
		})
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}
		if cands == nil {
			cands = []*models.Candidate{}
		}
		response.Page(w, cands, total, page, store.CandidatePageSize)
	}
}

// NewCreateCandidateHandler returns the handler for POST /api/candidates.
// The candidate's stage defaults to applied and the initial timeline entry is
// appended by the pipeline engine.
func NewCreateCandidateHandler(p *pipeline.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name  string `json:"name"`
			Email string `json:"email"`
			Stage string `json:"stage"`
			JobID string `json:"jobId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if req.Name == "" {
			response.Error(w, http.StatusBadRequest, "name is required")
			return
		}
		if req.Stage != "" && !models.ValidStage(req.Stage) {
			response.Error(w, http.StatusBadRequest, "unknown stage")
			return
		}

		cand, err := p.CreateCandidate(r.Context(), &models.Candidate{
			Name:  req.Name,
			Email: req.Email,
			Stage: req.Stage,
			JobID: req.JobID,
		})
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}
		response.Created(w, cand)
	}
}

// NewUpdateCandidateHandler returns the handler for PATCH /api/candidates/{id}.
// A stage change appends exactly one timeline entry; a same-stage patch
// appends none.
func NewUpdateCandidateHandler(p *pipeline.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req struct {
			Name  *string `json:"name"`
			Email *string `json:"email"`
			Stage *string `json:"stage"`
			JobID *string `json:"jobId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if req.Stage != nil && !models.ValidStage(*req.Stage) {
			response.Error(w, http.StatusBadRequest, "unknown stage")
			return
		}

		cand, err := p.Update(r.Context(), id, store.CandidatePatch{
			Name:  req.Name,
			Email: req.Email,
			Stage: req.Stage,
			JobID: req.JobID,
		})
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(w)
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}
		response.JSON(w, cand)
	}
}

// NewTimelineHandler returns the handler for GET /api/candidates/{id}/timeline.
// Entries come back sorted by timestamp ascending.
func NewTimelineHandler(p *pipeline.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		entries, err := p.Timeline(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(w)
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}
		if entries == nil {
			entries = []*models.TimelineEntry{}
		}
		response.JSON(w, entries)
	}
}
