package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/talentflow-hq/talentflow/internal/api/response"
	"github.com/talentflow-hq/talentflow/internal/mirror"
	"github.com/talentflow-hq/talentflow/internal/simulate"
	"github.com/talentflow-hq/talentflow/internal/store"
	"github.com/talentflow-hq/talentflow/pkg/models"
)

const defaultJobPageSize = 10

// NewListJobsHandler returns the handler for GET /api/jobs.
func NewListJobsHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page := queryInt(q.Get("page"), 1)
		pageSize := queryInt(q.Get("pageSize"), defaultJobPageSize)

		jobs, total, err := s.ListJobs(r.Context(), store.JobFilter{
			Search:   q.Get("search"),
			Status:   q.Get("status"),
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}
		if jobs == nil {
			jobs = []*models.Job{}
		}
		response.Page(w, jobs, total, page, pageSize)
	}
}

// NewCreateJobHandler returns the handler for POST /api/jobs. The transient
// failure draw happens before any mutation, so a rejected request leaves the
// store untouched.
func NewCreateJobHandler(s store.Store, m mirror.Mirror, policy *simulate.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if policy.ShouldFail(policy.CreateFailureRate) {
			response.Error(w, http.StatusInternalServerError, "Random failure")
			return
		}

		var req struct {
			Title string   `json:"title"`
			Slug  string   `json:"slug"`
			Tags  []string `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if req.Title == "" {
			response.Error(w, http.StatusBadRequest, "title is required")
			return
		}
		if req.Slug == "" {
			req.Slug = Slugify(req.Title)
		}

		job, err := s.CreateJob(r.Context(), &models.Job{
			Title:  req.Title,
			Slug:   req.Slug,
			Status: models.JobStatusActive,
			Tags:   req.Tags,
		})
		if errors.Is(err, store.ErrDuplicateSlug) {
			response.Error(w, http.StatusBadRequest, "Slug must be unique")
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}

		mirrorPut(r.Context(), m, mirror.KindJob, job.ID, job)
		response.Created(w, job)
	}
}

// NewUpdateJobHandler returns the handler for PATCH /api/jobs/{id}.
func NewUpdateJobHandler(s store.Store, m mirror.Mirror) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req struct {
			Title  *string   `json:"title"`
			Slug   *string   `json:"slug"`
			Status *string   `json:"status"`
			Tags   *[]string `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if req.Status != nil && !models.ValidJobStatus(*req.Status) {
			response.Error(w, http.StatusBadRequest, "status must be active or archived")
			return
		}

		job, err := s.UpdateJob(r.Context(), id, store.JobPatch{
			Title:  req.Title,
			Slug:   req.Slug,
			Status: req.Status,
			Tags:   req.Tags,
		})
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(w)
			return
		}
		if errors.Is(err, store.ErrDuplicateSlug) {
			response.Error(w, http.StatusBadRequest, "Slug must be unique")
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}

		mirrorPut(r.Context(), m, mirror.KindJob, job.ID, job)
		response.JSON(w, job)
	}
}

// NewReorderJobHandler returns the handler for PATCH /api/jobs/{id}/reorder.
// The failure draw precedes the recomputation; a rejected reorder never
// touches any job's rank.
func NewReorderJobHandler(s store.Store, m mirror.Mirror, policy *simulate.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if policy.ShouldFail(policy.ReorderFailureRate) {
			response.Error(w, http.StatusInternalServerError, "Reorder failed, rollback")
			return
		}

		var req struct {
			FromOrder int `json:"fromOrder"`
			ToOrder   int `json:"toOrder"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		changed, err := s.ReorderJobs(r.Context(), req.FromOrder, req.ToOrder)
		if errors.Is(err, store.ErrInvalidOrder) {
			response.Error(w, http.StatusBadRequest, "Invalid fromOrder")
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}

		for _, job := range changed {
			mirrorPut(r.Context(), m, mirror.KindJob, job.ID, job)
		}
		response.OK(w)
	}
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a job title.
func Slugify(title string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

func queryInt(v string, defaultVal int) int {
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// mirrorPut is the best-effort write-through used by handlers that talk to
// the store directly.
func mirrorPut(ctx context.Context, m mirror.Mirror, kind mirror.Kind, key string, entity any) {
	if err := m.Put(ctx, kind, key, entity); err != nil {
		slog.Warn("mirror write failed", "kind", kind, "key", key, "error", err)
	}
}
