package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talentflow-hq/talentflow/internal/api/middleware"
	"github.com/talentflow-hq/talentflow/internal/api/response"
	"github.com/talentflow-hq/talentflow/internal/metrics"
	"github.com/talentflow-hq/talentflow/internal/simulate"
)

// Dependencies holds all handler dependencies for the router.
type Dependencies struct {
	Policy *simulate.Policy

	HealthHandler http.HandlerFunc

	ListJobs   http.HandlerFunc
	CreateJob  http.HandlerFunc
	UpdateJob  http.HandlerFunc
	ReorderJob http.HandlerFunc

	ListCandidates  http.HandlerFunc
	CreateCandidate http.HandlerFunc
	UpdateCandidate http.HandlerFunc
	GetTimeline     http.HandlerFunc

	GetAssessment    http.HandlerFunc
	PutAssessment    http.HandlerFunc
	SubmitAssessment http.HandlerFunc
}

// NewRouter builds the chi router with the middleware stack and all routes.
// The simulated latency applies only to the /api surface; health and metrics
// respond immediately.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(metrics.Middleware())

	r.Get("/health", orNotImplemented(deps.HealthHandler))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		if deps.Policy != nil {
			r.Use(middleware.Latency(deps.Policy))
		}

		r.Get("/api/jobs", orNotImplemented(deps.ListJobs))
		r.Post("/api/jobs", orNotImplemented(deps.CreateJob))
		r.Patch("/api/jobs/{id}", orNotImplemented(deps.UpdateJob))
		r.Patch("/api/jobs/{id}/reorder", orNotImplemented(deps.ReorderJob))

		r.Get("/api/candidates", orNotImplemented(deps.ListCandidates))
		r.Post("/api/candidates", orNotImplemented(deps.CreateCandidate))
		r.Patch("/api/candidates/{id}", orNotImplemented(deps.UpdateCandidate))
		r.Get("/api/candidates/{id}/timeline", orNotImplemented(deps.GetTimeline))

		r.Get("/api/assessments/{jobId}", orNotImplemented(deps.GetAssessment))
		r.Put("/api/assessments/{jobId}", orNotImplemented(deps.PutAssessment))
		r.Post("/api/assessments/{jobId}/submit", orNotImplemented(deps.SubmitAssessment))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "Endpoint not yet implemented")
	}
}
