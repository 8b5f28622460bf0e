package handler

import (
	"net/http"

	"github.com/talentflow-hq/talentflow/internal/api/response"
	"github.com/talentflow-hq/talentflow/internal/mirror"
)

// NewHealthHandler returns the handler for GET /health. The in-memory store
// has no failure mode worth probing; the durable mirror does.
func NewHealthHandler(m mirror.Mirror) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.Ping(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "mirror degraded")
			return
		}
		response.JSON(w, map[string]string{"status": "ok"})
	}
}
