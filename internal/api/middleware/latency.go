package middleware

import (
	"net/http"

	"github.com/talentflow-hq/talentflow/internal/simulate"
)

// Latency suspends every request for a delay sampled from the policy before
// dispatch, imitating a network round trip. The wait is per request and does
// not serialize other in-flight requests.
func Latency(policy *simulate.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := policy.Wait(r.Context()); err != nil {
				// Client went away during the simulated delay.
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
