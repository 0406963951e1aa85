package server

import (
	"context"
	"net/http"
	"time"

	"github.com/desertthunder/streamfront/internal/services"
)

// Pinger reaches the upstream API.
type Pinger interface {
	Get(ctx context.Context, path, token string) (*services.APIResponse, error)
}

// Health represents the health check response structure.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Upstream  struct {
		Status  string `json:"status"`
		Message string `json:"message,omitempty"`
	} `json:"upstream"`
}

// HealthCheck returns a handler reporting whether the upstream API answers.
//
// Any HTTP response counts as reachable; only transport failures degrade the check. A nil pinger skips the upstream.
func HealthCheck(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := Health{Status: "ok", Timestamp: time.Now()}

		if p == nil {
			health.Upstream.Status = "skipped"
			writeJSON(w, http.StatusOK, health)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if _, err := p.Get(ctx, "/", ""); err != nil {
			health.Status = "degraded"
			health.Upstream.Status = "error"
			health.Upstream.Message = "Upstream API unreachable"
			writeJSON(w, http.StatusServiceUnavailable, health)
			return
		}

		health.Upstream.Status = "ok"
		writeJSON(w, http.StatusOK, health)
	}
}
