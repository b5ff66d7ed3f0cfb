package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthHandler reports whether the service and its dependencies are reachable
type HealthHandler struct {
	checks []HealthCheck
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checks []HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Handle runs every check. Any failure yields 503 with the failing names.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	healthy := true
	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			results[check.Name] = "unavailable"
			healthy = false
			continue
		}
		results[check.Name] = "ok"
	}

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
			"checks": results,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"checks": results,
	})
}
