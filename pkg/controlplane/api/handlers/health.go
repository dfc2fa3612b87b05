package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/paperbay/paperbay/pkg/controlplane/store"
)

// HealthCheckTimeout bounds database probes so a slow store cannot block
// health endpoints indefinitely.
const HealthCheckTimeout = 5 * time.Second

// HealthHandler serves the unauthenticated probe endpoints:
//   - Liveness: is the server process running?
//   - Readiness: can the server reach its database?
type HealthHandler struct {
	store     store.Store
	startTime time.Time
}

// NewHealthHandler creates a health handler. The store may be nil, in
// which case readiness reports unavailable.
func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{
		store:     s,
		startTime: time.Now(),
	}
}

// Liveness handles GET /health. Succeeds whenever the HTTP server is
// responsive; suitable as a Kubernetes liveness probe.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"service":    "paperbay",
		"started_at": h.startTime.UTC().Format(time.RFC3339),
		"uptime":     uptime.Round(time.Second).String(),
		"uptime_sec": int64(uptime.Seconds()),
	})
}

// Readiness handles GET /health/ready. Probes the database and reports
// 503 until it answers.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "unavailable",
			"error":  "store not initialized",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), HealthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := h.store.HealthCheck(ctx)
	latency := time.Since(start)

	if err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":  "unavailable",
			"error":   err.Error(),
			"latency": latency.String(),
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"latency": latency.String(),
	})
}
