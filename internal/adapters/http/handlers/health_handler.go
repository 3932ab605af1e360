package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/period-service/internal/ports"
)

const (
	statusOK       = "ok"
	statusReady    = "ready"
	statusNotReady = "not_ready"
)

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a HealthHandler reading checks from registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live and always answers 200.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: statusOK})
}

// Readiness handles GET /health/ready. Any failing check turns the answer
// into a 503; the per-check results are always listed. A service running on
// the system clock has no checks and is always ready.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: statusReady, Checks: map[string]string{}}
	code := http.StatusOK

	for name, err := range h.registry.CheckAll(r.Context()) {
		if err == nil {
			resp.Checks[name] = statusOK
			continue
		}
		resp.Checks[name] = err.Error()
		resp.Status = statusNotReady
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, resp)
}
