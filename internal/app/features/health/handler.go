// internal/app/features/health/handler.go

// Package health exposes the liveness endpoint. The process is healthy
// as long as it can serve; the backend's reachability is reported via
// the circuit breaker state rather than probed inline, so a health poll
// never adds load to a struggling backend.
package health

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// BreakerStater reports the gateway circuit breaker state
// ("closed", "half-open", "open").
type BreakerStater interface {
	BreakerState() string
}

type Handler struct {
	Gateway BreakerStater
	Log     *zap.Logger
}

func NewHandler(gw BreakerStater, logger *zap.Logger) *Handler {
	return &Handler{Gateway: gw, Log: logger}
}

type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// Serve handles GET /health.
//
// Always 200 with {"status":"ok","backend":"closed|half-open|open"};
// an open breaker means the backend is refusing or failing but the
// front-end itself is alive, which is what a load balancer needs to
// know.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "ok",
		Backend: h.Gateway.BreakerState(),
	}
	if resp.Backend == "open" {
		h.Log.Warn("health-check: gateway breaker open")
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
