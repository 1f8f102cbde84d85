package api

import (
	"net/http"

	"github.com/pottypal/potty-timer/internal/api/respond"
)

// HealthHandler reports the cached aggregate service health.
type HealthHandler struct {
	isHealthy func() bool
}

func NewHealthHandler(isHealthy func() bool) *HealthHandler {
	return &HealthHandler{isHealthy: isHealthy}
}

// CheckHealth GET /health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	if h.isHealthy != nil && !h.isHealthy() {
		respond.WriteError(w, http.StatusServiceUnavailable, "Service unhealthy", "dependency health check failing")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  "healthy",
	})
}
