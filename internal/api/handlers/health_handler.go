package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hackmap/engine/internal/api/types"
	"github.com/hackmap/engine/pkg/logger"
)

// Checker probes one dependency for readiness.
type Checker func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Checker
}

func NewHealthHandler(checks map[string]Checker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]string{"status": "ok"}})
}

// Readiness runs every check with a short deadline and reports each result.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	ready := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			logger.L().Warn("readiness check failed", zap.String("check", name), zap.Error(err))
			results[name] = "down"
			ready = false
			continue
		}
		results[name] = "up"
	}

	if !ready {
		writeJSON(w, http.StatusServiceUnavailable, types.APIResponse{
			Success: false,
			Data:    map[string]any{"status": "not ready", "checks": results},
			Error:   &types.APIError{Code: "unavailable", Message: "dependency unavailable"},
		})
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]any{"status": "ready", "checks": results}})
}
