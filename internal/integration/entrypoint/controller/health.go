// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	checks map[string]HealthCheck
	now    func() time.Time
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
	Timestamp    string            `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// Checks are keyed by the dependency name reported in the response.
func NewHealthController(checks map[string]HealthCheck) *HealthController {
	return &HealthController{
		checks: checks,
		now:    time.Now,
	}
}

// Check handles GET /health requests.
// It answers 200 with status "degraded" when a dependency is down.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if check == nil {
			continue
		}
		if err := check(ctx); err != nil {
			deps[name] = "disconnected"
			status = "degraded"
			continue
		}
		deps[name] = "connected"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:       status,
		Dependencies: deps,
		Timestamp:    h.now().UTC().Format(time.RFC3339),
	})
}
