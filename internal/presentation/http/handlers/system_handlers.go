// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/performance"
)

// SystemHandlers serves the root banner and health probe.
type SystemHandlers struct {
	perfTracker *performance.Tracker
}

// NewSystemHandlers creates system handlers with injected dependencies
func NewSystemHandlers(perfTracker *performance.Tracker) *SystemHandlers {
	return &SystemHandlers{perfTracker: perfTracker}
}

// GetRoot handles GET / - a short banner pointing at the API surface
func (h *SystemHandlers) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "API running. Use /api/* endpoints.",
	})
}

// GetHealth handles GET /api/health - liveness probe
func (h *SystemHandlers) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"status": "ok",
		"uptime": h.perfTracker.Uptime().String(),
	})
}
