package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/socialpulse/socialpulse-go/internal/application/services"
	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/performance"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence"
)

// MetricHandlers contains the follower and overview collection handlers
type MetricHandlers struct {
	metricService *services.MetricService
	logger        *logging.ChanneledLogger
	perfTracker   *performance.Tracker
}

// NewMetricHandlers creates metric handlers with injected dependencies
func NewMetricHandlers(metricService *services.MetricService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *MetricHandlers {
	return &MetricHandlers{
		metricService: metricService,
		logger:        logger,
		perfTracker:   perfTracker,
	}
}

// GetFollowers handles GET /api/followers
func (h *MetricHandlers) GetFollowers(c *gin.Context) {
	start := time.Now()

	followers, err := h.metricService.Followers()
	if err != nil {
		h.logger.Metrics().Error("Failed to load followers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load followers"})
		return
	}

	h.logger.Metrics().Debug("Served followers", "count", len(followers), "duration", time.Since(start))
	c.JSON(http.StatusOK, followers)
}

// PatchFollower handles PATCH /api/followers/:id
func (h *MetricHandlers) PatchFollower(c *gin.Context) {
	id := c.Param("id")

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	updated, err := h.metricService.PatchFollower(id, body)
	if err != nil {
		h.writePatchError(c, "followers", id, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetOverview handles GET /api/overview
func (h *MetricHandlers) GetOverview(c *gin.Context) {
	start := time.Now()

	overview, err := h.metricService.Overview()
	if err != nil {
		h.logger.Metrics().Error("Failed to load overview", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load overview"})
		return
	}

	h.logger.Metrics().Debug("Served overview", "count", len(overview), "duration", time.Since(start))
	c.JSON(http.StatusOK, overview)
}

// PatchOverview handles PATCH /api/overview/:id
func (h *MetricHandlers) PatchOverview(c *gin.Context) {
	id := c.Param("id")

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	updated, err := h.metricService.PatchOverview(id, body)
	if err != nil {
		h.writePatchError(c, "overview", id, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetTotalFollowers handles GET /api/total-followers
func (h *MetricHandlers) GetTotalFollowers(c *gin.Context) {
	total, err := h.metricService.TotalFollowers()
	if err != nil {
		h.logger.Metrics().Error("Failed to compute follower total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute follower total"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

// writePatchError maps patch failures to status codes: unknown id is 404, a
// patch that fails validation is 400, and anything else is a store fault
// answered with 500 and a generic body.
func (h *MetricHandlers) writePatchError(c *gin.Context, collection, id string, err error) {
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, metrics.ErrInvalidPatch):
		h.logger.Metrics().Warn("Rejected patch", "collection", collection, "id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Metrics().Error("Patch failed", "collection", collection, "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update record"})
	}
}
