package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialpulse/socialpulse-go/internal/application/services"
	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/performance"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence"
)

// AnalyticsHandlers serves the historical chart series.
type AnalyticsHandlers struct {
	analyticsService *services.AnalyticsService
	logger           *logging.ChanneledLogger
	perfTracker      *performance.Tracker
}

// NewAnalyticsHandlers creates analytics handlers with injected dependencies
func NewAnalyticsHandlers(analyticsService *services.AnalyticsService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		analyticsService: analyticsService,
		logger:           logger,
		perfTracker:      perfTracker,
	}
}

// GetSeries handles GET /api/analytics?range=week|month|year|inception
func (h *AnalyticsHandlers) GetSeries(c *gin.Context) {
	rangeKey := c.DefaultQuery("range", string(metrics.RangeWeek))

	series, err := h.analyticsService.Series(rangeKey)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":       "Invalid range parameter",
				"validRanges": metrics.ValidRanges,
			})
			return
		}
		if errors.Is(err, persistence.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Analytics data not found"})
			return
		}
		h.logger.Analytics().Error("Failed to load analytics", "range", rangeKey, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics"})
		return
	}

	c.JSON(http.StatusOK, series)
}
