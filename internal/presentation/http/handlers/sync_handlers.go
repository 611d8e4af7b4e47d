package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialpulse/socialpulse-go/internal/application/services"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/integrations"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/performance"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/persistence"
)

// SyncHandlers triggers live refreshes from the platform APIs.
type SyncHandlers struct {
	syncService *services.SyncService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewSyncHandlers creates sync handlers with injected dependencies
func NewSyncHandlers(syncService *services.SyncService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SyncHandlers {
	return &SyncHandlers{
		syncService: syncService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// PostSyncFollower handles POST /api/followers/:id/sync
func (h *SyncHandlers) PostSyncFollower(c *gin.Context) {
	id := c.Param("id")

	result, err := h.syncService.SyncFollower(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, persistence.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		case errors.Is(err, integrations.ErrNoProvider):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No live source for this platform"})
		default:
			h.logger.Sync().Error("Follower sync failed", "id", id, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Platform fetch failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
