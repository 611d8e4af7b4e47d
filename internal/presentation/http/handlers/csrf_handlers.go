package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialpulse/socialpulse-go/internal/application/services"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/performance"
	"github.com/socialpulse/socialpulse-go/pkg/config"
)

// CsrfHandlers issues double-submit tokens.
type CsrfHandlers struct {
	csrfService *services.CsrfService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewCsrfHandlers creates CSRF handlers with injected dependencies
func NewCsrfHandlers(csrfService *services.CsrfService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CsrfHandlers {
	return &CsrfHandlers{
		csrfService: csrfService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetToken handles GET /api/csrf-token - mints a token bound to the caller's
// session cookie, creating the session when the request carried none.
func (h *CsrfHandlers) GetToken(c *gin.Context) {
	marker := h.perfTracker.StartOperation("get_csrf_token")
	defer marker.Complete()

	sessionID, _ := c.Cookie(config.CSRFSessionName)

	sessionID, token, err := h.csrfService.IssueToken(sessionID)
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue CSRF token"})
		return
	}
	marker.SetSuccess(true)

	setSessionCookie(c, sessionID)
	c.JSON(http.StatusOK, gin.H{"csrfToken": token})
}

// setSessionCookie writes the CSRF session cookie. Secure and SameSite
// tighten up outside local development.
func setSessionCookie(c *gin.Context, sessionID string) {
	sameSite := http.SameSiteLaxMode
	if config.IsProduction() {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(config.CSRFSessionName, sessionID,
		int(config.CSRFTokenTTL.Seconds()), "/", "", config.IsProduction(), true)
}
