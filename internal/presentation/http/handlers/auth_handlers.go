package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialpulse/socialpulse-go/internal/application/services"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/performance"
	"github.com/socialpulse/socialpulse-go/internal/presentation/http/middleware"
	"github.com/socialpulse/socialpulse-go/pkg/config"
)

// AuthHandlers contains all authentication-related HTTP handlers
type AuthHandlers struct {
	authService *services.AuthService
	csrfService *services.CsrfService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, csrfService *services.CsrfService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		csrfService: csrfService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// PostLogin handles POST /api/auth/login - password to role token exchange.
// The token goes back in the body and in a cookie so the websocket upgrade
// can authenticate too.
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	result := h.authService.Authenticate(req.Password)
	if !result.Success {
		c.JSON(http.StatusUnauthorized, gin.H{"error": result.Error})
		return
	}

	setAuthCookie(c, result.Token, int(config.AuthTokenTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"token": result.Token, "role": result.Role})
}

// PostLogout handles POST /api/auth/logout - clears the auth cookie and
// revokes the session's CSRF token.
func (h *AuthHandlers) PostLogout(c *gin.Context) {
	if sessionID, err := c.Cookie(config.CSRFSessionName); err == nil {
		h.csrfService.Revoke(sessionID)
	}
	setAuthCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetStatus handles GET /api/auth/status - reports on the presented token
// without requiring any permission.
func (h *AuthHandlers) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.authService.TokenStatus(middleware.ResolveAuthToken(c)))
}

func setAuthCookie(c *gin.Context, token string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if config.IsProduction() {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(middleware.AuthTokenCookie, token, maxAge, "/", "", config.IsProduction(), true)
}
