package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialpulse/socialpulse-go/internal/application/services"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/pkg/config"
)

// CSRFTokenHeader is the request header carrying the double-submit token.
const CSRFTokenHeader = "x-csrf-token"

// CSRFMiddleware enforces the double-submit check on every mutating request.
// Safe methods pass through untouched. Validation fails closed: a missing
// session cookie, missing header or stale token all yield 403 before any
// handler runs.
func CSRFMiddleware(csrfService *services.CsrfService, logger *logging.ChanneledLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		sessionID, _ := c.Cookie(config.CSRFSessionName)
		token := c.GetHeader(CSRFTokenHeader)

		if !csrfService.Validate(sessionID, token) {
			logger.CSRF().Warn("Rejected request failing CSRF check",
				"method", c.Request.Method, "path", c.Request.URL.Path,
				"hasSession", sessionID != "", "hasToken", token != "")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid CSRF token"})
			return
		}

		c.Next()
	}
}
