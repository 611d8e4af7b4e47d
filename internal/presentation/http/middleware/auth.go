package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/socialpulse/socialpulse-go/internal/application/services"
	"github.com/socialpulse/socialpulse-go/internal/domain/user"
)

const identityKey = "identity"

// AuthTokenCookie is the fallback cookie for clients that cannot set an
// Authorization header (the websocket upgrade, for one).
const AuthTokenCookie = "auth_token"

// IdentityMiddleware resolves the bearer token (header first, cookie as
// fallback) to an identity and stores it on the context. Requests without a
// valid token continue anonymously; permission checks happen downstream.
func IdentityMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity := authService.IdentityFromToken(ResolveAuthToken(c)); identity != nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// ResolveAuthToken extracts the request's auth token: Authorization bearer
// header first, auth cookie as fallback. Empty when neither is present.
func ResolveAuthToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	token, _ := c.Cookie(AuthTokenCookie)
	return token
}

// GetIdentity returns the authenticated identity, if any.
func GetIdentity(c *gin.Context) (*user.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*user.Identity)
	return identity, ok
}

// RequirePermission rejects requests whose identity lacks the permission:
// 401 with no identity at all, 403 for an identity that cannot.
func RequirePermission(permission user.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, exists := GetIdentity(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !identity.Can(permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
