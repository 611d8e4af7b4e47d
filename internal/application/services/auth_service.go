package services

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/socialpulse/socialpulse-go/internal/domain/user"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/performance"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/security"
	"github.com/socialpulse/socialpulse-go/pkg/config"
)

// AuthService validates dashboard credentials and issues role tokens.
type AuthService struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthService creates a new authentication service.
func NewAuthService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthService {
	return &AuthService{
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// AuthResult holds authentication result data
type AuthResult struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Authenticate matches the password against the configured role passwords
// and returns a signed token for the first role that matches. The passwords
// may be bcrypt hashes or, for local development, plaintext.
func (a *AuthService) Authenticate(password string) *AuthResult {
	marker := a.perfTracker.StartOperation("authenticate")
	defer marker.Complete()

	role := a.matchRole(password)
	if role == "" {
		marker.SetSuccess(false)
		a.logger.Auth().Warn("Authentication failed", "reason", "invalid_credentials")
		return &AuthResult{Success: false, Error: "Invalid credentials"}
	}

	token, err := security.GenerateRoleToken(role, config.JWTSecret, config.AuthTokenTTL)
	if err != nil {
		marker.SetError(err)
		a.logger.Auth().Error("Token generation failed", "error", err)
		return &AuthResult{Success: false, Error: "Token generation failed"}
	}
	marker.SetSuccess(true)

	a.logger.Auth().Info("Authentication succeeded", "role", role, "ttl", config.AuthTokenTTL)
	return &AuthResult{Token: token, Role: string(role), Success: true}
}

func (a *AuthService) matchRole(password string) user.Role {
	candidates := []struct {
		role   user.Role
		secret string
	}{
		{user.RoleAdmin, config.AdminPassword},
		{user.RoleEditor, config.EditorPassword},
		{user.RoleViewer, config.ViewerPassword},
	}

	for _, c := range candidates {
		if c.secret == "" {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(c.secret), []byte(password)); err == nil {
			return c.role
		}
	}

	// Fallback for plaintext passwords during local development
	for _, c := range candidates {
		if c.secret != "" && password == c.secret {
			return c.role
		}
	}
	return ""
}

// Status describes a presented token: whether it is valid, its role and
// the role's permission set.
type Status struct {
	Authenticated bool              `json:"authenticated"`
	Role          string            `json:"role,omitempty"`
	Permissions   []user.Permission `json:"permissions,omitempty"`
	ExpiresAt     *time.Time        `json:"expiresAt,omitempty"`
}

// TokenStatus inspects a bearer token without requiring any permission.
func (a *AuthService) TokenStatus(tokenString string) *Status {
	if tokenString == "" {
		return &Status{Authenticated: false}
	}

	claims, err := security.ValidateJWT(tokenString, config.JWTSecret)
	if err != nil {
		return &Status{Authenticated: false}
	}

	identity := security.GetIdentityFromClaims(claims)
	if identity == nil {
		return &Status{Authenticated: false}
	}

	expiry := security.TokenExpiry(claims)
	status := &Status{
		Authenticated: true,
		Role:          string(identity.Role),
		Permissions:   user.Permissions(identity.Role),
	}
	if !expiry.IsZero() {
		status.ExpiresAt = &expiry
	}
	return status
}

// IdentityFromToken resolves a bearer token to an identity, or nil.
func (a *AuthService) IdentityFromToken(tokenString string) *user.Identity {
	if tokenString == "" {
		return nil
	}
	claims, err := security.ValidateJWT(tokenString, config.JWTSecret)
	if err != nil {
		return nil
	}
	return security.GetIdentityFromClaims(claims)
}
