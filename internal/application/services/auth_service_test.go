package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/performance"
	"github.com/socialpulse/socialpulse-go/pkg/config"
)

func newAuthService() *AuthService {
	return NewAuthService(logging.NewDiscardLogger(), performance.NewTracker(performance.DefaultTrackerConfig()))
}

func TestAuthenticateWithPlaintextPasswords(t *testing.T) {
	config.JWTSecret = "auth-test-secret"
	config.AdminPassword = "admin-pass"
	config.EditorPassword = "editor-pass"
	config.ViewerPassword = ""

	svc := newAuthService()

	result := svc.Authenticate("admin-pass")
	require.True(t, result.Success)
	assert.Equal(t, "admin", result.Role)
	assert.NotEmpty(t, result.Token)

	result = svc.Authenticate("editor-pass")
	require.True(t, result.Success)
	assert.Equal(t, "editor", result.Role)

	result = svc.Authenticate("wrong")
	assert.False(t, result.Success)
	assert.Equal(t, "Invalid credentials", result.Error)
}

func TestAuthenticateWithBcryptHash(t *testing.T) {
	config.JWTSecret = "auth-test-secret"
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	config.AdminPassword = string(hash)
	config.EditorPassword = ""
	config.ViewerPassword = ""

	result := newAuthService().Authenticate("s3cret")
	require.True(t, result.Success)
	assert.Equal(t, "admin", result.Role)
}

func TestTokenStatusRoundTrip(t *testing.T) {
	config.JWTSecret = "auth-test-secret"
	config.AdminPassword = "admin-pass"

	svc := newAuthService()
	result := svc.Authenticate("admin-pass")
	require.True(t, result.Success)

	status := svc.TokenStatus(result.Token)
	require.True(t, status.Authenticated)
	assert.Equal(t, "admin", status.Role)
	assert.NotNil(t, status.ExpiresAt)

	assert.False(t, svc.TokenStatus("").Authenticated)
	assert.False(t, svc.TokenStatus("garbage").Authenticated)
}
