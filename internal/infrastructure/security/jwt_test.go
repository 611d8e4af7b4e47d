package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialpulse/socialpulse-go/internal/domain/user"
)

const testSecret = "test-secret-key"

func TestRoleTokenRoundTrip(t *testing.T) {
	token, err := GenerateRoleToken(user.RoleEditor, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT(token, testSecret)
	require.NoError(t, err)

	identity := GetIdentityFromClaims(claims)
	require.NotNil(t, identity)
	assert.Equal(t, user.RoleEditor, identity.Role)

	expiry := TokenExpiry(claims)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := GenerateRoleToken(user.RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "some-other-secret")
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	token, err := GenerateRoleToken(user.RoleAdmin, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(token, testSecret)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestIdentityFromClaimsWithUnknownRole(t *testing.T) {
	claims := jwt.MapClaims{"role": "superuser"}
	assert.Nil(t, GetIdentityFromClaims(claims))
}
