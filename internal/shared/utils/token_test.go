package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objectifs-core/internal/shared/authz"
)

const testSecret = "secret-de-test"

func TestGenerateAndValidateToken(t *testing.T) {
	signed, claims, err := GenerateToken(42, "jdupont", authz.RoleBUM, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	require.NotEmpty(t, claims.ID)

	parsed, err := ValidateToken(signed, testSecret)
	require.NoError(t, err)

	assert.Equal(t, int64(42), parsed.UserID)
	assert.Equal(t, "jdupont", parsed.Username)
	assert.Equal(t, authz.RoleBUM, parsed.Role)
	assert.Equal(t, claims.ID, parsed.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), parsed.ExpiresAt.Time, 5*time.Second)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	signed, _, err := GenerateToken(1, "admin", authz.RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(signed, "autre-secret")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	signed, _, err := GenerateToken(1, "admin", authz.RoleAdmin, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(signed, testSecret)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("pas-un-token", testSecret)
	assert.Error(t, err)
}

func TestTokensCarryDistinctJTI(t *testing.T) {
	_, first, err := GenerateToken(1, "admin", authz.RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)
	_, second, err := GenerateToken(1, "admin", authz.RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}
