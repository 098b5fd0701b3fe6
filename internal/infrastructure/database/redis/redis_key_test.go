package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyGenerator(t *testing.T) {
	kg := NewKeyGenerator("development")

	assert.Equal(t, "objectifs_development_auth_attempts:jdupont",
		kg.LoginAttempts("jdupont"))
	assert.Equal(t, "objectifs_development_auth_revoked:abc-123",
		kg.RevokedToken("abc-123"))
}

func TestKeyGeneratorSeparatesEnvironments(t *testing.T) {
	dev := NewKeyGenerator("development")
	prod := NewKeyGenerator("production")

	assert.NotEqual(t, dev.LoginAttempts("jdupont"), prod.LoginAttempts("jdupont"))
}
