package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("motdepasse")
	require.NoError(t, err)
	require.NotEqual(t, "motdepasse", hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2"))

	assert.True(t, VerifyPassword("motdepasse", hashed))
	assert.False(t, VerifyPassword("mauvais", hashed))
	assert.False(t, VerifyPassword("motdepasse", "pas-un-hash"))
}

func TestGeneratePassword(t *testing.T) {
	first := GeneratePassword()
	second := GeneratePassword()

	assert.Len(t, first, 12)
	assert.Len(t, second, 12)
	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "-")
}
