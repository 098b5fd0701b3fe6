package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolExhausted(t *testing.T) {
	// Plus aucune connexion libre et plafond atteint
	assert.True(t, poolExhausted(0, 25, 25))

	assert.False(t, poolExhausted(2, 23, 25))
	assert.False(t, poolExhausted(0, 10, 25))
	assert.False(t, poolExhausted(1, 25, 25))
}
