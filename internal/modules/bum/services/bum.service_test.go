package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTauxValidation(t *testing.T) {
	// Aucune division par zéro quand l'équipe n'a pas d'objectif
	assert.Equal(t, 0, TauxValidation(0, 0))

	assert.Equal(t, 100, TauxValidation(4, 4))
	assert.Equal(t, 50, TauxValidation(2, 4))
	assert.Equal(t, 0, TauxValidation(0, 4))

	// Arrondi au plus proche
	assert.Equal(t, 33, TauxValidation(1, 3))
	assert.Equal(t, 67, TauxValidation(2, 3))
	assert.Equal(t, 17, TauxValidation(1, 6))
}
