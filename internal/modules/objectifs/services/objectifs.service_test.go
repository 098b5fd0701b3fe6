package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objectifs-core/internal/shared/apperror"
	"objectifs-core/internal/shared/authz"
)

func ptr(v int64) *int64 { return &v }

func TestGateBulkTargets(t *testing.T) {
	admin := authz.Identity{ID: 1, Role: authz.RoleAdmin}
	bum := authz.Identity{ID: 3, Role: authz.RoleBUM}

	ownTeam := []bulkTarget{
		{id: 7, bumID: ptr(3)},
		{id: 8, bumID: ptr(3)},
	}

	t.Run("BUM sur sa propre équipe", func(t *testing.T) {
		assert.NoError(t, gateBulkTargets(bum, ownTeam, nil, false))
	})

	t.Run("admin sur des équipes différentes", func(t *testing.T) {
		mixed := []bulkTarget{
			{id: 7, bumID: ptr(3)},
			{id: 9, bumID: ptr(4)},
			{id: 10, bumID: nil},
		}
		assert.NoError(t, gateBulkTargets(admin, mixed, nil, false))
	})

	t.Run("une seule cible étrangère rejette tout", func(t *testing.T) {
		targets := []bulkTarget{
			{id: 7, bumID: ptr(3)},
			{id: 9, bumID: ptr(4)},
			{id: 8, bumID: ptr(3)},
		}
		err := gateBulkTargets(bum, targets, nil, false)
		require.Error(t, err)

		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "NOT_YOUR_CONSULTANT", appErr.Code)
		assert.Equal(t, 403, appErr.Status)
	})

	t.Run("catégorie globale utilisable par toutes les cibles", func(t *testing.T) {
		assert.NoError(t, gateBulkTargets(bum, ownTeam, nil, true))
	})

	t.Run("catégorie privée refusée pour les autres cibles", func(t *testing.T) {
		// Possédée par le consultant 7, la cible 8 ne peut pas l'utiliser
		err := gateBulkTargets(bum, ownTeam, ptr(7), true)
		require.Error(t, err)

		var appErr *apperror.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "CATEGORY_NOT_USABLE", appErr.Code)
	})
}

func TestResolveYear(t *testing.T) {
	annee := 2024
	assert.Equal(t, 2024, resolveYear(&annee))
	assert.Equal(t, CurrentYear(), resolveYear(nil))
}
