package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"objectifs-core/internal/shared/authz"
)

func ptr(v int64) *int64 { return &v }

func TestListScope(t *testing.T) {
	admin := authz.Identity{ID: 1, Role: authz.RoleAdmin}
	bum := authz.Identity{ID: 3, Role: authz.RoleBUM}
	consultant := authz.Identity{ID: 7, Role: authz.RoleConsultant}

	t.Run("sans consultantId", func(t *testing.T) {
		// Un consultant voit ses propres catégories privées
		assert.Equal(t, ptr(7), listScope(consultant, nil, nil, false))

		// Admin et BUM ne voient que les globales
		assert.Nil(t, listScope(admin, nil, nil, false))
		assert.Nil(t, listScope(bum, nil, nil, false))
	})

	t.Run("avec consultantId autorisé", func(t *testing.T) {
		assert.Equal(t, ptr(7), listScope(admin, ptr(7), ptr(3), true))
		assert.Equal(t, ptr(7), listScope(bum, ptr(7), ptr(3), true))
		assert.Equal(t, ptr(7), listScope(consultant, ptr(7), nil, true))
	})

	t.Run("avec consultantId refusé", func(t *testing.T) {
		// Consultant d'un autre BUM : retombe sur les globales
		assert.Nil(t, listScope(bum, ptr(9), ptr(4), true))

		// Cible inconnue
		assert.Nil(t, listScope(bum, ptr(99), nil, false))

		// Un consultant visant un autre consultant retombe sur les siennes
		assert.Equal(t, ptr(7), listScope(consultant, ptr(8), ptr(3), true))
	})
}
