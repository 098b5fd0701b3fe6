package authz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objectifs-core/internal/shared/apperror"
)

func ptr(v int64) *int64 { return &v }

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleBUM.Valid())
	assert.True(t, RoleConsultant.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("SUPERADMIN").Valid())
	assert.False(t, Role("admin").Valid())
}

func TestRequireRole(t *testing.T) {
	admin := Identity{ID: 1, Role: RoleAdmin}
	consultant := Identity{ID: 2, Role: RoleConsultant}

	assert.NoError(t, RequireRole(admin, RoleAdmin))

	err := RequireRole(consultant, RoleAdmin)
	require.Error(t, err)

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 403, appErr.Status)
	assert.Equal(t, "ROLE_REQUIRED", appErr.Code)
}

func TestRequireAnyRole(t *testing.T) {
	bum := Identity{ID: 3, Role: RoleBUM}

	assert.NoError(t, RequireAnyRole(bum, RoleAdmin, RoleBUM))
	assert.Error(t, RequireAnyRole(bum, RoleAdmin))
	assert.Error(t, RequireAnyRole(bum))
}

func TestRequireOwnershipOrElevated(t *testing.T) {
	owner := Identity{ID: 7, Role: RoleConsultant}
	admin := Identity{ID: 1, Role: RoleAdmin}
	other := Identity{ID: 9, Role: RoleConsultant}

	assert.NoError(t, RequireOwnershipOrElevated(owner, 7))
	assert.NoError(t, RequireOwnershipOrElevated(admin, 7, RoleAdmin))

	err := RequireOwnershipOrElevated(other, 7, RoleAdmin)
	require.Error(t, err)

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_OWNER", appErr.Code)
}

func TestRequireManagedBy(t *testing.T) {
	bum := Identity{ID: 3, Role: RoleBUM}

	assert.NoError(t, RequireManagedBy(bum, ptr(3)))

	// Consultant d'un autre BUM
	err := RequireManagedBy(bum, ptr(4))
	require.Error(t, err)
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_YOUR_CONSULTANT", appErr.Code)
	assert.Equal(t, 403, appErr.Status)

	// Consultant sans rattachement
	assert.Error(t, RequireManagedBy(bum, nil))
}

func TestCanViewConsultant(t *testing.T) {
	admin := Identity{ID: 1, Role: RoleAdmin}
	bum := Identity{ID: 3, Role: RoleBUM}
	consultant := Identity{ID: 7, Role: RoleConsultant}

	assert.True(t, CanViewConsultant(admin, 7, nil))
	assert.True(t, CanViewConsultant(consultant, 7, nil))
	assert.True(t, CanViewConsultant(bum, 7, ptr(3)))

	assert.False(t, CanViewConsultant(bum, 7, ptr(4)))
	assert.False(t, CanViewConsultant(bum, 7, nil))
	assert.False(t, CanViewConsultant(consultant, 8, ptr(3)))
}

func TestIsOwningBUM(t *testing.T) {
	bum := Identity{ID: 3, Role: RoleBUM}
	admin := Identity{ID: 3, Role: RoleAdmin}

	assert.True(t, IsOwningBUM(bum, ptr(3)))
	assert.False(t, IsOwningBUM(bum, ptr(4)))
	assert.False(t, IsOwningBUM(bum, nil))

	// Même ID mais pas le rôle BUM
	assert.False(t, IsOwningBUM(admin, ptr(3)))
}

func TestRequireManageable(t *testing.T) {
	admin := Identity{ID: 1, Role: RoleAdmin}
	bum := Identity{ID: 3, Role: RoleBUM}

	// Un admin passe quelle que soit la cible
	assert.NoError(t, RequireManageable(admin, ptr(4)))
	assert.NoError(t, RequireManageable(admin, nil))

	assert.NoError(t, RequireManageable(bum, ptr(3)))

	err := RequireManageable(bum, ptr(4))
	require.Error(t, err)
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_YOUR_CONSULTANT", appErr.Code)
}

func TestCanEditObjectif(t *testing.T) {
	tests := []struct {
		name       string
		identity   Identity
		ownerID    int64
		ownerBumID *int64
		want       bool
	}{
		{"propriétaire", Identity{ID: 7, Role: RoleConsultant}, 7, ptr(3), true},
		{"admin", Identity{ID: 1, Role: RoleAdmin}, 7, ptr(3), true},
		{"BUM de rattachement", Identity{ID: 3, Role: RoleBUM}, 7, ptr(3), true},
		{"autre consultant", Identity{ID: 8, Role: RoleConsultant}, 7, ptr(3), false},
		{"autre BUM", Identity{ID: 4, Role: RoleBUM}, 7, ptr(3), false},
		{"BUM sans rattachement", Identity{ID: 3, Role: RoleBUM}, 7, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEditObjectif(tt.identity, tt.ownerID, tt.ownerBumID))
		})
	}
}

func TestCanValidateObjectif(t *testing.T) {
	tests := []struct {
		name       string
		identity   Identity
		ownerBumID *int64
		want       bool
	}{
		{"admin", Identity{ID: 1, Role: RoleAdmin}, ptr(3), true},
		{"BUM de rattachement", Identity{ID: 3, Role: RoleBUM}, ptr(3), true},
		{"autre BUM", Identity{ID: 4, Role: RoleBUM}, ptr(3), false},
		// Le propriétaire consultant ne peut pas s'auto-valider
		{"consultant propriétaire", Identity{ID: 7, Role: RoleConsultant}, ptr(3), false},
		{"consultant sans rattachement", Identity{ID: 7, Role: RoleConsultant}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanValidateObjectif(tt.identity, tt.ownerBumID))
		})
	}
}

func TestCanUseCategorie(t *testing.T) {
	// Globale : utilisable par tout le monde
	assert.True(t, CanUseCategorie(nil, 7))

	// Privée : uniquement son propriétaire
	assert.True(t, CanUseCategorie(ptr(7), 7))
	assert.False(t, CanUseCategorie(ptr(7), 8))
}
