package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objectifs-core/internal/shared/apperror"
	"objectifs-core/internal/shared/authz"
)

func TestCanMutateCommentaire(t *testing.T) {
	author := authz.Identity{ID: 7, Role: authz.RoleConsultant}
	admin := authz.Identity{ID: 1, Role: authz.RoleAdmin}
	owningBum := authz.Identity{ID: 3, Role: authz.RoleBUM}
	otherBum := authz.Identity{ID: 4, Role: authz.RoleBUM}
	other := authz.Identity{ID: 8, Role: authz.RoleConsultant}

	// L'objectif commenté appartient au consultant rattaché au BUM 3
	ownerBumID := ptr(3)

	assert.NoError(t, canMutateCommentaire(author, 7, ownerBumID))
	assert.NoError(t, canMutateCommentaire(admin, 7, ownerBumID))
	assert.NoError(t, canMutateCommentaire(owningBum, 7, ownerBumID))

	err := canMutateCommentaire(other, 7, ownerBumID)
	require.Error(t, err)
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 403, appErr.Status)

	assert.Error(t, canMutateCommentaire(otherBum, 7, ownerBumID))
	assert.Error(t, canMutateCommentaire(otherBum, 7, nil))
}
