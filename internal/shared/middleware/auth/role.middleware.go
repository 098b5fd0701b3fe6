package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"objectifs-core/internal/shared/authz"
)

// RoleMiddleware applique les contrôles de rôle du Gate aux groupes de routes
type RoleMiddleware struct{}

func NewRoleMiddleware() *RoleMiddleware {
	return &RoleMiddleware{}
}

// RequireRole n'autorise que le rôle exact (ex: routes /bum réservées aux BUM)
func (m *RoleMiddleware) RequireRole(role authz.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := MustIdentity(c)
		if !ok {
			return
		}

		if err := authz.RequireRole(identity, role); err != nil {
			respondForbidden(c, role)
			return
		}

		c.Next()
	}
}

// RequireAnyRole autorise les identités dont le rôle figure dans la liste
func (m *RoleMiddleware) RequireAnyRole(roles ...authz.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := MustIdentity(c)
		if !ok {
			return
		}

		if err := authz.RequireAnyRole(identity, roles...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Accès non autorisé pour ce rôle",
				"details": gin.H{
					"code": "ROLE_REQUIRED",
				},
			})
			return
		}

		c.Next()
	}
}

func respondForbidden(c *gin.Context, role authz.Role) {
	message := "Accès non autorisé pour ce rôle"
	switch role {
	case authz.RoleAdmin:
		message = "Accès réservé aux administrateurs"
	case authz.RoleBUM:
		message = "Accès réservé aux BUM"
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"error": message,
		"details": gin.H{
			"code": "ROLE_REQUIRED",
		},
	})
}
