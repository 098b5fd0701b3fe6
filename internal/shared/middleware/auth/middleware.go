package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"objectifs-core/internal/app/config"
	"objectifs-core/internal/infrastructure/database/redis"
	"objectifs-core/internal/shared/authz"
)

// AuthMiddlewareStack regroupe les middlewares d'authentification
// appliqués aux groupes de routes protégés
type AuthMiddlewareStack struct {
	Session *SessionMiddleware
	Role    *RoleMiddleware
}

func NewAuthMiddlewareStack(cfg *config.Config, redisClient *redis.Client) *AuthMiddlewareStack {
	return &AuthMiddlewareStack{
		Session: NewSessionMiddleware(cfg.Auth.JWTSecret, redisClient),
		Role:    NewRoleMiddleware(),
	}
}

// Protected applique l'authentification de base (token porteur valide)
func Protected(stack *AuthMiddlewareStack) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		stack.Session.Handler(),
	}
}

// RequireAdmin applique l'authentification puis le contrôle de rôle ADMIN
func RequireAdmin(stack *AuthMiddlewareStack) []gin.HandlerFunc {
	return append(Protected(stack), stack.Role.RequireRole(authz.RoleAdmin))
}

// RequireBUM applique l'authentification puis le contrôle de rôle BUM
func RequireBUM(stack *AuthMiddlewareStack) []gin.HandlerFunc {
	return append(Protected(stack), stack.Role.RequireRole(authz.RoleBUM))
}

// RequireAdminOrBUM applique l'authentification puis le contrôle ADMIN ou BUM
func RequireAdminOrBUM(stack *AuthMiddlewareStack) []gin.HandlerFunc {
	return append(Protected(stack), stack.Role.RequireAnyRole(authz.RoleAdmin, authz.RoleBUM))
}

// Module Fx pour l'injection de dépendances
var Module = fx.Options(
	fx.Provide(NewAuthMiddlewareStack),
)
