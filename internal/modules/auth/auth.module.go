package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"objectifs-core/internal/modules/auth/controllers"
	"objectifs-core/internal/modules/auth/services"
	authMiddleware "objectifs-core/internal/shared/middleware/auth"
)

// Module regroupe tous les providers du domaine Auth
var Module = fx.Options(
	// Services
	fx.Provide(services.NewAuthService),

	// Controllers
	fx.Provide(controllers.NewAuthController),

	// Configuration des routes
	fx.Invoke(RegisterAuthRoutes),
)

// RegisterAuthRoutes configure les routes Gin pour l'authentification
func RegisterAuthRoutes(
	r *gin.Engine,
	authController *controllers.AuthController,
	authStack *authMiddleware.AuthMiddlewareStack,
) {
	// Routes publiques
	authAPI := r.Group("/api/v1/auth")
	{
		authAPI.POST("/register", authController.Register)
		authAPI.POST("/login", authController.Login)
	}

	// Routes protégées par SessionMiddleware
	protectedAuthAPI := r.Group("/api/v1/auth")
	protectedAuthAPI.Use(authMiddleware.Protected(authStack)...)
	{
		protectedAuthAPI.POST("/logout", authController.Logout)
		protectedAuthAPI.GET("/me", authController.Me)
	}
}
