package users

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"objectifs-core/internal/modules/users/controllers"
	"objectifs-core/internal/modules/users/services"
	authMiddleware "objectifs-core/internal/shared/middleware/auth"
)

// Module regroupe tous les providers du domaine Users
var Module = fx.Options(
	// Services
	fx.Provide(services.NewUserService),

	// Controllers
	fx.Provide(controllers.NewUserController),

	// Configuration des routes
	fx.Invoke(RegisterUserRoutes),
)

// RegisterUserRoutes configure les routes Gin pour la gestion des utilisateurs
func RegisterUserRoutes(
	r *gin.Engine,
	userController *controllers.UserController,
	authStack *authMiddleware.AuthMiddlewareStack,
) {
	// Routes réservées aux admins
	adminAPI := r.Group("/api/v1/users")
	adminAPI.Use(authMiddleware.RequireAdmin(authStack)...)
	{
		adminAPI.GET("", userController.List)
		adminAPI.POST("", userController.Create)
		adminAPI.PUT("/:id", userController.Update)
	}

	// Routes admin ou BUM ; la portée BUM est contrôlée dans le service
	managerAPI := r.Group("/api/v1/users")
	managerAPI.Use(authMiddleware.RequireAdminOrBUM(authStack)...)
	{
		managerAPI.GET("/my-team", userController.MyTeam)
		managerAPI.DELETE("/:id", userController.Delete)
	}

	// Business units (admin uniquement)
	buAPI := r.Group("/api/v1/business-units")
	buAPI.Use(authMiddleware.RequireAdmin(authStack)...)
	{
		buAPI.GET("", userController.ListBusinessUnits)
		buAPI.POST("", userController.CreateBusinessUnit)
	}
}
