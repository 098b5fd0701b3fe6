package categories

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"objectifs-core/internal/modules/categories/controllers"
	"objectifs-core/internal/modules/categories/services"
	authMiddleware "objectifs-core/internal/shared/middleware/auth"
)

// Module regroupe tous les providers du domaine Catégories
var Module = fx.Options(
	// Services
	fx.Provide(services.NewCategorieService),

	// Controllers
	fx.Provide(controllers.NewCategorieController),

	// Configuration des routes
	fx.Invoke(RegisterCategorieRoutes),
)

// RegisterCategorieRoutes configure les routes Gin des catégories
func RegisterCategorieRoutes(
	r *gin.Engine,
	categorieController *controllers.CategorieController,
	authStack *authMiddleware.AuthMiddlewareStack,
) {
	api := r.Group("/api/v1/categories")
	api.Use(authMiddleware.Protected(authStack)...)
	{
		api.GET("", categorieController.List)
		api.POST("", categorieController.Create)
		api.PUT("/:id", categorieController.Update)
		api.DELETE("/:id", categorieController.Delete)
	}
}
