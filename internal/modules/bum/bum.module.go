package bum

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"objectifs-core/internal/modules/bum/controllers"
	"objectifs-core/internal/modules/bum/services"
	authMiddleware "objectifs-core/internal/shared/middleware/auth"
)

// Module regroupe tous les providers du périmètre BUM
var Module = fx.Options(
	// Services
	fx.Provide(services.NewBumService),

	// Controllers
	fx.Provide(controllers.NewBumController),

	// Configuration des routes
	fx.Invoke(RegisterBumRoutes),
)

// RegisterBumRoutes configure les routes Gin du périmètre BUM
func RegisterBumRoutes(
	r *gin.Engine,
	bumController *controllers.BumController,
	authStack *authMiddleware.AuthMiddlewareStack,
) {
	api := r.Group("/api/v1/bum")
	api.Use(authMiddleware.RequireBUM(authStack)...)
	{
		api.GET("/stats", bumController.Stats)
		api.GET("/my-bu", bumController.MyBusinessUnit)
		api.GET("/consultants", bumController.Consultants)
		api.POST("/consultants", bumController.CreateConsultant)
		api.DELETE("/consultants/:id", bumController.DeleteConsultant)
		api.GET("/consultants/:id/objectifs", bumController.ConsultantObjectifs)
		api.PATCH("/objectifs/:id", bumController.ReviewObjectif)
	}
}
