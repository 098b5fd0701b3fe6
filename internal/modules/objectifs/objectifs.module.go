package objectifs

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"objectifs-core/internal/modules/objectifs/controllers"
	"objectifs-core/internal/modules/objectifs/services"
	authMiddleware "objectifs-core/internal/shared/middleware/auth"
)

// Module regroupe tous les providers du domaine Objectifs
var Module = fx.Options(
	// Services
	fx.Provide(services.NewObjectifService),
	fx.Provide(services.NewCommentaireService),

	// Controllers
	fx.Provide(controllers.NewObjectifController),
	fx.Provide(controllers.NewCommentaireController),

	// Configuration des routes
	fx.Invoke(RegisterObjectifRoutes),
)

// RegisterObjectifRoutes configure les routes Gin des objectifs et de
// leurs commentaires
func RegisterObjectifRoutes(
	r *gin.Engine,
	objectifController *controllers.ObjectifController,
	commentaireController *controllers.CommentaireController,
	authStack *authMiddleware.AuthMiddlewareStack,
) {
	// Routes accessibles à toute identité authentifiée ; la portée fine
	// est contrôlée dans les services
	api := r.Group("/api/v1/objectifs")
	api.Use(authMiddleware.Protected(authStack)...)
	{
		api.GET("/mine", objectifController.Mine)
		api.GET("/mine/:annee", objectifController.Mine)
		api.GET("/all", objectifController.All)
		api.POST("", objectifController.Create)
		api.PUT("/:id", objectifController.Update)
		api.PATCH("/:id", objectifController.Update)

		api.GET("/:id/commentaires", commentaireController.ListByObjectif)
		api.POST("/:id/commentaires", commentaireController.Create)
		api.PUT("/commentaire/:id", commentaireController.Update)
		api.DELETE("/commentaire/:id", commentaireController.Delete)
	}

	// Créations déléguées et suppression : admin ou BUM
	managerAPI := r.Group("/api/v1/objectifs")
	managerAPI.Use(authMiddleware.RequireAdminOrBUM(authStack)...)
	{
		managerAPI.POST("/admin", objectifController.AdminCreate)
		managerAPI.POST("/bulk", objectifController.BulkCreate)
		managerAPI.DELETE("/:id", objectifController.Delete)
	}
}
