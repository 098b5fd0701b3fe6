package app

import (
	"net/http"

	"objectifs-core/internal/app/config"
	"objectifs-core/internal/infrastructure/logger"
	"objectifs-core/internal/shared/middleware/security"

	"github.com/gin-gonic/gin"
)

func NewRouter(
	cfg *config.Config,
	loggerMiddleware *logger.LoggerMiddleware,
	corsHandler security.CORSHandler,
) *gin.Engine {
	configureGinMode(cfg.Environment)

	// Router sans middleware par défaut pour une configuration maîtrisée
	r := gin.New()

	// Middlewares globaux dans l'ordre d'importance
	r.Use(loggerMiddleware.GinLogger())
	r.Use(loggerMiddleware.GinRecovery())
	r.Use(gin.HandlerFunc(corsHandler))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status": "healthy",
			},
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"status": "ready",
			},
		})
	})

	// Les routes métier sont enregistrées par chaque module via fx.Invoke

	return r
}

// configureGinMode configure le mode Gin selon l'environnement
func configureGinMode(environment string) {
	switch environment {
	case "production", "staging", "docker":
		gin.SetMode(gin.ReleaseMode)
	case "development":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
