package app

import (
	"objectifs-core/internal/app/bootstrap"
	"objectifs-core/internal/app/config"
	"objectifs-core/internal/infrastructure/audit"
	"objectifs-core/internal/infrastructure/database"
	"objectifs-core/internal/infrastructure/database/redis"
	"objectifs-core/internal/infrastructure/logger"
	"objectifs-core/internal/infrastructure/mailer"
	authModule "objectifs-core/internal/modules/auth"
	bumModule "objectifs-core/internal/modules/bum"
	categoriesModule "objectifs-core/internal/modules/categories"
	objectifsModule "objectifs-core/internal/modules/objectifs"
	usersModule "objectifs-core/internal/modules/users"
	"objectifs-core/internal/shared/middleware"

	"go.uber.org/fx"
)

// NewRedisKeyGenerator crée le générateur de clés Redis
func NewRedisKeyGenerator(cfg *config.Config) *redis.KeyGenerator {
	return redis.NewKeyGenerator(cfg.Environment)
}

// NewMailerConfig adapte la configuration application vers le mailer
func NewMailerConfig(cfg *config.Config) *mailer.MailerConfig {
	return &mailer.MailerConfig{
		APIKey:      cfg.Mailer.BrevoAPIKey,
		SenderName:  cfg.Mailer.SenderName,
		SenderEmail: cfg.Mailer.SenderEmail,
	}
}

var AppModule = fx.Options(
	// Configuration (doit être fournie en premier)
	fx.Provide(config.NewConfig),
	fx.Provide(config.NewPostgresConfig),
	fx.Provide(config.NewRedisConfig),
	fx.Provide(config.NewMongoConfig),

	// Utilitaires partagés (après config, avant infrastructure)
	fx.Provide(NewRedisKeyGenerator),
	fx.Provide(NewMailerConfig),

	// Infrastructure
	database.Module,
	logger.Module,
	mailer.Module,
	audit.Module,

	// Middlewares partagés (après infrastructure, avant modules métier)
	middleware.Module,

	// Modules métier
	authModule.Module,
	usersModule.Module,
	objectifsModule.Module,
	categoriesModule.Module,
	bumModule.Module,

	// Bootstrap System - Providers
	fx.Provide(bootstrap.NewSchemaManager),
	fx.Provide(bootstrap.NewSeedingManager),
	fx.Provide(bootstrap.NewBootstrapSystem),

	// Router
	fx.Provide(NewRouter),

	// Application
	fx.Provide(NewApplication),

	// Lifecycle management
	fx.Invoke(bootstrap.RegisterBootstrapLifecycle),
	fx.Invoke((*Application).Start),
)
