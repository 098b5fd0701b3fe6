package database

import (
	"go.uber.org/fx"

	"objectifs-core/internal/infrastructure/database/mongodb"
	"objectifs-core/internal/infrastructure/database/postgres"
	"objectifs-core/internal/infrastructure/database/redis"
)

var Module = fx.Options(
	postgres.Module,
	redis.Module,
	mongodb.Module,
)
