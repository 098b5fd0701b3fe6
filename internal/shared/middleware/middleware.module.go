package middleware

import (
	"go.uber.org/fx"

	"objectifs-core/internal/shared/middleware/auth"
	"objectifs-core/internal/shared/middleware/security"
)

var Module = fx.Options(
	auth.Module,
	fx.Provide(security.CORSMiddleware),
)
