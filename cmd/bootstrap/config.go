package bootstrap

import (
	"salon-backoffice/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
	ConfigSectionsModule,
)

// ConfigSectionsModule splits a provided config.Config into the sections
// individual constructors depend on.
var ConfigSectionsModule = fx.Module("config/sections",
	fx.Provide(
		func(cfg config.Config) config.IdempotencyConfig { return cfg.Idempotency },
		func(cfg config.Config) config.RedisConfig { return cfg.Redis },
		func(cfg config.Config) config.StripeConfig { return cfg.Stripe },
		func(cfg config.Config) config.LoyaltyConfig { return cfg.Loyalty },
	),
)
