package components

import (
	"context"

	"salon-backoffice/internal/infra/cache"
	"salon-backoffice/internal/infra/metrics"
	"salon-backoffice/internal/infra/payment"
	"salon-backoffice/internal/pkg/config"
	"salon-backoffice/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	redisModule,
	paymentModule,
	metricsModule,
)

var redisModule = fx.Module("infra/redis",
	fx.Provide(
		NewRedis,
		NewSettingsCache,
	),
)

var paymentModule = fx.Module("infra/payment",
	fx.Provide(
		payment.NewStripeClient,
		fx.Annotate(
			payment.NewStripeLinkProvider,
			fx.As(new(shared.PaymentLinkProvider)),
		),
	),
)

var metricsModule = fx.Module("infra/metrics",
	fx.Provide(
		func() prometheus.Registerer { return prometheus.DefaultRegisterer },
		fx.Annotate(
			metrics.NewRecorder,
			fx.As(new(shared.MetricsRecorder)),
		),
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.RedisConfig) *redis.Client {
	client := cache.NewRedisClient(cfg)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}

func NewSettingsCache(client *redis.Client, cfg config.RedisConfig) shared.SettingsCache {
	return cache.NewSettingsCache(client, cfg)
}
