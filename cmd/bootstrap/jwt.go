package bootstrap

import (
	"salon-backoffice/internal/pkg/config"
	"salon-backoffice/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenDuration)
}
