package bootstrap

import (
	"salon-backoffice/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.InfraModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
