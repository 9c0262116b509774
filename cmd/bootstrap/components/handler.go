package components

import (
	"salon-backoffice/internal/handler"
	"salon-backoffice/internal/handler/api"
	"salon-backoffice/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewGiftCardHandler,
		api.NewSettingsHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
