package components

import (
	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/domain/validation"
	"salon-backoffice/internal/pkg/clock"
	"salon-backoffice/internal/pkg/config"
	"salon-backoffice/internal/usecase"
	"salon-backoffice/internal/usecase/commands"
	"salon-backoffice/internal/usecase/queries"
	"salon-backoffice/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

// Calendar rules run on the salon's local date.
var usecaseBaseOption = fx.Provide(
	func(cfg config.LoyaltyConfig) clock.Clock {
		return clock.NewZonedClock(clock.NewRealClock(), cfg.Location())
	},
	func(c clock.Clock, cfg config.LoyaltyConfig) *validation.Validator {
		return validation.NewValidator(c, cfg.Location())
	},
	shared.NewSettingsProvider,
	func(settings *shared.SettingsProvider, cfg config.LoyaltyConfig) *shared.ContextLoader {
		return shared.NewContextLoader(settings, loyalty.BirthdayWindow(cfg.BirthdayWindow))
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewValidationCommands,
		commands.NewPaymentCommands,
		commands.NewSettingsCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewPreviewQueries,
		queries.NewGiftCardQueries,
		queries.NewSettingsQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
