package components

import (
	"salon-backoffice/internal/infra/uow"
	"salon-backoffice/internal/usecase/shared"

	"go.uber.org/fx"
)

// Repositories are bound per transaction inside the unit of work.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)
