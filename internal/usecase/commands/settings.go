package commands

import (
	"context"
	"log/slog"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/usecase/shared"
)

type SettingsCommands interface {
	UpdateSettings(ctx context.Context, s loyalty.Settings) (loyalty.Settings, error)
}

type settingsCommandsImpl struct {
	uow      shared.UnitOfWork
	provider *shared.SettingsProvider
	logger   *slog.Logger
}

func NewSettingsCommands(uow shared.UnitOfWork, provider *shared.SettingsProvider, logger *slog.Logger) SettingsCommands {
	return &settingsCommandsImpl{uow: uow, provider: provider, logger: logger}
}

func (c *settingsCommandsImpl) UpdateSettings(ctx context.Context, s loyalty.Settings) (loyalty.Settings, error) {
	if err := s.Validate(); err != nil {
		return loyalty.Settings{}, err
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Settings().Save(ctx, s)
	})
	if err != nil {
		return loyalty.Settings{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	c.provider.Invalidate(ctx)
	c.logger.Info("loyalty settings updated",
		"service_threshold", s.ServiceThreshold,
		"package_threshold", s.PackageThreshold,
	)
	return s, nil
}
