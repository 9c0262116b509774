package queries

import (
	"context"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/usecase/shared"
)

type SettingsQueries interface {
	GetSettings(ctx context.Context) (loyalty.Settings, error)
}

type settingsQueriesImpl struct {
	uow      shared.UnitOfWork
	provider *shared.SettingsProvider
}

func NewSettingsQueries(uow shared.UnitOfWork, provider *shared.SettingsProvider) SettingsQueries {
	return &settingsQueriesImpl{uow: uow, provider: provider}
}

func (q *settingsQueriesImpl) GetSettings(ctx context.Context) (loyalty.Settings, error) {
	var s loyalty.Settings
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		s, err = q.provider.Load(ctx, tx.Settings())
		return err
	})
	if err != nil {
		return loyalty.Settings{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return s, nil
}
