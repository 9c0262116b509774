package repository

import (
	"context"
	"log/slog"

	"salon-backoffice/internal/infra"
	"salon-backoffice/internal/pkg/pgconv"
	"salon-backoffice/internal/usecase/shared"
)

type HistoryRepository struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewHistoryRepository(db shared.DBTX, logger *slog.Logger) *HistoryRepository {
	return &HistoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *HistoryRepository) Create(ctx context.Context, rec shared.HistoryRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO loyalty_history (client_id, reservation_id, action, points, description)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.ClientID,
		pgconv.UUIDPtrToPgtype(rec.ReservationID),
		rec.Action,
		rec.Points,
		rec.Description,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindFromPg(err), "failed to write loyalty history", err)
	}
	return nil
}
