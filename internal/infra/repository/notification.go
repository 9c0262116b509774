package repository

import (
	"context"
	"log/slog"
	"time"

	"salon-backoffice/internal/infra"
	"salon-backoffice/internal/pkg/pgconv"
	"salon-backoffice/internal/usecase/shared"
)

type NotificationRepository struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewNotificationRepository(db shared.DBTX, logger *slog.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
		VALUES ($1, $2, $3, $4, 'queued')`,
		kind, topic, payload, pgconv.TimeToPgtype(runAt),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create notification job", err)
	}
	return nil
}
