package repository

import (
	"context"
	"log/slog"
	"time"

	"salon-backoffice/internal/infra"
	"salon-backoffice/internal/pkg/pgconv"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReferralRepository struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewReferralRepository(db shared.DBTX, logger *slog.Logger) *ReferralRepository {
	return &ReferralRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ReferralRepository) RewardOldestPending(ctx context.Context, sponsorID uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE referrals
		SET status = 'rewarded', rewarded_at = $2
		WHERE id = (
		    SELECT id FROM referrals
		    WHERE sponsor_id = $1 AND status = 'pending'
		    ORDER BY created_at
		    LIMIT 1
		    FOR UPDATE SKIP LOCKED
		)`,
		sponsorID, pgconv.TimeToPgtype(at),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to reward referral", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "no pending referral", nil)
	}
	return nil
}
