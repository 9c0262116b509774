package repository

import (
	"context"
	"log/slog"
	"time"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/infra"
	"salon-backoffice/internal/pkg/pgconv"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type LedgerRepository struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewLedgerRepository(db shared.DBTX, logger *slog.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *LedgerRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]loyalty.LedgerEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, type, amount, reason, status, created_at
		FROM discount_ledger
		WHERE client_id = $1
		ORDER BY created_at`,
		clientID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list discount ledger", err)
	}
	defer rows.Close()

	var entries []loyalty.LedgerEntry
	for rows.Next() {
		var (
			e      loyalty.LedgerEntry
			amount pgtype.Numeric
			kind   string
			status string
		)
		if err := rows.Scan(&e.ID, &kind, &amount, &e.Reason, &status, &e.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan ledger entry", err)
		}
		if e.Amount, err = pgconv.NumericToMoney(amount); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "invalid ledger amount", err)
		}
		e.Type = loyalty.Kind(kind)
		e.Status = loyalty.LedgerStatus(status)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate ledger", err)
	}
	return entries, nil
}

func (r *LedgerRepository) Create(ctx context.Context, rec shared.LedgerRecord) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO discount_ledger (client_id, reservation_id, type, amount, reason, status, created_at, used_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CASE WHEN $6 = 'used' THEN $7 END)
		RETURNING id`,
		rec.ClientID,
		pgconv.UUIDPtrToPgtype(rec.ReservationID),
		rec.Type.String(),
		pgconv.MoneyToNumeric(rec.Amount),
		rec.Reason,
		rec.Status.String(),
		pgconv.TimeToPgtype(rec.CreatedAt),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindFromPg(err), "failed to record discount", err)
	}
	return id, nil
}

// MarkUsed fails with CONFLICT when any entry was already consumed.
func (r *LedgerRepository) MarkUsed(ctx context.Context, ids []uuid.UUID, reservationID uuid.UUID, usedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE discount_ledger
		SET status = 'used', used_at = $3, reservation_id = COALESCE(reservation_id, $2)
		WHERE id = ANY($1::uuid[]) AND status = 'available'`,
		raw, reservationID, pgconv.TimeToPgtype(usedAt),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to mark discounts used", err)
	}
	if tag.RowsAffected() != int64(len(ids)) {
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "discount already used", nil)
	}
	return nil
}
