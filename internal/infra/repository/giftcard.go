package repository

import (
	"context"
	"log/slog"

	"salon-backoffice/internal/domain/giftcard"
	"salon-backoffice/internal/infra"
	"salon-backoffice/internal/infra/repository/converter"
	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/pkg/pgconv"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type GiftCardRepository struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewGiftCardRepository(db shared.DBTX, logger *slog.Logger) *GiftCardRepository {
	return &GiftCardRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GiftCardRepository) FindByCode(ctx context.Context, code giftcard.Code) (*giftcard.GiftCard, error) {
	var row converter.GiftCardRow
	err := r.db.QueryRow(ctx, `
		SELECT id, code, initial_amount, balance, status, expires_at, created_at
		FROM gift_cards
		WHERE code = $1`,
		code.String(),
	).Scan(row.ScanTargets()...)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "gift card not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to load gift card", err)
	}

	card, err := converter.GiftCardToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to decode gift card", err)
	}
	return card, nil
}

// Debit is a single conditional update so two validations can never overdraw a card.
func (r *GiftCardRepository) Debit(ctx context.Context, id uuid.UUID, amount money.Money) (money.Money, error) {
	var balance pgtype.Numeric
	err := r.db.QueryRow(ctx, `
		UPDATE gift_cards
		SET balance    = balance - $2,
		    status     = CASE WHEN balance - $2 = 0 THEN 'used' ELSE status END,
		    updated_at = now()
		WHERE id = $1 AND status = 'active' AND balance >= $2
		RETURNING balance`,
		id, pgconv.MoneyToNumeric(amount),
	).Scan(&balance)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return money.Zero(), infra.WrapRepoErr(r.logger, infra.KindConflict, "gift card balance changed", err)
		}
		return money.Zero(), infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to debit gift card", err)
	}

	remaining, err := pgconv.NumericToMoney(balance)
	if err != nil {
		return money.Zero(), infra.WrapRepoErr(r.logger, infra.KindDBFailure, "invalid gift card balance", err)
	}
	return remaining, nil
}

func (r *GiftCardRepository) RecordTransaction(ctx context.Context, rec shared.GiftCardTransaction) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO gift_card_transactions (gift_card_id, reservation_id, amount, balance_after)
		VALUES ($1, $2, $3, $4)`,
		rec.GiftCardID,
		rec.ReservationID,
		pgconv.MoneyToNumeric(rec.Amount),
		pgconv.MoneyToNumeric(rec.BalanceAfter),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindFromPg(err), "failed to record gift card transaction", err)
	}
	return nil
}
