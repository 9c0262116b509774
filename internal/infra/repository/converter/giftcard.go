package converter

import (
	"salon-backoffice/internal/domain/giftcard"
	"salon-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type GiftCardRow struct {
	ID            uuid.UUID
	Code          string
	InitialAmount pgtype.Numeric
	Balance       pgtype.Numeric
	Status        string
	ExpiresAt     pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
}

func (r *GiftCardRow) ScanTargets() []any {
	return []any{&r.ID, &r.Code, &r.InitialAmount, &r.Balance, &r.Status, &r.ExpiresAt, &r.CreatedAt}
}

func GiftCardToDomain(r GiftCardRow) (*giftcard.GiftCard, error) {
	initial, err := pgconv.NumericToMoney(r.InitialAmount)
	if err != nil {
		return nil, err
	}
	balance, err := pgconv.NumericToMoney(r.Balance)
	if err != nil {
		return nil, err
	}
	return giftcard.ReconstructGiftCard(
		r.ID,
		giftcard.Code(r.Code),
		initial,
		balance,
		giftcard.Status(r.Status),
		pgconv.TimePtrFromPgtype(r.ExpiresAt),
		pgconv.TimeFromPgtype(r.CreatedAt),
	), nil
}
