package queries

import (
	"context"
	"strings"
	"time"

	"salon-backoffice/internal/domain/giftcard"
	"salon-backoffice/internal/infra"
	"salon-backoffice/internal/pkg/clock"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type GiftCardView struct {
	ID        uuid.UUID   `json:"id"`
	Code      string      `json:"code"`
	Balance   money.Money `json:"balance"`
	Status    string      `json:"status"`
	ExpiresAt *time.Time  `json:"expiresAt,omitempty"`
	Valid     bool        `json:"valid"`
	// Reason is set when Valid is false.
	Reason string `json:"reason,omitempty"`
}

type GiftCardQueries interface {
	VerifyGiftCard(ctx context.Context, code string) (*GiftCardView, error)
}

type giftCardQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewGiftCardQueries(uow shared.UnitOfWork, clock clock.Clock) GiftCardQueries {
	return &giftCardQueriesImpl{uow: uow, clock: clock}
}

// VerifyGiftCard reports unusable cards as valid=false; only an unknown code is an error.
func (q *giftCardQueriesImpl) VerifyGiftCard(ctx context.Context, rawCode string) (*GiftCardView, error) {
	code, err := giftcard.NewCode(strings.ToUpper(strings.TrimSpace(rawCode)))
	if err != nil {
		return nil, err
	}

	var card *giftcard.GiftCard
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		card, err = tx.GiftCards().FindByCode(ctx, code)
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrGiftCardNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view := &GiftCardView{
		ID:        card.ID(),
		Code:      card.Code().String(),
		Balance:   card.Balance(),
		Status:    card.Status().String(),
		ExpiresAt: card.ExpiresAt(),
		Valid:     true,
	}
	if verr := card.Verify(q.clock.Now()); verr != nil {
		view.Valid = false
		view.Reason = verr.Error()
	}
	return view, nil
}
