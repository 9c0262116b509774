package queries

import (
	"context"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/domain/validation"
	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppliedLine struct {
	Offer   loyalty.Offer `json:"offer"`
	Applied money.Money   `json:"applied"`
}

type PreviewGiftCard struct {
	ID      uuid.UUID   `json:"id"`
	Code    string      `json:"code"`
	Balance money.Money `json:"balance"`
	Applied money.Money `json:"applied"`
}

// PreviewView is what the validation dialog renders before the operator confirms.
type PreviewView struct {
	ReservationID  uuid.UUID        `json:"reservationId"`
	Available      []loyalty.Offer  `json:"available"`
	DefaultKeys    []string         `json:"defaultKeys"`
	Lines          []AppliedLine    `json:"lines"`
	GiftCard       *PreviewGiftCard `json:"giftCard,omitempty"`
	BasePrice      money.Money      `json:"basePrice"`
	DiscountTotal  money.Money      `json:"discountTotal"`
	FinalAmount    money.Money      `json:"finalAmount"`
	PaymentPending bool             `json:"paymentPending"`
}

type PreviewQueries interface {
	Preview(ctx context.Context, reservationID uuid.UUID, in shared.SelectionInput) (*PreviewView, error)
}

type previewQueriesImpl struct {
	uow       shared.UnitOfWork
	loader    *shared.ContextLoader
	validator *validation.Validator
}

func NewPreviewQueries(uow shared.UnitOfWork, loader *shared.ContextLoader, validator *validation.Validator) PreviewQueries {
	return &previewQueriesImpl{uow: uow, loader: loader, validator: validator}
}

// Preview prices a selection without writing anything. A pending reservation
// still previews so the operator sees why validation is blocked.
func (q *previewQueriesImpl) Preview(ctx context.Context, reservationID uuid.UUID, in shared.SelectionInput) (*PreviewView, error) {
	var view *PreviewView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := shared.LoadReservation(ctx, tx.Reservations(), reservationID, false)
		if err != nil {
			return err
		}
		today := q.validator.Today()
		vc, err := q.loader.Load(ctx, tx, res, today)
		if err != nil {
			return err
		}
		sel, err := shared.BuildSelection(ctx, tx, vc, in, today)
		if err != nil {
			return err
		}

		resolution := loyalty.Resolve(res.TotalPrice(), sel)
		view = &PreviewView{
			ReservationID:  reservationID,
			Available:      vc.Available,
			DefaultKeys:    vc.DefaultKeys(),
			Lines:          make([]AppliedLine, 0, len(resolution.Lines)),
			BasePrice:      resolution.Base,
			DiscountTotal:  resolution.DiscountTotal,
			FinalAmount:    resolution.Final,
			PaymentPending: res.IsPaymentPending(),
		}
		if view.Available == nil {
			view.Available = []loyalty.Offer{}
		}
		for _, l := range resolution.Lines {
			view.Lines = append(view.Lines, AppliedLine{Offer: l.Offer, Applied: l.Applied})
		}
		if gc := resolution.GiftCard; gc != nil {
			view.GiftCard = &PreviewGiftCard{
				ID:      gc.GiftCardID,
				Code:    gc.Code,
				Balance: gc.Balance,
				Applied: resolution.GiftCardApplied,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
