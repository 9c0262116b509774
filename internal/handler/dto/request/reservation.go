package request

import (
	"strings"

	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/usecase/commands"
	"salon-backoffice/internal/usecase/shared"
)

type ManualDiscountRequest struct {
	Amount money.Money `json:"amount"`
	Reason string      `json:"reason" binding:"required,max=200"`
}

type GiftCardRequest struct {
	Code   string       `json:"code" binding:"required,max=32"`
	Amount *money.Money `json:"amount,omitempty"`
}

// SelectionRequest mirrors the discount toggles of the validation dialog.
// Omitting selectedOffers keeps the automatic offers; an empty list selects none.
type SelectionRequest struct {
	SelectedOffers  []string                `json:"selectedOffers,omitempty"`
	ManualDiscounts []ManualDiscountRequest `json:"manualDiscounts,omitempty" binding:"max=10,dive"`
	GiftCard        *GiftCardRequest        `json:"giftCard,omitempty"`
}

func (r SelectionRequest) ToInput() shared.SelectionInput {
	in := shared.SelectionInput{SelectedOffers: r.SelectedOffers}
	for _, m := range r.ManualDiscounts {
		in.ManualDiscounts = append(in.ManualDiscounts, shared.ManualDiscountInput{
			Amount: m.Amount,
			Reason: strings.TrimSpace(m.Reason),
		})
	}
	if r.GiftCard != nil {
		in.GiftCard = &shared.GiftCardInput{
			Code:   strings.TrimSpace(r.GiftCard.Code),
			Amount: r.GiftCard.Amount,
		}
	}
	return in
}

type PreviewValidationRequest struct {
	SelectionRequest
}

// ValidateReservationRequest leaves attended and paid optional so the
// unanswered case reaches the attendance rules instead of failing binding.
type ValidateReservationRequest struct {
	Attended      *bool  `json:"attended"`
	Paid          *bool  `json:"paid"`
	PaymentMethod string `json:"paymentMethod" binding:"max=32"`
	Notes         string `json:"notes" binding:"max=1000"`
	SelectionRequest
}

func (r ValidateReservationRequest) ToInput() commands.ValidateInput {
	return commands.ValidateInput{
		Attended:       r.Attended,
		Paid:           r.Paid,
		PaymentMethod:  r.PaymentMethod,
		Notes:          strings.TrimSpace(r.Notes),
		SelectionInput: r.SelectionRequest.ToInput(),
	}
}
