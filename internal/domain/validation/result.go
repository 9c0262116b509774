package validation

import (
	"time"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
)

// Result is the patch a validation produces. Callers persist it as a whole.
type Result struct {
	Status                       reservation.Status        `json:"status"`
	PaymentStatus                reservation.PaymentStatus `json:"paymentStatus"`
	PaymentAmount                money.Money               `json:"paymentAmount"`
	PaymentMethod                reservation.PaymentMethod `json:"paymentMethod"`
	PaymentDate                  *time.Time                `json:"paymentDate"`
	PaymentNotes                 string                    `json:"paymentNotes"`
	ResetIndividualServicesCount bool                      `json:"resetIndividualServicesCount"`
	ResetPackagesCount           bool                      `json:"resetPackagesCount"`
	DiscountLedgerEntries        []loyalty.Offer           `json:"discountLedgerEntries"`
	GiftCardUsedAmount           *money.Money              `json:"giftCardUsedAmount,omitempty"`
	GiftCardID                   *uuid.UUID                `json:"giftCardId,omitempty"`
	GiftCardCode                 string                    `json:"giftCardCode,omitempty"`
	BasePrice                    money.Money               `json:"basePrice"`
	DiscountTotal                money.Money               `json:"discountTotal"`
	FinalAmount                  money.Money               `json:"finalAmount"`
}

func (r *Result) RequiresPaymentLink() bool {
	return r.PaymentStatus == reservation.PaymentPending && r.PaymentMethod.IsOnline()
}

func (r *Result) UsesGiftCard() bool {
	return r.GiftCardID != nil && r.GiftCardUsedAmount != nil && r.GiftCardUsedAmount.IsPositive()
}
