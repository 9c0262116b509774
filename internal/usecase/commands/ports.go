package commands

import (
	"salon-backoffice/internal/domain/validation"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

const validationEndpoint = "POST /api/reservations/:id/validation"

// Outbox topics
const (
	notificationKindEmail     = "email"
	topicReservationValidated = "reservation_validated"
	topicPaymentCancelled     = "reservation_payment_cancelled"
)

type ValidateInput struct {
	Attended      *bool  `json:"attended"`
	Paid          *bool  `json:"paid"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
	shared.SelectionInput
}

// ValidationOutcome is the stored and replayed response of a validation.
type ValidationOutcome struct {
	ReservationID uuid.UUID           `json:"reservationId"`
	Result        *validation.Result  `json:"result"`
	InvoiceNumber string              `json:"invoiceNumber,omitempty"`
	PaymentLink   *shared.PaymentLink `json:"paymentLink,omitempty"`
	IsReplayed    bool                `json:"-"`
}
