package shared

import (
	"context"

	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
)

type LinkRequest struct {
	ReservationID uuid.UUID
	Amount        money.Money
	Description   string
	InvoiceNumber string
}

// PaymentLinkProvider opens a hosted payment page for an online method.
type PaymentLinkProvider interface {
	CreateLink(ctx context.Context, req LinkRequest) (*PaymentLink, error)
}

type MetricsRecorder interface {
	ValidationCompleted(status, paymentStatus string, discountKinds []string)
	ValidationBlocked()
	PaymentLink(ok bool)
}
