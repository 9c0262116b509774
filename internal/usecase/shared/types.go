package shared

import (
	"time"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key           uuid.UUID
	ActorID       uuid.UUID
	Status        string
	RequestHash   string
	ResultPayload []byte
	ReservationID *uuid.UUID
	ExpiresAt     time.Time
}

// ValidationPatch is the reservation row state written by a validation.
type ValidationPatch struct {
	Status        reservation.Status
	PaymentStatus reservation.PaymentStatus
	PaymentMethod reservation.PaymentMethod
	PaymentAmount money.Money
	PaymentDate   *time.Time
	PaymentNotes  string
	// InvoiceNumber is left unchanged when empty.
	InvoiceNumber string
}

type PaymentLink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type LedgerRecord struct {
	ClientID      uuid.UUID
	ReservationID *uuid.UUID
	Type          loyalty.Kind
	Amount        money.Money
	Reason        string
	Status        loyalty.LedgerStatus
	CreatedAt     time.Time
}

type GiftCardTransaction struct {
	GiftCardID    uuid.UUID
	ReservationID uuid.UUID
	Amount        money.Money
	BalanceAfter  money.Money
}

const (
	HistoryActionDiscountUsed  = "DISCOUNT_USED"
	HistoryActionPaymentCancel = "PAYMENT_CANCELLED"
)

type HistoryRecord struct {
	ClientID      uuid.UUID
	ReservationID *uuid.UUID
	Action        string
	Points        int
	Description   string
}
