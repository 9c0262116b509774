package reservation

import (
	"time"

	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
)

type Reservation struct {
	id            uuid.UUID
	clientID      uuid.UUID
	totalPrice    money.Money
	date          time.Time
	services      Services
	status        Status
	paymentStatus PaymentStatus
	paymentMethod PaymentMethod
	paymentAmount money.Money
	paymentDate   *time.Time
	paymentNotes  string
	invoiceNumber string
	paymentLink   string
	createdAt     time.Time
	updatedAt     time.Time
}

type Snapshot struct {
	ID            uuid.UUID
	ClientID      uuid.UUID
	TotalPrice    money.Money
	Date          time.Time
	Services      Services
	Status        Status
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod
	PaymentAmount money.Money
	PaymentDate   *time.Time
	PaymentNotes  string
	InvoiceNumber string
	PaymentLink   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ReconstructReservation rebuilds a persisted reservation; unknown payment
// statuses read as unpaid.
func ReconstructReservation(s Snapshot) *Reservation {
	ps := s.PaymentStatus
	if !ps.IsValid() {
		ps = PaymentUnpaid
	}
	return &Reservation{
		id:            s.ID,
		clientID:      s.ClientID,
		totalPrice:    s.TotalPrice.ClampZero(),
		date:          s.Date,
		services:      s.Services,
		status:        s.Status,
		paymentStatus: ps,
		paymentMethod: s.PaymentMethod,
		paymentAmount: s.PaymentAmount,
		paymentDate:   s.PaymentDate,
		paymentNotes:  s.PaymentNotes,
		invoiceNumber: s.InvoiceNumber,
		paymentLink:   s.PaymentLink,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
	}
}

// IsPaymentPending reports whether an online payment link awaits provider confirmation.
func (r *Reservation) IsPaymentPending() bool {
	return r.paymentStatus == PaymentPending
}

func (r *Reservation) HasInvoice() bool {
	return r.invoiceNumber != ""
}

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) ClientID() uuid.UUID          { return r.clientID }
func (r *Reservation) TotalPrice() money.Money      { return r.totalPrice }
func (r *Reservation) Date() time.Time              { return r.date }
func (r *Reservation) Services() Services           { return r.services }
func (r *Reservation) Status() Status               { return r.status }
func (r *Reservation) PaymentStatus() PaymentStatus { return r.paymentStatus }
func (r *Reservation) PaymentMethod() PaymentMethod { return r.paymentMethod }
func (r *Reservation) PaymentAmount() money.Money   { return r.paymentAmount }
func (r *Reservation) PaymentDate() *time.Time      { return r.paymentDate }
func (r *Reservation) PaymentNotes() string         { return r.paymentNotes }
func (r *Reservation) InvoiceNumber() string        { return r.invoiceNumber }
func (r *Reservation) PaymentLink() string          { return r.paymentLink }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }
