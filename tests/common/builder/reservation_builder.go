//go:build unit || e2e

package builder

import (
	"time"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/domain/validation"
	reqdto "salon-backoffice/internal/handler/dto/request"
	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/pkg/ptr"
	"salon-backoffice/internal/usecase/commands"
	"salon-backoffice/internal/usecase/queries"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID            uuid.UUID
	ClientID      uuid.UUID
	Date          time.Time
	Services      reservation.Services
	TotalPrice    money.Money
	Status        reservation.Status
	PaymentStatus reservation.PaymentStatus
	PaymentMethod reservation.PaymentMethod
	InvoiceNumber string
	PaymentLink   string
	Attended      *bool
	Paid          *bool
	Notes         string
}

func NewReservationBuilder() *ReservationBuilder {
	date := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ID:            uuid.New(),
		ClientID:      uuid.New(),
		Date:          date,
		Services:      reservation.SingleService("Soin Hydro'Naissance"),
		TotalPrice:    money.FromInt(80),
		Status:        reservation.StatusConfirmed,
		PaymentStatus: reservation.PaymentUnpaid,
		PaymentMethod: reservation.MethodCash,
		Attended:      ptr.Of(true),
		Paid:          ptr.Of(true),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ReservationBuilder) BuildSnapshot() reservation.Snapshot {
	return reservation.Snapshot{
		ID:            b.ID,
		ClientID:      b.ClientID,
		TotalPrice:    b.TotalPrice,
		Date:          b.Date,
		Services:      b.Services,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		InvoiceNumber: b.InvoiceNumber,
		PaymentLink:   b.PaymentLink,
		CreatedAt:     b.Date.AddDate(0, 0, -7),
		UpdatedAt:     b.Date.AddDate(0, 0, -7),
	}
}

func (b *ReservationBuilder) BuildViewQuery() *queries.ReservationView {
	return &queries.ReservationView{
		ID:            b.ID,
		ClientID:      b.ClientID,
		Date:          b.Date,
		Services:      b.Services,
		TotalPrice:    b.TotalPrice,
		Status:        b.Status.String(),
		PaymentStatus: b.PaymentStatus.String(),
		InvoiceNumber: b.InvoiceNumber,
		PaymentLink:   b.PaymentLink,
		CreatedAt:     b.Date.AddDate(0, 0, -7),
		UpdatedAt:     b.Date.AddDate(0, 0, -7),
	}
}

func (b *ReservationBuilder) BuildValidateRequestDTO() reqdto.ValidateReservationRequest {
	return reqdto.ValidateReservationRequest{
		Attended:      b.Attended,
		Paid:          b.Paid,
		PaymentMethod: b.PaymentMethod.String(),
		Notes:         b.Notes,
	}
}

// BuildOutcome is a completed validation for a cash payment with no discount.
func (b *ReservationBuilder) BuildOutcome() *commands.ValidationOutcome {
	now := b.Date
	return &commands.ValidationOutcome{
		ReservationID: b.ID,
		Result: &validation.Result{
			Status:                reservation.StatusCompleted,
			PaymentStatus:         reservation.PaymentPaid,
			PaymentAmount:         b.TotalPrice,
			PaymentMethod:         b.PaymentMethod,
			PaymentDate:           &now,
			DiscountLedgerEntries: []loyalty.Offer{},
			BasePrice:             b.TotalPrice,
			DiscountTotal:         money.Zero(),
			FinalAmount:           b.TotalPrice,
		},
		InvoiceNumber: "FAC-202603-0001",
	}
}

// BuildOnlineOutcome is a pending online payment with its checkout link.
func (b *ReservationBuilder) BuildOnlineOutcome() *commands.ValidationOutcome {
	o := b.BuildOutcome()
	o.Result.PaymentStatus = reservation.PaymentPending
	o.Result.PaymentMethod = reservation.MethodStripe
	o.Result.PaymentDate = nil
	o.PaymentLink = &shared.PaymentLink{ID: "cs_test_1", URL: "https://pay.example.test/cs_test_1"}
	return o
}
