//go:build unit || e2e

package builder

import (
	"time"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/domain/validation"
	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/pkg/ptr"

	"github.com/google/uuid"
)

type ValidationBuilder struct {
	ReservationID uuid.UUID
	ClientID      uuid.UUID
	BasePrice     money.Money
	PaymentStatus reservation.PaymentStatus
	Date          time.Time
	Profile       loyalty.Profile
	Settings      loyalty.Settings
	Catalog       loyalty.CatalogOptions
	Attended      *bool
	Paid          *bool
	Method        reservation.PaymentMethod
	Notes         string
	// Select mutates the selection after it is created; nil preselects automatic offers.
	Select func(sel *loyalty.Selection, catalog []loyalty.Offer)
}

func NewValidationBuilder() *ValidationBuilder {
	clientID := uuid.New()
	return &ValidationBuilder{
		ReservationID: uuid.New(),
		ClientID:      clientID,
		BasePrice:     money.FromInt(80),
		PaymentStatus: reservation.PaymentUnpaid,
		Date:          time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC),
		Profile:       loyalty.Profile{ClientID: clientID},
		Settings:      loyalty.DefaultSettings(),
		Attended:      ptr.Of(true),
		Paid:          ptr.Of(true),
		Method:        reservation.MethodCash,
	}
}

func (b *ValidationBuilder) With(mutate func(*ValidationBuilder)) *ValidationBuilder {
	mutate(b)
	return b
}

func (b *ValidationBuilder) BuildReservation() *reservation.Reservation {
	return reservation.ReconstructReservation(reservation.Snapshot{
		ID:            b.ReservationID,
		ClientID:      b.ClientID,
		TotalPrice:    b.BasePrice,
		Date:          b.Date,
		Services:      reservation.SingleService("Hydro'Naissance"),
		Status:        reservation.StatusConfirmed,
		PaymentStatus: b.PaymentStatus,
		CreatedAt:     b.Date.AddDate(0, 0, -7),
		UpdatedAt:     b.Date.AddDate(0, 0, -7),
	})
}

func (b *ValidationBuilder) BuildCatalog(today time.Time) []loyalty.Offer {
	return loyalty.ComputeAvailable(b.Profile, b.Settings, today, b.Catalog)
}

func (b *ValidationBuilder) BuildRequest(today time.Time) validation.Request {
	catalog := b.BuildCatalog(today)
	sel := loyalty.NewSelection(b.BasePrice)
	if b.Select != nil {
		b.Select(sel, catalog)
	} else {
		sel.Preselect(catalog)
	}
	return validation.Request{
		Reservation: b.BuildReservation(),
		Profile:     b.Profile,
		Settings:    b.Settings,
		Catalog:     b.Catalog,
		Attended:    b.Attended,
		Paid:        b.Paid,
		Selection:   sel,
		Method:      b.Method,
		Notes:       b.Notes,
	}
}

// Fluent builder methods
func (b *ValidationBuilder) WithBasePrice(euros int64) *ValidationBuilder {
	b.BasePrice = money.FromInt(euros)
	return b
}

func (b *ValidationBuilder) WithPaymentStatus(s reservation.PaymentStatus) *ValidationBuilder {
	b.PaymentStatus = s
	return b
}

func (b *ValidationBuilder) WithAttendance(attended, paid *bool) *ValidationBuilder {
	b.Attended = attended
	b.Paid = paid
	return b
}

func (b *ValidationBuilder) WithMethod(m reservation.PaymentMethod) *ValidationBuilder {
	b.Method = m
	return b
}

func (b *ValidationBuilder) WithNotes(notes string) *ValidationBuilder {
	b.Notes = notes
	return b
}

func (b *ValidationBuilder) WithSelect(fn func(sel *loyalty.Selection, catalog []loyalty.Offer)) *ValidationBuilder {
	b.Select = fn
	return b
}

func (b *ValidationBuilder) AsLoyalClient() *ValidationBuilder {
	b.Profile.IndividualServicesCount = b.Settings.ServiceThreshold
	return b
}

func (b *ValidationBuilder) AsPackageClient() *ValidationBuilder {
	b.Profile.PackagesCount = b.Settings.PackageThreshold
	return b
}

// FindOffer returns the first catalog offer of the given kind.
func FindOffer(catalog []loyalty.Offer, kind loyalty.Kind) (loyalty.Offer, bool) {
	for _, o := range catalog {
		if o.Kind() == kind {
			return o, true
		}
	}
	return loyalty.Offer{}, false
}
