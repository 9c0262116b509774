package converter

import (
	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ReservationRow mirrors the reservations columns selected by the repository.
type ReservationRow struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	Date           pgtype.Timestamptz
	Services       []byte
	TotalPrice     pgtype.Numeric
	Status         string
	PaymentStatus  string
	PaymentMethod  string
	PaymentAmount  pgtype.Numeric
	PaymentDate    pgtype.Timestamptz
	PaymentNotes   string
	InvoiceNumber  pgtype.Text
	PaymentLinkURL pgtype.Text
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

func (r *ReservationRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.ClientID, &r.Date, &r.Services, &r.TotalPrice, &r.Status, &r.PaymentStatus,
		&r.PaymentMethod, &r.PaymentAmount, &r.PaymentDate, &r.PaymentNotes, &r.InvoiceNumber,
		&r.PaymentLinkURL, &r.CreatedAt, &r.UpdatedAt,
	}
}

// ReservationToDomain tolerates legacy service payloads and payment method spellings.
func ReservationToDomain(r ReservationRow) (*reservation.Reservation, error) {
	services, err := reservation.ParseServices(r.Services)
	if err != nil {
		services = reservation.UnspecifiedServices()
	}

	total, err := pgconv.NumericToMoney(r.TotalPrice)
	if err != nil {
		return nil, errs.Wrap(err, "total_price")
	}
	paid, err := pgconv.NumericToMoney(r.PaymentAmount)
	if err != nil {
		return nil, errs.Wrap(err, "payment_amount")
	}

	method, err := reservation.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		method = reservation.MethodNone
	}

	return reservation.ReconstructReservation(reservation.Snapshot{
		ID:            r.ID,
		ClientID:      r.ClientID,
		TotalPrice:    total,
		Date:          pgconv.TimeFromPgtype(r.Date),
		Services:      services,
		Status:        reservation.Status(r.Status),
		PaymentStatus: reservation.PaymentStatus(r.PaymentStatus),
		PaymentMethod: method,
		PaymentAmount: paid,
		PaymentDate:   pgconv.TimePtrFromPgtype(r.PaymentDate),
		PaymentNotes:  r.PaymentNotes,
		InvoiceNumber: pgconv.StringFromPgtype(r.InvoiceNumber),
		PaymentLink:   pgconv.StringFromPgtype(r.PaymentLinkURL),
		CreatedAt:     pgconv.TimeFromPgtype(r.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(r.UpdatedAt),
	}), nil
}
