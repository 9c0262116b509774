package queries

import (
	"context"
	"time"

	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// ReservationView is filled from the entity accessors by name.
type ReservationView struct {
	ID            uuid.UUID            `json:"id"`
	ClientID      uuid.UUID            `json:"clientId"`
	Date          time.Time            `json:"date"`
	Services      reservation.Services `json:"services"`
	TotalPrice    money.Money          `json:"totalPrice"`
	Status        string               `json:"status"`
	PaymentStatus string               `json:"paymentStatus"`
	PaymentMethod string               `json:"paymentMethod"`
	PaymentAmount money.Money          `json:"paymentAmount"`
	PaymentDate   *time.Time           `json:"paymentDate,omitempty"`
	PaymentNotes  string               `json:"paymentNotes"`
	InvoiceNumber string               `json:"invoiceNumber,omitempty"`
	PaymentLink   string               `json:"paymentLink,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

type ReservationQueries interface {
	GetReservation(ctx context.Context, id uuid.UUID) (*ReservationView, error)
}

type reservationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewReservationQueries(uow shared.UnitOfWork) ReservationQueries {
	return &reservationQueriesImpl{uow: uow}
}

func (q *reservationQueriesImpl) GetReservation(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	var res *reservation.Reservation
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		res, err = shared.LoadReservation(ctx, tx.Reservations(), id, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToReservationView(res)
}

func ToReservationView(res *reservation.Reservation) (*ReservationView, error) {
	var view ReservationView
	if err := copier.Copy(&view, res); err != nil {
		return nil, errs.Wrap(err, "failed to map reservation view")
	}
	return &view, nil
}
