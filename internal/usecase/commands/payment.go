package commands

import (
	"context"
	"encoding/json"
	"log/slog"

	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/pkg/clock"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNotPendingPayment = errs.Mark(errs.New("reservation has no pending online payment"), errs.ErrInvalidInput)
	ErrNothingToCollect  = errs.Mark(errs.New("reservation has no amount to collect"), errs.ErrInvalidInput)
)

type PaymentCommands interface {
	// CreatePaymentLink opens a new hosted checkout for a pending reservation.
	CreatePaymentLink(ctx context.Context, reservationID uuid.UUID) (*shared.PaymentLink, error)
	// CancelPendingPayment is the operator override that unblocks a pending reservation.
	CancelPendingPayment(ctx context.Context, reservationID, actorID uuid.UUID) error
}

type paymentCommandsImpl struct {
	uow    shared.UnitOfWork
	links  *paymentLinks
	clock  clock.Clock
	logger *slog.Logger
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	linkProvider shared.PaymentLinkProvider,
	metrics shared.MetricsRecorder,
	clock clock.Clock,
	logger *slog.Logger,
) PaymentCommands {
	return &paymentCommandsImpl{
		uow:    uow,
		links:  newPaymentLinks(uow, linkProvider, metrics, logger),
		clock:  clock,
		logger: logger,
	}
}

func (p *paymentCommandsImpl) CreatePaymentLink(ctx context.Context, reservationID uuid.UUID) (*shared.PaymentLink, error) {
	var res *reservation.Reservation
	err := p.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		res, err = shared.LoadReservation(ctx, tx.Reservations(), reservationID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !res.IsPaymentPending() {
		return nil, ErrNotPendingPayment
	}
	if !res.PaymentAmount().IsPositive() {
		return nil, ErrNothingToCollect
	}
	return p.links.open(ctx, res, res.PaymentAmount(), res.InvoiceNumber())
}

func (p *paymentCommandsImpl) CancelPendingPayment(ctx context.Context, reservationID, actorID uuid.UUID) error {
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := shared.LoadReservation(ctx, tx.Reservations(), reservationID, true)
		if err != nil {
			return err
		}
		if !res.IsPaymentPending() {
			return ErrNotPendingPayment
		}

		if err := tx.Reservations().ResetPayment(ctx, reservationID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		err = tx.History().Create(ctx, shared.HistoryRecord{
			ClientID:      res.ClientID(),
			ReservationID: &reservationID,
			Action:        shared.HistoryActionPaymentCancel,
			Description:   "Paiement en attente annulé: " + res.PaymentAmount().Display(),
		})
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		payload, err := json.Marshal(map[string]any{
			"reservation_id": reservationID,
			"client_id":      res.ClientID(),
			"cancelled_by":   actorID,
		})
		if err != nil {
			return errs.Wrap(err, "failed to encode notification payload")
		}
		if err := tx.Notifications().CreateJob(ctx, notificationKindEmail, topicPaymentCancelled, payload, p.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.logger.Info("pending payment cancelled", "reservation_id", reservationID, "actor_id", actorID)
	return nil
}

// paymentLinks opens a provider checkout and stores it on the reservation.
type paymentLinks struct {
	uow      shared.UnitOfWork
	provider shared.PaymentLinkProvider
	metrics  shared.MetricsRecorder
	logger   *slog.Logger
}

func newPaymentLinks(uow shared.UnitOfWork, provider shared.PaymentLinkProvider, metrics shared.MetricsRecorder, logger *slog.Logger) *paymentLinks {
	return &paymentLinks{uow: uow, provider: provider, metrics: metrics, logger: logger}
}

func (l *paymentLinks) open(ctx context.Context, res *reservation.Reservation, amount money.Money, invoice string) (*shared.PaymentLink, error) {
	link, err := l.provider.CreateLink(ctx, shared.LinkRequest{
		ReservationID: res.ID(),
		Amount:        amount,
		Description:   linkDescription(res),
		InvoiceNumber: invoice,
	})
	l.metrics.PaymentLink(err == nil)
	if err != nil {
		l.logger.Warn("payment link creation failed", "reservation_id", res.ID(), "error", err.Error())
		return nil, errs.Mark(err, errs.ErrPaymentLinkFailed)
	}

	err = l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Reservations().SetPaymentLink(ctx, res.ID(), *link)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return link, nil
}

func linkDescription(res *reservation.Reservation) string {
	if s := res.Services().String(); s != "" {
		return s
	}
	return "Réservation du " + res.Date().Format("02/01/2006")
}
