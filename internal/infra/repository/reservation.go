package repository

import (
	"context"
	"log/slog"

	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/infra"
	"salon-backoffice/internal/infra/repository/converter"
	"salon-backoffice/internal/pkg/pgconv"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

const reservationColumns = `id, client_id, date, services, total_price, status, payment_status, payment_method,
	payment_amount, payment_date, payment_notes, invoice_number, payment_link_url, created_at, updated_at`

type ReservationRepository struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewReservationRepository(db shared.DBTX, logger *slog.Logger) *ReservationRepository {
	return &ReservationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.find(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
}

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.find(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1 FOR UPDATE`, id)
}

func (r *ReservationRepository) find(ctx context.Context, query string, id uuid.UUID) (*reservation.Reservation, error) {
	var row converter.ReservationRow
	if err := r.db.QueryRow(ctx, query, id).Scan(row.ScanTargets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to load reservation", err)
	}

	res, err := converter.ReservationToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to decode reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) ApplyValidation(ctx context.Context, id uuid.UUID, patch shared.ValidationPatch) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET status         = $2,
		    payment_status = $3,
		    payment_method = $4,
		    payment_amount = $5,
		    payment_date   = $6,
		    payment_notes  = $7,
		    invoice_number = COALESCE($8, invoice_number),
		    updated_at     = now()
		WHERE id = $1`,
		id,
		patch.Status.String(),
		patch.PaymentStatus.String(),
		patch.PaymentMethod.String(),
		pgconv.MoneyToNumeric(patch.PaymentAmount),
		pgconv.TimePtrToPgtype(patch.PaymentDate),
		patch.PaymentNotes,
		pgconv.StringToPgtype(patch.InvoiceNumber),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindFromPg(err), "failed to apply validation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", nil)
	}
	return nil
}

func (r *ReservationRepository) SetPaymentLink(ctx context.Context, id uuid.UUID, link shared.PaymentLink) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET payment_link_id = $2, payment_link_url = $3, updated_at = now()
		WHERE id = $1`,
		id, pgconv.StringToPgtype(link.ID), pgconv.StringToPgtype(link.URL),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to store payment link", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", nil)
	}
	return nil
}

func (r *ReservationRepository) ResetPayment(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET payment_status   = 'unpaid',
		    payment_method   = '',
		    payment_amount   = 0,
		    payment_date     = NULL,
		    payment_link_id  = NULL,
		    payment_link_url = NULL,
		    updated_at       = now()
		WHERE id = $1`,
		id,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to reset payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", nil)
	}
	return nil
}
