package repository

import (
	"context"
	"log/slog"
	"time"

	"salon-backoffice/internal/infra"
	"salon-backoffice/internal/usecase/shared"
)

type InvoiceRepository struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewInvoiceRepository(db shared.DBTX, logger *slog.Logger) *InvoiceRepository {
	return &InvoiceRepository{
		db:     db,
		logger: logger,
	}
}

// Next increments the monthly counter under the row lock taken by the upsert.
func (r *InvoiceRepository) Next(ctx context.Context, at time.Time) (int, error) {
	var next int
	err := r.db.QueryRow(ctx, `
		INSERT INTO invoice_sequences (period, last_value)
		VALUES ($1, 1)
		ON CONFLICT (period) DO UPDATE
		SET last_value = invoice_sequences.last_value + 1, updated_at = now()
		RETURNING last_value`,
		at.Format("200601"),
	).Scan(&next)
	if err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to allocate invoice number", err)
	}
	return next, nil
}
