package repository

import (
	"context"
	"log/slog"
	"time"

	"salon-backoffice/internal/infra"
	"salon-backoffice/internal/pkg/pgconv"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyRepository struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewIdempotencyRepository(db shared.DBTX, logger *slog.Logger) *IdempotencyRepository {
	return &IdempotencyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, actorID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO idempotency_keys (key, actor_id, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, 'processing', $5)
		ON CONFLICT (key, actor_id) DO UPDATE
		SET endpoint       = EXCLUDED.endpoint,
		    request_hash   = EXCLUDED.request_hash,
		    status         = 'processing',
		    response_hash  = NULL,
		    result_payload = NULL,
		    reservation_id = NULL,
		    expires_at     = EXCLUDED.expires_at,
		    created_at     = now()
		WHERE idempotency_keys.expires_at < now()`,
		key, actorID, endpoint, requestHash, pgconv.TimeToPgtype(expiresAt),
	)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key, actorID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		rec           shared.IdempotencyRecord
		reservationID pgtype.UUID
		expiresAt     pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT key, actor_id, status, request_hash, result_payload, reservation_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND actor_id = $2`,
		key, actorID,
	).Scan(&rec.Key, &rec.ActorID, &rec.Status, &rec.RequestHash, &rec.ResultPayload, &reservationID, &expiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "idempotency key not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get idempotency key", err)
	}

	rec.ReservationID = pgconv.UUIDPtrFromPgtype(reservationID)
	rec.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
	return &rec, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, key, actorID uuid.UUID, responseHash string, payload []byte, reservationID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE idempotency_keys
		SET status = 'completed', response_hash = $3, result_payload = $4, reservation_id = $5
		WHERE key = $1 AND actor_id = $2 AND status = 'processing'`,
		key, actorID, responseHash, payload, reservationID,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update idempotency key status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "idempotency key is no longer processing", nil)
	}
	return nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, key, actorID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM idempotency_keys WHERE key = $1 AND actor_id = $2 AND status = 'processing'`,
		key, actorID,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to release idempotency key", err)
	}
	return nil
}
