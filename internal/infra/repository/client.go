package repository

import (
	"context"
	"log/slog"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/infra"
	"salon-backoffice/internal/pkg/pgconv"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ClientRepository struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewClientRepository(db shared.DBTX, logger *slog.Logger) *ClientRepository {
	return &ClientRepository{
		db:     db,
		logger: logger,
	}
}

// LoyaltyProfile derives the referral status from the referrals table.
func (r *ClientRepository) LoyaltyProfile(ctx context.Context, clientID uuid.UUID) (*loyalty.Profile, error) {
	var (
		p         loyalty.Profile
		birthDate pgtype.Date
		pending   int64
	)
	err := r.db.QueryRow(ctx, `
		SELECT c.id,
		       c.individual_services_count,
		       c.packages_count,
		       c.birth_date,
		       c.is_referred,
		       c.has_used_referral_discount,
		       EXISTS (SELECT 1 FROM referrals s WHERE s.sponsor_id = c.id),
		       (SELECT count(*) FROM referrals s WHERE s.sponsor_id = c.id AND s.status = 'pending')
		FROM clients c
		WHERE c.id = $1`,
		clientID,
	).Scan(
		&p.ClientID,
		&p.IndividualServicesCount,
		&p.PackagesCount,
		&birthDate,
		&p.Referral.IsReferred,
		&p.Referral.HasUsedReferralDiscount,
		&p.Referral.IsSponsor,
		&pending,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "client not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to load loyalty profile", err)
	}

	p.BirthDate = pgconv.DatePtrFromPgtype(birthDate)
	p.Referral.PendingReferrals = int(pending)
	return &p, nil
}

func (r *ClientRepository) ResetCounters(ctx context.Context, clientID uuid.UUID, services, packages bool) error {
	if !services && !packages {
		return nil
	}
	_, err := r.db.Exec(ctx, `
		UPDATE clients
		SET individual_services_count = CASE WHEN $2::boolean THEN 0 ELSE individual_services_count END,
		    packages_count            = CASE WHEN $3::boolean THEN 0 ELSE packages_count END,
		    updated_at                = now()
		WHERE id = $1`,
		clientID, services, packages,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to reset loyalty counters", err)
	}
	return nil
}

func (r *ClientRepository) MarkReferralDiscountUsed(ctx context.Context, clientID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE clients SET has_used_referral_discount = true, updated_at = now() WHERE id = $1`,
		clientID,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to mark referral discount used", err)
	}
	return nil
}
