package repository

import (
	"context"
	"log/slog"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/infra"
	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/pkg/pgconv"
	"salon-backoffice/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

type SettingsRepository struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewSettingsRepository(db shared.DBTX, logger *slog.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		logger: logger,
	}
}

// Get falls back to the defaults when the settings row is missing.
func (r *SettingsRepository) Get(ctx context.Context) (loyalty.Settings, error) {
	var (
		s                                         loyalty.Settings
		service, pkg, birthday, sponsor, referred pgtype.Numeric
	)
	err := r.db.QueryRow(ctx, `
		SELECT service_threshold, service_discount, package_threshold, package_discount,
		       birthday_discount, referral_sponsor_discount, referral_referred_discount
		FROM loyalty_settings
		WHERE id = 1`,
	).Scan(&s.ServiceThreshold, &service, &s.PackageThreshold, &pkg, &birthday, &sponsor, &referred)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return loyalty.DefaultSettings(), nil
		}
		return loyalty.Settings{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to load loyalty settings", err)
	}

	for _, f := range []struct {
		src pgtype.Numeric
		dst *money.Money
	}{
		{service, &s.ServiceDiscount},
		{pkg, &s.PackageDiscount},
		{birthday, &s.BirthdayDiscount},
		{sponsor, &s.ReferralSponsorDiscount},
		{referred, &s.ReferralReferredDiscount},
	} {
		if *f.dst, err = pgconv.NumericToMoney(f.src); err != nil {
			return loyalty.Settings{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "invalid loyalty amount", err)
		}
	}
	return s, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s loyalty.Settings) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO loyalty_settings (id, service_threshold, service_discount, package_threshold, package_discount,
		                              birthday_discount, referral_sponsor_discount, referral_referred_discount, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (id) DO UPDATE
		SET service_threshold          = EXCLUDED.service_threshold,
		    service_discount           = EXCLUDED.service_discount,
		    package_threshold          = EXCLUDED.package_threshold,
		    package_discount           = EXCLUDED.package_discount,
		    birthday_discount          = EXCLUDED.birthday_discount,
		    referral_sponsor_discount  = EXCLUDED.referral_sponsor_discount,
		    referral_referred_discount = EXCLUDED.referral_referred_discount,
		    updated_at                 = now()`,
		s.ServiceThreshold,
		pgconv.MoneyToNumeric(s.ServiceDiscount),
		s.PackageThreshold,
		pgconv.MoneyToNumeric(s.PackageDiscount),
		pgconv.MoneyToNumeric(s.BirthdayDiscount),
		pgconv.MoneyToNumeric(s.ReferralSponsorDiscount),
		pgconv.MoneyToNumeric(s.ReferralReferredDiscount),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindFromPg(err), "failed to save loyalty settings", err)
	}
	return nil
}
