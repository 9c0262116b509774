package request

import (
	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/pkg/patch"
)

// UpdateSettingsRequest is a partial update; omitted fields keep their stored value.
type UpdateSettingsRequest struct {
	ServiceThreshold         *int         `json:"serviceThreshold,omitempty" binding:"omitempty,min=1"`
	ServiceDiscount          *money.Money `json:"serviceDiscount,omitempty"`
	PackageThreshold         *int         `json:"packageThreshold,omitempty" binding:"omitempty,min=1"`
	PackageDiscount          *money.Money `json:"packageDiscount,omitempty"`
	ReferralSponsorDiscount  *money.Money `json:"referralSponsorDiscount,omitempty"`
	ReferralReferredDiscount *money.Money `json:"referralReferredDiscount,omitempty"`
	BirthdayDiscount         *money.Money `json:"birthdayDiscount,omitempty"`
}

func (r UpdateSettingsRequest) Merge(current loyalty.Settings) loyalty.Settings {
	return loyalty.Settings{
		ServiceThreshold:         patch.Coalesce(r.ServiceThreshold, current.ServiceThreshold),
		ServiceDiscount:          patch.FromPtr(r.ServiceDiscount).Or(current.ServiceDiscount),
		PackageThreshold:         patch.Coalesce(r.PackageThreshold, current.PackageThreshold),
		PackageDiscount:          patch.FromPtr(r.PackageDiscount).Or(current.PackageDiscount),
		ReferralSponsorDiscount:  patch.FromPtr(r.ReferralSponsorDiscount).Or(current.ReferralSponsorDiscount),
		ReferralReferredDiscount: patch.FromPtr(r.ReferralReferredDiscount).Or(current.ReferralReferredDiscount),
		BirthdayDiscount:         patch.FromPtr(r.BirthdayDiscount).Or(current.BirthdayDiscount),
	}
}
