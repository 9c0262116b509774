package loyalty

import (
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/money"
)

var ErrInvalidSettings = errs.Mark(errs.New("loyalty thresholds and amounts must be positive"), errs.ErrInvalidInput)

type Settings struct {
	ServiceThreshold         int         `json:"serviceThreshold"`
	ServiceDiscount          money.Money `json:"serviceDiscount"`
	PackageThreshold         int         `json:"packageThreshold"`
	PackageDiscount          money.Money `json:"packageDiscount"`
	ReferralSponsorDiscount  money.Money `json:"referralSponsorDiscount"`
	ReferralReferredDiscount money.Money `json:"referralReferredDiscount"`
	BirthdayDiscount         money.Money `json:"birthdayDiscount"`
}

func DefaultSettings() Settings {
	return Settings{
		ServiceThreshold:         5,
		ServiceDiscount:          money.FromInt(20),
		PackageThreshold:         2,
		PackageDiscount:          money.FromInt(40),
		ReferralSponsorDiscount:  money.FromInt(15),
		ReferralReferredDiscount: money.FromInt(10),
		BirthdayDiscount:         money.FromInt(10),
	}
}

func (s Settings) Validate() error {
	if s.ServiceThreshold <= 0 || s.PackageThreshold <= 0 {
		return ErrInvalidSettings
	}
	for _, m := range []money.Money{
		s.ServiceDiscount,
		s.PackageDiscount,
		s.ReferralSponsorDiscount,
		s.ReferralReferredDiscount,
		s.BirthdayDiscount,
	} {
		if !m.IsPositive() {
			return ErrInvalidSettings
		}
	}
	return nil
}
