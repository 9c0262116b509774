package loyalty

import (
	"time"

	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
)

type ReferralStatus struct {
	IsReferred              bool `json:"isReferred"`
	HasUsedReferralDiscount bool `json:"hasUsedReferralDiscount"`
	IsSponsor               bool `json:"isSponsor"`
	PendingReferrals        int  `json:"pendingReferrals"`
}

// Profile is the per-client loyalty snapshot read before a validation.
type Profile struct {
	ClientID                uuid.UUID      `json:"clientId"`
	IndividualServicesCount int            `json:"individualServicesCount"`
	PackagesCount           int            `json:"packagesCount"`
	BirthDate               *time.Time     `json:"birthDate,omitempty"`
	Referral                ReferralStatus `json:"referral"`
}

func (p Profile) HasBirthdayIn(month time.Month) bool {
	return p.BirthDate != nil && p.BirthDate.Month() == month
}

// LedgerEntry is a discount granted to a client, redeemed or not.
type LedgerEntry struct {
	ID        uuid.UUID    `json:"id"`
	Type      Kind         `json:"type"`
	Amount    money.Money  `json:"amount"`
	Reason    string       `json:"reason"`
	Status    LedgerStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (e LedgerEntry) IsAvailable() bool {
	return e.Status == LedgerStatusAvailable
}

// BirthdayIssuedWithin reports whether a birthday discount already exists within the window ending at today.
func BirthdayIssuedWithin(ledger []LedgerEntry, today time.Time, window BirthdayWindow) bool {
	for _, e := range ledger {
		if e.Type != KindBirthday {
			continue
		}
		switch window {
		case BirthdayWindowRolling12Months:
			if e.CreatedAt.After(today.AddDate(-1, 0, 0)) && !e.CreatedAt.After(today) {
				return true
			}
		default:
			if e.CreatedAt.In(today.Location()).Year() == today.Year() {
				return true
			}
		}
	}
	return false
}
