package loyalty

type Kind string

const (
	KindIndividual       Kind = "individual"
	KindPackage          Kind = "package"
	KindBirthday         Kind = "birthday"
	KindReferralSponsor  Kind = "referral_sponsor"
	KindReferralReferred Kind = "referral_referred"
	KindManual           Kind = "manual"
	KindGiftCard         Kind = "gift_card"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindIndividual, KindPackage, KindBirthday, KindReferralSponsor, KindReferralReferred, KindManual, KindGiftCard:
		return true
	default:
		return false
	}
}

// ResetsCounter reports whether redeeming this kind restarts a loyalty counter.
func (k Kind) ResetsCounter() bool {
	return k == KindIndividual || k == KindPackage
}

func (k Kind) isReferral() bool {
	return k == KindReferralSponsor || k == KindReferralReferred
}

type LedgerStatus string

const (
	LedgerStatusAvailable LedgerStatus = "available"
	LedgerStatusUsed      LedgerStatus = "used"
	LedgerStatusPending   LedgerStatus = "pending"
)

func (s LedgerStatus) String() string {
	return string(s)
}

type BirthdayWindow string

const (
	BirthdayWindowCalendarYear    BirthdayWindow = "calendar_year"
	BirthdayWindowRolling12Months BirthdayWindow = "rolling_12_months"
)
