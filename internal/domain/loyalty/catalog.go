package loyalty

import (
	"fmt"
	"sort"
	"time"
)

type CatalogOptions struct {
	// BirthdayAlreadyIssued suppresses the automatic flag of the birthday offer.
	BirthdayAlreadyIssued bool
	// Ledger entries with status available are surfaced as manual offers.
	Ledger []LedgerEntry
}

// ComputeAvailable lists every discount the client is eligible for today.
// Ineligibility omits the offer; the function never fails.
func ComputeAvailable(profile Profile, settings Settings, today time.Time, opts CatalogOptions) []Offer {
	var offers []Offer

	if profile.IndividualServicesCount >= settings.ServiceThreshold {
		offers = append(offers, NewOffer(
			KindIndividual,
			settings.ServiceDiscount,
			fmt.Sprintf("Fidélité %d soins: -%s", settings.ServiceThreshold, settings.ServiceDiscount.Display()),
			true,
		))
	}

	if profile.PackagesCount >= settings.PackageThreshold {
		offers = append(offers, NewOffer(
			KindPackage,
			settings.PackageDiscount,
			fmt.Sprintf("Fidélité %d forfaits: -%s", settings.PackageThreshold, settings.PackageDiscount.Display()),
			true,
		))
	}

	if profile.HasBirthdayIn(today.Month()) {
		offers = append(offers, NewOffer(
			KindBirthday,
			settings.BirthdayDiscount,
			"Anniversaire: -"+settings.BirthdayDiscount.Display(),
			!opts.BirthdayAlreadyIssued,
		))
	}

	ref := profile.Referral
	if ref.IsSponsor && ref.PendingReferrals > 0 {
		offers = append(offers, NewOffer(
			KindReferralSponsor,
			settings.ReferralSponsorDiscount,
			"Parrainage Parrain: -"+settings.ReferralSponsorDiscount.Display(),
			false,
		))
	}
	if ref.IsReferred && !ref.HasUsedReferralDiscount {
		offers = append(offers, NewOffer(
			KindReferralReferred,
			settings.ReferralReferredDiscount,
			"Parrainage Filleul: -"+settings.ReferralReferredDiscount.Display(),
			false,
		))
	}

	available := make([]LedgerEntry, 0, len(opts.Ledger))
	for _, e := range opts.Ledger {
		if e.IsAvailable() && e.Amount.IsPositive() {
			available = append(available, e)
		}
	}
	sort.SliceStable(available, func(i, j int) bool {
		return available[i].CreatedAt.Before(available[j].CreatedAt)
	})
	for _, e := range available {
		offers = append(offers, newLedgerOffer(e))
	}

	return offers
}

// Automatic filters the offers that are opted in by default.
func Automatic(offers []Offer) []Offer {
	var out []Offer
	for _, o := range offers {
		if o.Automatic() {
			out = append(out, o)
		}
	}
	return out
}

func ledgerLabel(e LedgerEntry) string {
	reason := e.Reason
	if reason == "" {
		reason = "Réduction"
	}
	return fmt.Sprintf("%s: -%s", reason, e.Amount.Display())
}
