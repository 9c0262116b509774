//go:build unit

package loyalty_test

import (
	"testing"
	"time"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

func kinds(offers []loyalty.Offer) []loyalty.Kind {
	out := make([]loyalty.Kind, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.Kind())
	}
	return out
}

func birthDate(month time.Month) *time.Time {
	d := time.Date(1990, month, 2, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestComputeAvailable(t *testing.T) {
	settings := loyalty.DefaultSettings()

	cases := []struct {
		name    string
		profile loyalty.Profile
		opts    loyalty.CatalogOptions
		want    []loyalty.Kind
	}{
		{
			name:    "no eligibility",
			profile: loyalty.Profile{IndividualServicesCount: 4, PackagesCount: 1},
			want:    []loyalty.Kind{},
		},
		{
			name:    "individual threshold reached exactly",
			profile: loyalty.Profile{IndividualServicesCount: 5},
			want:    []loyalty.Kind{loyalty.KindIndividual},
		},
		{
			name:    "package threshold reached",
			profile: loyalty.Profile{PackagesCount: 2},
			want:    []loyalty.Kind{loyalty.KindPackage},
		},
		{
			name:    "birthday in current month",
			profile: loyalty.Profile{BirthDate: birthDate(time.March)},
			want:    []loyalty.Kind{loyalty.KindBirthday},
		},
		{
			name:    "birthday in another month",
			profile: loyalty.Profile{BirthDate: birthDate(time.April)},
			want:    []loyalty.Kind{},
		},
		{
			name:    "sponsor needs pending referrals",
			profile: loyalty.Profile{Referral: loyalty.ReferralStatus{IsSponsor: true}},
			want:    []loyalty.Kind{},
		},
		{
			name:    "sponsor with pending referral",
			profile: loyalty.Profile{Referral: loyalty.ReferralStatus{IsSponsor: true, PendingReferrals: 1}},
			want:    []loyalty.Kind{loyalty.KindReferralSponsor},
		},
		{
			name:    "referred already used",
			profile: loyalty.Profile{Referral: loyalty.ReferralStatus{IsReferred: true, HasUsedReferralDiscount: true}},
			want:    []loyalty.Kind{},
		},
		{
			name: "everything in canonical order",
			profile: loyalty.Profile{
				IndividualServicesCount: 7,
				PackagesCount:           2,
				BirthDate:               birthDate(time.March),
				Referral:                loyalty.ReferralStatus{IsReferred: true, IsSponsor: true, PendingReferrals: 2},
			},
			opts: loyalty.CatalogOptions{Ledger: []loyalty.LedgerEntry{
				{ID: uuid.New(), Type: loyalty.KindManual, Amount: money.FromInt(5), Reason: "Geste commercial", Status: loyalty.LedgerStatusAvailable, CreatedAt: today.AddDate(0, -1, 0)},
			}},
			want: []loyalty.Kind{
				loyalty.KindIndividual,
				loyalty.KindPackage,
				loyalty.KindBirthday,
				loyalty.KindReferralSponsor,
				loyalty.KindReferralReferred,
				loyalty.KindManual,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := loyalty.ComputeAvailable(tc.profile, settings, today, tc.opts)
			assert.Equal(t, tc.want, kinds(got))
		})
	}
}

func TestComputeAvailableOfferDetails(t *testing.T) {
	settings := loyalty.DefaultSettings()
	profile := loyalty.Profile{
		IndividualServicesCount: 5,
		PackagesCount:           2,
		BirthDate:               birthDate(time.March),
		Referral:                loyalty.ReferralStatus{IsReferred: true, IsSponsor: true, PendingReferrals: 1},
	}

	offers := loyalty.ComputeAvailable(profile, settings, today, loyalty.CatalogOptions{})
	require.Len(t, offers, 5)

	assert.Equal(t, "Fidélité 5 soins: -20€", offers[0].Label())
	assert.True(t, offers[0].Automatic())
	assert.Equal(t, "Fidélité 2 forfaits: -40€", offers[1].Label())
	assert.True(t, offers[1].Automatic())
	assert.Equal(t, "Anniversaire: -10€", offers[2].Label())
	assert.True(t, offers[2].Automatic())
	assert.Equal(t, "Parrainage Parrain: -15€", offers[3].Label())
	assert.False(t, offers[3].Automatic())
	assert.Equal(t, "Parrainage Filleul: -10€", offers[4].Label())
	assert.False(t, offers[4].Automatic())
}

func TestComputeAvailableBirthdayAlreadyIssued(t *testing.T) {
	profile := loyalty.Profile{BirthDate: birthDate(time.March)}

	offers := loyalty.ComputeAvailable(profile, loyalty.DefaultSettings(), today, loyalty.CatalogOptions{BirthdayAlreadyIssued: true})

	require.Len(t, offers, 1)
	assert.Equal(t, loyalty.KindBirthday, offers[0].Kind())
	assert.False(t, offers[0].Automatic())
}

func TestComputeAvailableLedger(t *testing.T) {
	older := loyalty.LedgerEntry{ID: uuid.New(), Type: loyalty.KindManual, Amount: money.FromInt(5), Reason: "Retard", Status: loyalty.LedgerStatusAvailable, CreatedAt: today.AddDate(0, 0, -10)}
	newer := loyalty.LedgerEntry{ID: uuid.New(), Type: loyalty.KindManual, Amount: money.FromCents(750), Reason: "", Status: loyalty.LedgerStatusAvailable, CreatedAt: today.AddDate(0, 0, -1)}
	used := loyalty.LedgerEntry{ID: uuid.New(), Type: loyalty.KindManual, Amount: money.FromInt(8), Reason: "Ancien", Status: loyalty.LedgerStatusUsed, CreatedAt: today.AddDate(0, 0, -20)}

	offers := loyalty.ComputeAvailable(loyalty.Profile{}, loyalty.DefaultSettings(), today, loyalty.CatalogOptions{
		Ledger: []loyalty.LedgerEntry{newer, used, older},
	})

	require.Len(t, offers, 2)
	assert.Equal(t, "Retard: -5€", offers[0].Label())
	assert.Equal(t, older.ID, *offers[0].LedgerEntryID())
	assert.Equal(t, "Réduction: -7.50€", offers[1].Label())
	for _, o := range offers {
		assert.Equal(t, loyalty.KindManual, o.Kind())
		assert.False(t, o.Automatic())
		assert.True(t, o.FromLedger())
	}
}

func TestComputeAvailableDuplicateLedgerCredits(t *testing.T) {
	first := loyalty.LedgerEntry{ID: uuid.New(), Type: loyalty.KindManual, Amount: money.FromInt(5), Reason: "Geste commercial", Status: loyalty.LedgerStatusAvailable, CreatedAt: today.AddDate(0, 0, -3)}
	second := loyalty.LedgerEntry{ID: uuid.New(), Type: loyalty.KindManual, Amount: money.FromInt(5), Reason: "Geste commercial", Status: loyalty.LedgerStatusAvailable, CreatedAt: today.AddDate(0, 0, -1)}

	offers := loyalty.ComputeAvailable(loyalty.Profile{}, loyalty.DefaultSettings(), today, loyalty.CatalogOptions{
		Ledger: []loyalty.LedgerEntry{first, second},
	})
	require.Len(t, offers, 2)
	assert.Equal(t, offers[0].Label(), offers[1].Label())
	assert.NotEqual(t, offers[0].Key(), offers[1].Key())

	sel := loyalty.NewSelection(money.FromInt(80))
	for _, o := range offers {
		on, err := sel.Toggle(o)
		require.NoError(t, err)
		assert.True(t, on)
	}
	require.Len(t, sel.Offers(), 2)

	res := loyalty.Resolve(money.FromInt(80), sel)
	assert.Equal(t, "10.00", res.DiscountTotal.String())
	assert.Equal(t, "70.00", res.Final.String())
}

func TestOfferKey(t *testing.T) {
	catalog := loyalty.NewOffer(loyalty.KindBirthday, money.FromInt(10), "Anniversaire: -10€", true)
	assert.Equal(t, "birthday:Anniversaire: -10€", catalog.Key())

	entry := loyalty.LedgerEntry{ID: uuid.New(), Type: loyalty.KindManual, Amount: money.FromInt(5), Reason: "Avoir", Status: loyalty.LedgerStatusAvailable, CreatedAt: today}
	offers := loyalty.ComputeAvailable(loyalty.Profile{}, loyalty.DefaultSettings(), today, loyalty.CatalogOptions{Ledger: []loyalty.LedgerEntry{entry}})
	require.Len(t, offers, 1)
	assert.Equal(t, "manual:"+entry.ID.String(), offers[0].Key())
}

func TestBirthdayIssuedWithin(t *testing.T) {
	lastDecember := loyalty.LedgerEntry{Type: loyalty.KindBirthday, Status: loyalty.LedgerStatusUsed, CreatedAt: time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC)}
	thisJanuary := loyalty.LedgerEntry{Type: loyalty.KindBirthday, Status: loyalty.LedgerStatusUsed, CreatedAt: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)}
	manual := loyalty.LedgerEntry{Type: loyalty.KindManual, Status: loyalty.LedgerStatusUsed, CreatedAt: today}

	assert.False(t, loyalty.BirthdayIssuedWithin([]loyalty.LedgerEntry{lastDecember, manual}, today, loyalty.BirthdayWindowCalendarYear))
	assert.True(t, loyalty.BirthdayIssuedWithin([]loyalty.LedgerEntry{lastDecember}, today, loyalty.BirthdayWindowRolling12Months))
	assert.True(t, loyalty.BirthdayIssuedWithin([]loyalty.LedgerEntry{thisJanuary}, today, loyalty.BirthdayWindowCalendarYear))
	assert.False(t, loyalty.BirthdayIssuedWithin(nil, today, loyalty.BirthdayWindowRolling12Months))
}

func TestSettingsValidate(t *testing.T) {
	require.NoError(t, loyalty.DefaultSettings().Validate())

	s := loyalty.DefaultSettings()
	s.ServiceThreshold = 0
	assert.ErrorIs(t, s.Validate(), loyalty.ErrInvalidSettings)

	s = loyalty.DefaultSettings()
	s.BirthdayDiscount = money.Zero()
	assert.ErrorIs(t, s.Validate(), loyalty.ErrInvalidSettings)
}
