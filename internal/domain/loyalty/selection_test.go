//go:build unit

package loyalty_test

import (
	"testing"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	individual = loyalty.NewOffer(loyalty.KindIndividual, money.FromInt(20), "Fidélité 5 soins: -20€", true)
	pkgOffer   = loyalty.NewOffer(loyalty.KindPackage, money.FromInt(40), "Fidélité 2 forfaits: -40€", true)
	sponsor    = loyalty.NewOffer(loyalty.KindReferralSponsor, money.FromInt(15), "Parrainage Parrain: -15€", false)
	referred   = loyalty.NewOffer(loyalty.KindReferralReferred, money.FromInt(10), "Parrainage Filleul: -10€", false)
)

func TestSelectionToggle(t *testing.T) {
	t.Run("toggle adds then removes by identity", func(t *testing.T) {
		sel := loyalty.NewSelection(money.FromInt(80))

		on, err := sel.Toggle(individual)
		require.NoError(t, err)
		assert.True(t, on)
		assert.True(t, sel.Has(loyalty.KindIndividual))

		same := loyalty.NewOffer(loyalty.KindIndividual, money.FromInt(20), individual.Label(), true)
		on, err = sel.Toggle(same)
		require.NoError(t, err)
		assert.False(t, on)
		assert.Empty(t, sel.Offers())
	})

	t.Run("sponsor then referred keeps only referred", func(t *testing.T) {
		sel := loyalty.NewSelection(money.FromInt(80))
		_, _ = sel.Toggle(sponsor)
		_, _ = sel.Toggle(referred)

		assert.Equal(t, []loyalty.Kind{loyalty.KindReferralReferred}, kinds(sel.Offers()))
	})

	t.Run("referred then sponsor keeps only sponsor", func(t *testing.T) {
		sel := loyalty.NewSelection(money.FromInt(80))
		_, _ = sel.Toggle(referred)
		_, _ = sel.Toggle(individual)
		_, _ = sel.Toggle(sponsor)

		assert.Equal(t, []loyalty.Kind{loyalty.KindIndividual, loyalty.KindReferralSponsor}, kinds(sel.Offers()))
	})

	t.Run("gift card offers are rejected", func(t *testing.T) {
		sel := loyalty.NewSelection(money.FromInt(80))
		_, err := sel.Toggle(loyalty.NewOffer(loyalty.KindGiftCard, money.FromInt(5), "Carte cadeau", false))
		assert.True(t, errs.Is(err, errs.ErrInvalidInput))
	})
}

func TestSelectionAddManual(t *testing.T) {
	cases := []struct {
		name   string
		amount money.Money
		reason string
		errIs  error
	}{
		{name: "valid", amount: money.FromInt(5), reason: "Geste commercial"},
		{name: "zero amount", amount: money.Zero(), reason: "x", errIs: loyalty.ErrManualAmountNotPositive},
		{name: "negative amount", amount: money.FromInt(-3), reason: "x", errIs: loyalty.ErrManualAmountNotPositive},
		{name: "blank reason", amount: money.FromInt(5), reason: "   ", errIs: loyalty.ErrManualReasonRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sel := loyalty.NewSelection(money.FromInt(80))
			o, err := sel.AddManual(tc.amount, tc.reason)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.True(t, errs.Is(err, errs.ErrInvalidInput))
				assert.Empty(t, sel.Offers())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, loyalty.KindManual, o.Kind())
			assert.Equal(t, "Réduction manuelle (Geste commercial): -5€", o.Label())
			assert.True(t, sel.Contains(o.Key()))
		})
	}
}

func TestSelectionSetGiftCard(t *testing.T) {
	cardID := uuid.New()

	t.Run("negative amount is invalid input", func(t *testing.T) {
		sel := loyalty.NewSelection(money.FromInt(80))
		err := sel.SetGiftCard(cardID, "GIFT50", money.FromInt(50), money.FromInt(-1))
		assert.ErrorIs(t, err, loyalty.ErrGiftCardAmountNegative)
		assert.Nil(t, sel.GiftCard())
	})

	t.Run("clamps to balance", func(t *testing.T) {
		sel := loyalty.NewSelection(money.FromInt(80))
		require.NoError(t, sel.SetGiftCard(cardID, "GIFT50", money.FromInt(50), money.FromInt(80)))
		assert.True(t, sel.GiftCard().Amount.Equal(money.FromInt(50)))
	})

	t.Run("clamps to remaining after other discounts", func(t *testing.T) {
		sel := loyalty.NewSelection(money.FromInt(80))
		_, _ = sel.Toggle(pkgOffer)
		require.NoError(t, sel.SetGiftCard(cardID, "GIFT100", money.FromInt(100), money.FromInt(100)))
		assert.True(t, sel.GiftCard().Amount.Equal(money.FromInt(40)))

		_, _ = sel.Toggle(individual)
		assert.True(t, sel.GiftCard().Amount.Equal(money.FromInt(20)))
	})

	t.Run("clear removes redemption", func(t *testing.T) {
		sel := loyalty.NewSelection(money.FromInt(80))
		require.NoError(t, sel.SetGiftCard(cardID, "GIFT50", money.FromInt(50), money.FromInt(10)))
		sel.ClearGiftCard()
		assert.Nil(t, sel.GiftCard())
	})
}

func TestSelectionPreselectIsOneTime(t *testing.T) {
	sel := loyalty.NewSelection(money.FromInt(80))
	catalog := []loyalty.Offer{individual, pkgOffer, sponsor}

	sel.Preselect(catalog)
	assert.Equal(t, []loyalty.Kind{loyalty.KindIndividual, loyalty.KindPackage}, kinds(sel.Offers()))

	_, _ = sel.Toggle(individual)
	sel.Preselect(catalog)
	assert.Equal(t, []loyalty.Kind{loyalty.KindPackage}, kinds(sel.Offers()))
}
