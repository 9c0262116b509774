//go:build unit

package giftcard_test

import (
	"testing"
	"time"

	"salon-backoffice/internal/domain/giftcard"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

func newCard(balance money.Money, status giftcard.Status, expiresAt *time.Time) *giftcard.GiftCard {
	return giftcard.ReconstructGiftCard(uuid.New(), "GIFT-2026", money.FromInt(100), balance, status, expiresAt, now.AddDate(0, -1, 0))
}

func TestNewCode(t *testing.T) {
	code, err := giftcard.NewCode("  gift-2026 ")
	require.NoError(t, err)
	assert.Equal(t, "GIFT-2026", code.String())

	for _, bad := range []string{"", "abc", "with space", "TOO-LONG-CODE-THAT-NEVER-ENDS-123"} {
		_, err := giftcard.NewCode(bad)
		assert.True(t, errs.Is(err, errs.ErrGiftCardInvalid), bad)
	}
}

func TestVerify(t *testing.T) {
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name  string
		card  *giftcard.GiftCard
		errIs error
	}{
		{name: "active with balance", card: newCard(money.FromInt(50), giftcard.StatusActive, &future)},
		{name: "no expiry", card: newCard(money.FromInt(50), giftcard.StatusActive, nil)},
		{name: "expired", card: newCard(money.FromInt(50), giftcard.StatusActive, &past), errIs: giftcard.ErrExpired},
		{name: "used", card: newCard(money.Zero(), giftcard.StatusUsed, nil), errIs: giftcard.ErrNotActive},
		{name: "cancelled", card: newCard(money.FromInt(50), giftcard.StatusCancelled, nil), errIs: giftcard.ErrNotActive},
		{name: "empty balance", card: newCard(money.Zero(), giftcard.StatusActive, nil), errIs: giftcard.ErrEmptyBalance},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.card.Verify(now)
			if tc.errIs == nil {
				assert.NoError(t, err)
				assert.True(t, tc.card.IsValidAt(now))
				return
			}
			assert.ErrorIs(t, err, tc.errIs)
			assert.True(t, errs.Is(err, errs.ErrGiftCardInvalid))
		})
	}
}

func TestDebit(t *testing.T) {
	card := newCard(money.FromInt(50), giftcard.StatusActive, nil)

	require.NoError(t, card.Debit(money.FromInt(30)))
	assert.Equal(t, "20.00", card.Balance().String())
	assert.Equal(t, giftcard.StatusActive, card.Status())

	assert.ErrorIs(t, card.Debit(money.FromInt(21)), giftcard.ErrDebitExceedsBalance)
	assert.ErrorIs(t, card.Debit(money.Zero()), giftcard.ErrInvalidDebit)

	require.NoError(t, card.Debit(money.FromInt(20)))
	assert.True(t, card.Balance().IsZero())
	assert.Equal(t, giftcard.StatusUsed, card.Status())
}
