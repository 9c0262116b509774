//go:build unit

package commands_test

import (
	"context"
	"testing"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSettings(t *testing.T) {
	t.Run("saves and invalidates the cache", func(t *testing.T) {
		f := newFixture(t)
		s := loyalty.DefaultSettings()
		s.ServiceThreshold = 8
		s.ServiceDiscount = money.FromInt(25)

		saved, err := f.settings.UpdateSettings(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, 8, saved.ServiceThreshold)
		require.NotNil(t, f.store.Settings)
		assert.Equal(t, 8, f.store.Settings.ServiceThreshold)
		assert.Equal(t, 1, f.cache.Invalidated)
	})

	t.Run("new thresholds drive the next validation", func(t *testing.T) {
		f := newFixture(t)
		s := loyalty.DefaultSettings()
		s.ServiceThreshold = 8
		_, err := f.settings.UpdateSettings(context.Background(), s)
		require.NoError(t, err)

		out, err := f.validate(t, uuid.New(), paidCash())
		require.NoError(t, err)
		assert.Equal(t, "80.00", out.Result.PaymentAmount.String())
	})

	t.Run("non-positive amounts are rejected", func(t *testing.T) {
		f := newFixture(t)
		s := loyalty.DefaultSettings()
		s.BirthdayDiscount = money.Zero()

		_, err := f.settings.UpdateSettings(context.Background(), s)
		assert.True(t, errs.Is(err, errs.ErrInvalidInput))
		assert.Nil(t, f.store.Settings)
		assert.Zero(t, f.cache.Invalidated)
	})
}
