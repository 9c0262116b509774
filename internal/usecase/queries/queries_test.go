//go:build unit

package queries_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"salon-backoffice/internal/domain/giftcard"
	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/domain/validation"
	"salon-backoffice/internal/pkg/clock"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/usecase/queries"
	"salon-backoffice/internal/usecase/shared"
	"salon-backoffice/tests/common/fakeuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store         *fakeuow.Store
	uow           *fakeuow.UoW
	cache         *fakeuow.SettingsCache
	clock         *clock.MockClock
	provider      *shared.SettingsProvider
	loader        *shared.ContextLoader
	validator     *validation.Validator
	reservationID uuid.UUID
	clientID      uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	f := &fixture{
		store:         fakeuow.NewStore(),
		cache:         &fakeuow.SettingsCache{},
		clock:         clock.NewMockClock(time.Date(2026, 3, 15, 10, 0, 0, 0, paris)),
		reservationID: uuid.New(),
		clientID:      uuid.New(),
	}
	f.store.SetNow(f.clock.Now)
	f.uow = fakeuow.NewUoW(f.store)
	f.provider = shared.NewSettingsProvider(f.cache, fakeuow.Logger())
	f.loader = shared.NewContextLoader(f.provider, loyalty.BirthdayWindowCalendarYear)
	f.validator = validation.NewValidator(f.clock, paris)

	birth := time.Date(1990, 3, 2, 0, 0, 0, 0, time.UTC)
	f.store.AddReservation(reservation.Snapshot{
		ID:            f.reservationID,
		ClientID:      f.clientID,
		TotalPrice:    money.FromInt(80),
		Date:          f.clock.Now(),
		Services:      reservation.ServiceList([]string{"Soin visage", "Massage"}),
		Status:        reservation.StatusConfirmed,
		PaymentStatus: reservation.PaymentUnpaid,
	})
	f.store.AddProfile(loyalty.Profile{ClientID: f.clientID, IndividualServicesCount: 5, BirthDate: &birth})
	return f
}

func TestPreview(t *testing.T) {
	t.Run("default selection uses the automatic offers", func(t *testing.T) {
		f := newFixture(t)
		q := queries.NewPreviewQueries(f.uow, f.loader, f.validator)

		view, err := q.Preview(context.Background(), f.reservationID, shared.SelectionInput{})
		require.NoError(t, err)

		assert.Len(t, view.Available, 2)
		assert.ElementsMatch(t, []string{"individual:Fidélité 5 soins: -20€", "birthday:Anniversaire: -10€"}, view.DefaultKeys)
		assert.Equal(t, "30.00", view.DiscountTotal.String())
		assert.Equal(t, "50.00", view.FinalAmount.String())
		assert.False(t, view.PaymentPending)
	})

	t.Run("birthday already issued this year is not automatic", func(t *testing.T) {
		f := newFixture(t)
		f.store.AddLedgerEntry(f.clientID, loyalty.LedgerEntry{
			ID:        uuid.New(),
			Type:      loyalty.KindBirthday,
			Amount:    money.FromInt(10),
			Status:    loyalty.LedgerStatusUsed,
			CreatedAt: time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC),
		})
		q := queries.NewPreviewQueries(f.uow, f.loader, f.validator)

		view, err := q.Preview(context.Background(), f.reservationID, shared.SelectionInput{})
		require.NoError(t, err)
		assert.Equal(t, []string{"individual:Fidélité 5 soins: -20€"}, view.DefaultKeys)
		assert.Equal(t, "60.00", view.FinalAmount.String())
	})

	t.Run("gift card covers the remainder", func(t *testing.T) {
		f := newFixture(t)
		f.store.AddGiftCard(fakeuow.GiftCardRow{
			ID:      uuid.New(),
			Code:    "GIFT-0001",
			Initial: money.FromInt(100),
			Balance: money.FromInt(100),
			Status:  giftcard.StatusActive,
		})
		q := queries.NewPreviewQueries(f.uow, f.loader, f.validator)

		view, err := q.Preview(context.Background(), f.reservationID, shared.SelectionInput{
			SelectedOffers: []string{"individual:Fidélité 5 soins: -20€"},
			GiftCard:       &shared.GiftCardInput{Code: "GIFT-0001"},
		})
		require.NoError(t, err)
		require.NotNil(t, view.GiftCard)
		assert.Equal(t, "60.00", view.GiftCard.Applied.String())
		assert.True(t, view.FinalAmount.IsZero())
		assert.Equal(t, "100.00", f.store.GiftCard("GIFT-0001").Balance.String())
	})

	t.Run("pending reservation still previews", func(t *testing.T) {
		f := newFixture(t)
		snap := f.store.Reservation(f.reservationID)
		snap.PaymentStatus = reservation.PaymentPending
		f.store.AddReservation(snap)
		q := queries.NewPreviewQueries(f.uow, f.loader, f.validator)

		view, err := q.Preview(context.Background(), f.reservationID, shared.SelectionInput{})
		require.NoError(t, err)
		assert.True(t, view.PaymentPending)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture(t)
		q := queries.NewPreviewQueries(f.uow, f.loader, f.validator)

		_, err := q.Preview(context.Background(), uuid.New(), shared.SelectionInput{})
		assert.True(t, errs.Is(err, errs.ErrReservationNotFound))
	})
}

func TestGetReservation(t *testing.T) {
	f := newFixture(t)
	q := queries.NewReservationQueries(f.uow)

	view, err := q.GetReservation(context.Background(), f.reservationID)
	require.NoError(t, err)

	assert.Equal(t, f.reservationID, view.ID)
	assert.Equal(t, f.clientID, view.ClientID)
	assert.Equal(t, "confirmed", view.Status)
	assert.Equal(t, "unpaid", view.PaymentStatus)
	assert.Equal(t, "80.00", view.TotalPrice.String())

	body, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"services":["Soin visage","Massage"]`)
}

func TestVerifyGiftCard(t *testing.T) {
	f := newFixture(t)
	expired := f.clock.Now().AddDate(0, -1, 0)
	f.store.AddGiftCard(fakeuow.GiftCardRow{ID: uuid.New(), Code: "GOOD-0001", Balance: money.FromInt(30), Status: giftcard.StatusActive})
	f.store.AddGiftCard(fakeuow.GiftCardRow{ID: uuid.New(), Code: "OLD-0001", Balance: money.FromInt(30), Status: giftcard.StatusActive, ExpiresAt: &expired})
	q := queries.NewGiftCardQueries(f.uow, f.clock)

	good, err := q.VerifyGiftCard(context.Background(), "good-0001")
	require.NoError(t, err)
	assert.True(t, good.Valid)
	assert.Equal(t, "30.00", good.Balance.String())

	old, err := q.VerifyGiftCard(context.Background(), "OLD-0001")
	require.NoError(t, err)
	assert.False(t, old.Valid)
	assert.NotEmpty(t, old.Reason)

	_, err = q.VerifyGiftCard(context.Background(), "MISSING-1")
	assert.True(t, errs.Is(err, errs.ErrGiftCardNotFound))

	_, err = q.VerifyGiftCard(context.Background(), "bad code!")
	assert.True(t, errs.Is(err, errs.ErrGiftCardInvalid))
}

func TestGetSettings(t *testing.T) {
	f := newFixture(t)
	custom := loyalty.DefaultSettings()
	custom.PackageThreshold = 4
	f.store.Settings = &custom
	q := queries.NewSettingsQueries(f.uow, f.provider)

	got, err := q.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, got.PackageThreshold)

	// served from the cache from now on
	f.store.Settings = nil
	got, err = q.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, got.PackageThreshold)
}
