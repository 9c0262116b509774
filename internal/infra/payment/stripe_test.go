//go:build unit

package payment_test

import (
	"context"
	"errors"
	"testing"

	"salon-backoffice/internal/infra/payment"
	"salon-backoffice/internal/pkg/config"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/money"
	"salon-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type fakeSessions struct {
	got *stripe.CheckoutSessionParams
	err error
}

func (f *fakeSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/c/pay/cs_test_123"}, nil
}

func TestStripeLinkProvider(t *testing.T) {
	cfg := config.NewTestConfig().Stripe
	reservationID := uuid.New()

	t.Run("builds a one-line checkout session in cents", func(t *testing.T) {
		sessions := &fakeSessions{}
		p := payment.NewStripeLinkProviderWith(sessions, cfg)

		link, err := p.CreateLink(context.Background(), shared.LinkRequest{
			ReservationID: reservationID,
			Amount:        money.MustParse("62.50"),
			Description:   "Soin Hydro'Naissance",
			InvoiceNumber: "FAC-202603-0007",
		})
		require.NoError(t, err)
		assert.Equal(t, "cs_test_123", link.ID)
		assert.Contains(t, link.URL, "cs_test_123")

		require.Len(t, sessions.got.LineItems, 1)
		item := sessions.got.LineItems[0]
		assert.Equal(t, int64(6250), *item.PriceData.UnitAmount)
		assert.Equal(t, "eur", *item.PriceData.Currency)
		assert.Equal(t, reservationID.String(), *sessions.got.ClientReferenceID)
		assert.Equal(t, "FAC-202603-0007", sessions.got.Metadata["invoice_number"])
	})

	t.Run("provider failure is a payment link error", func(t *testing.T) {
		p := payment.NewStripeLinkProviderWith(&fakeSessions{err: errors.New("card_declined")}, cfg)
		_, err := p.CreateLink(context.Background(), shared.LinkRequest{ReservationID: reservationID, Amount: money.FromInt(10)})
		assert.True(t, errs.Is(err, errs.ErrPaymentLinkFailed))
	})

	t.Run("zero amount is rejected before calling the provider", func(t *testing.T) {
		sessions := &fakeSessions{}
		p := payment.NewStripeLinkProviderWith(sessions, cfg)
		_, err := p.CreateLink(context.Background(), shared.LinkRequest{ReservationID: reservationID, Amount: money.Zero()})
		assert.True(t, errs.Is(err, errs.ErrInvalidInput))
		assert.Nil(t, sessions.got)
	})
}
