//go:build unit

package reservation_test

import (
	"encoding/json"
	"testing"
	"time"

	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	cases := []struct {
		in     string
		want   reservation.PaymentMethod
		online bool
	}{
		{in: "CB", want: reservation.MethodCard},
		{in: "Espèces", want: reservation.MethodCash},
		{in: "virement", want: reservation.MethodTransfer},
		{in: "chèque", want: reservation.MethodCheck},
		{in: "Stripe", want: reservation.MethodStripe, online: true},
		{in: "PayPal", want: reservation.MethodPayPal, online: true},
		{in: "mollie", want: reservation.MethodMollie, online: true},
		{in: "SumUp", want: reservation.MethodSumUp, online: true},
		{in: "", want: reservation.MethodNone},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := reservation.ParsePaymentMethod(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.online, got.IsOnline())
		})
	}

	_, err := reservation.ParsePaymentMethod("bitcoin")
	assert.ErrorIs(t, err, reservation.ErrUnknownPaymentMethod)
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
}

func TestParseServices(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		specified bool
		list      bool
		names     []string
		wantErr   bool
	}{
		{name: "null", raw: `null`},
		{name: "empty", raw: ``},
		{name: "blank string", raw: `"  "`},
		{name: "single", raw: `"Hydro'Naissance"`, specified: true, names: []string{"Hydro'Naissance"}},
		{name: "list", raw: `["BB Glow","LED"]`, specified: true, list: true, names: []string{"BB Glow", "LED"}},
		{name: "list inside string", raw: `"[\"BB Glow\",\"LED\"]"`, specified: true, list: true, names: []string{"BB Glow", "LED"}},
		{name: "empty list", raw: `[]`},
		{name: "number", raw: `42`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := reservation.ParseServices([]byte(tc.raw))
			if tc.wantErr {
				assert.ErrorIs(t, err, reservation.ErrInvalidServices)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.specified, got.IsSpecified())
			assert.Equal(t, tc.list, got.IsList())
			if tc.names != nil {
				assert.Equal(t, tc.names, got.Names())
			}
		})
	}
}

func TestServicesJSON(t *testing.T) {
	b, err := json.Marshal(reservation.ServiceList([]string{"LED", "Peeling"}))
	require.NoError(t, err)
	assert.JSONEq(t, `["LED","Peeling"]`, string(b))

	b, err = json.Marshal(reservation.SingleService("LED"))
	require.NoError(t, err)
	assert.JSONEq(t, `"LED"`, string(b))

	b, err = json.Marshal(reservation.UnspecifiedServices())
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestNewInvoiceNumber(t *testing.T) {
	at := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "FAC-202603-0007", reservation.NewInvoiceNumber(at, 7))
	assert.Equal(t, "FAC-202603-12345", reservation.NewInvoiceNumber(at, 12345))
}

func TestReconstructReservation(t *testing.T) {
	id := uuid.New()
	r := reservation.ReconstructReservation(reservation.Snapshot{
		ID:            id,
		TotalPrice:    money.FromInt(-5),
		PaymentStatus: "weird",
		Status:        reservation.StatusConfirmed,
	})

	assert.Equal(t, id, r.ID())
	assert.True(t, r.TotalPrice().IsZero())
	assert.Equal(t, reservation.PaymentUnpaid, r.PaymentStatus())
	assert.False(t, r.IsPaymentPending())

	pending := reservation.ReconstructReservation(reservation.Snapshot{PaymentStatus: reservation.PaymentPending})
	assert.True(t, pending.IsPaymentPending())
}
