//go:build unit

package validation_test

import (
	"testing"

	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/domain/validation"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/ptr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideTerminalStates(t *testing.T) {
	cases := []struct {
		name          string
		attended      bool
		paid          bool
		status        reservation.Status
		paymentStatus reservation.PaymentStatus
	}{
		{name: "present and paid", attended: true, paid: true, status: reservation.StatusCompleted, paymentStatus: reservation.PaymentPaid},
		{name: "present and unpaid", attended: true, paid: false, status: reservation.StatusCompleted, paymentStatus: reservation.PaymentUnpaid},
		{name: "absent with deposit", attended: false, paid: true, status: reservation.StatusNoShow, paymentStatus: reservation.PaymentPartial},
		{name: "absent and unpaid", attended: false, paid: false, status: reservation.StatusNoShow, paymentStatus: reservation.PaymentNoShow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := validation.Decide(reservation.PaymentUnpaid, ptr.Of(tc.attended), ptr.Of(tc.paid))
			require.NoError(t, err)
			assert.Equal(t, tc.status, out.Status)
			assert.Equal(t, tc.paymentStatus, out.PaymentStatus)
			assert.Equal(t, tc.attended, out.Present())
			assert.Equal(t, tc.paid, out.Paid())
		})
	}
}

func TestDecideUnanswered(t *testing.T) {
	_, err := validation.Decide(reservation.PaymentUnpaid, nil, ptr.Of(true))
	assert.True(t, errs.Is(err, errs.ErrInvalidAttendanceCombination))

	_, err = validation.Decide(reservation.PaymentUnpaid, ptr.Of(true), nil)
	assert.ErrorIs(t, err, validation.ErrPaymentUnanswered)
	assert.True(t, errs.Is(err, errs.ErrInvalidAttendanceCombination))

	_, err = validation.Decide(reservation.PaymentPartial, nil, nil)
	assert.ErrorIs(t, err, validation.ErrAttendanceUnanswered)
}

func TestAttendanceMachine(t *testing.T) {
	t.Run("payment before attendance is rejected", func(t *testing.T) {
		m := validation.NewAttendanceMachine(reservation.PaymentUnpaid)
		assert.ErrorIs(t, m.Pay(true), validation.ErrAttendanceUnanswered)
	})

	t.Run("changing attendance reopens payment", func(t *testing.T) {
		m := validation.NewAttendanceMachine(reservation.PaymentUnpaid)
		require.NoError(t, m.Attend(true))
		require.NoError(t, m.Pay(true))
		require.NoError(t, m.Attend(false))

		_, err := m.Outcome()
		assert.ErrorIs(t, err, validation.ErrPaymentUnanswered)
	})

	t.Run("pending payment refuses every transition", func(t *testing.T) {
		m := validation.NewAttendanceMachine(reservation.PaymentPending)
		assert.True(t, errs.Is(m.Attend(true), errs.ErrBlockedByPendingPayment))
		assert.True(t, errs.Is(m.Pay(true), errs.ErrBlockedByPendingPayment))
		_, err := m.Outcome()
		assert.True(t, errs.Is(err, errs.ErrBlockedByPendingPayment))
	})
}
