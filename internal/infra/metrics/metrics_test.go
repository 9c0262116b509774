//go:build unit

package metrics_test

import (
	"testing"

	"salon-backoffice/internal/infra/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)

	r.ValidationCompleted("completed", "paid", []string{"individual", "birthday", "individual"})
	r.ValidationCompleted("no_show", "no_show", nil)
	r.ValidationBlocked()
	r.PaymentLink(true)
	r.PaymentLink(false)

	families, err := reg.Gather()
	require.NoError(t, err)

	totals := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			totals[mf.GetName()] += m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2.0, totals["salon_reservation_validations_total"])
	assert.Equal(t, 3.0, totals["salon_discounts_applied_total"])
	assert.Equal(t, 2.0, totals["salon_payment_links_total"])
	assert.Equal(t, 1.0, totals["salon_validations_blocked_pending_total"])
}
