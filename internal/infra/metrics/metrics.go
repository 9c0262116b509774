package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "salon"

// Recorder counts validation outcomes. It satisfies the use case metrics port.
type Recorder struct {
	validations   *prometheus.CounterVec
	discounts     *prometheus.CounterVec
	paymentLinks  *prometheus.CounterVec
	blockedByLink prometheus.Counter
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_validations_total",
			Help:      "Reservation validations by resulting reservation and payment status.",
		}, []string{"status", "payment_status"}),
		discounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discounts_applied_total",
			Help:      "Discounts recorded by validations, by kind.",
		}, []string{"kind"}),
		paymentLinks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_links_total",
			Help:      "Payment link creations by result.",
		}, []string{"result"}),
		blockedByLink: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_blocked_pending_total",
			Help:      "Validations refused because an online payment was pending.",
		}),
	}
	reg.MustRegister(r.validations, r.discounts, r.paymentLinks, r.blockedByLink)
	return r
}

func (r *Recorder) ValidationCompleted(status, paymentStatus string, discountKinds []string) {
	r.validations.WithLabelValues(status, paymentStatus).Inc()
	for _, k := range discountKinds {
		r.discounts.WithLabelValues(k).Inc()
	}
}

func (r *Recorder) ValidationBlocked() {
	r.blockedByLink.Inc()
}

func (r *Recorder) PaymentLink(ok bool) {
	result := "created"
	if !ok {
		result = "failed"
	}
	r.paymentLinks.WithLabelValues(result).Inc()
}
