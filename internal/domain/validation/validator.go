package validation

import (
	"time"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/pkg/clock"
	"salon-backoffice/internal/pkg/errs"
)

var (
	ErrMissingReservation     = errs.Mark(errs.New("reservation is required"), errs.ErrInvalidInput)
	ErrMissingSelection       = errs.Mark(errs.New("discount selection is required"), errs.ErrInvalidInput)
	ErrMethodRequired         = errs.Mark(errs.New("a payment method is required when a payment was made"), errs.ErrInvalidInput)
	ErrStaleOffer             = errs.Mark(errs.New("selected discount is no longer available"), errs.ErrInvalidInput)
	ErrNothingToCollectOnline = errs.Mark(errs.New("nothing left to collect, choose a non-online payment method"), errs.ErrInvalidInput)
)

type Request struct {
	Reservation *reservation.Reservation
	Profile     loyalty.Profile
	Settings    loyalty.Settings
	Catalog     loyalty.CatalogOptions
	Attended    *bool
	Paid        *bool
	Selection   *loyalty.Selection
	Method      reservation.PaymentMethod
	Notes       string
}

// Validator is the single entry point that closes out a reservation.
// It performs no I/O and never mutates its inputs.
type Validator struct {
	clock    clock.Clock
	location *time.Location
}

func NewValidator(c clock.Clock, loc *time.Location) *Validator {
	if loc == nil {
		loc = time.UTC
	}
	return &Validator{clock: c, location: loc}
}

func (v *Validator) Today() time.Time {
	return v.clock.Now().In(v.location)
}

func (v *Validator) Validate(req Request) (*Result, error) {
	if req.Reservation == nil {
		return nil, ErrMissingReservation
	}
	if req.Reservation.IsPaymentPending() {
		return nil, ErrPendingPayment
	}
	if req.Selection == nil {
		return nil, ErrMissingSelection
	}

	now := v.Today()
	if err := v.checkSelection(req, now); err != nil {
		return nil, err
	}

	resolution := loyalty.Resolve(req.Reservation.TotalPrice(), req.Selection)

	outcome, err := Decide(req.Reservation.PaymentStatus(), req.Attended, req.Paid)
	if err != nil {
		return nil, err
	}
	if outcome.Paid() && req.Method == reservation.MethodNone {
		return nil, ErrMethodRequired
	}
	if outcome.Paid() && req.Method.IsOnline() && !resolution.Final.IsPositive() {
		return nil, ErrNothingToCollectOnline
	}

	return Reconcile(ReconcileInput{
		Outcome:    outcome,
		Selection:  req.Selection,
		Resolution: resolution,
		Method:     req.Method,
		Notes:      req.Notes,
		Now:        now,
	}), nil
}

// checkSelection rejects catalog offers the client is no longer eligible for.
// Ad-hoc manual discounts are not catalog offers and always pass.
func (v *Validator) checkSelection(req Request, today time.Time) error {
	available := loyalty.ComputeAvailable(req.Profile, req.Settings, today, req.Catalog)
	keys := make(map[string]struct{}, len(available))
	for _, o := range available {
		keys[o.Key()] = struct{}{}
	}
	for _, o := range req.Selection.Offers() {
		if o.Kind() == loyalty.KindManual && !o.FromLedger() {
			continue
		}
		if _, ok := keys[o.Key()]; !ok {
			return errs.Wrapf(ErrStaleOffer, "%s", o.Label())
		}
	}
	return nil
}
