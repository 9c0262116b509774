package validation

import (
	"strings"
	"time"

	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/pkg/money"
)

const (
	notesDiscountPrefix = "Réductions appliquées: "
	notesAbsentDeposit  = "Acompte reçu - Client absent"
	notesAbsentNoPay    = "Client absent - Aucun paiement"
)

type ReconcileInput struct {
	Outcome    Outcome
	Selection  *loyalty.Selection
	Resolution loyalty.Resolution
	Method     reservation.PaymentMethod
	Notes      string
	Now        time.Time
}

// Reconcile turns an attendance outcome and a priced selection into the
// persisted payment state. Online methods always end up pending: only the
// provider confirms them.
func Reconcile(in ReconcileInput) *Result {
	res := &Result{
		Status:                in.Outcome.Status,
		PaymentStatus:         in.Outcome.PaymentStatus,
		PaymentAmount:         money.Zero(),
		BasePrice:             in.Resolution.Base,
		DiscountTotal:         in.Resolution.DiscountTotal,
		FinalAmount:           in.Resolution.Final,
		DiscountLedgerEntries: []loyalty.Offer{},
	}
	notes := strings.TrimSpace(in.Notes)

	now := in.Now
	res.PaymentDate = &now

	if !in.Outcome.Paid() {
		res.PaymentNotes = notes
		if !in.Outcome.Present() && notes == "" {
			res.PaymentNotes = notesAbsentNoPay
		}
		return res
	}

	if in.Method.IsOnline() {
		res.PaymentStatus = reservation.PaymentPending
	}
	res.PaymentMethod = in.Method
	res.PaymentAmount = in.Resolution.Final

	offers := in.Selection.Offers()
	labels := make([]string, 0, len(offers)+1)
	for _, o := range offers {
		switch o.Kind() {
		case loyalty.KindIndividual:
			res.ResetIndividualServicesCount = true
		case loyalty.KindPackage:
			res.ResetPackagesCount = true
		}
		res.DiscountLedgerEntries = append(res.DiscountLedgerEntries, o)
		labels = append(labels, o.Label())
	}

	if gc := in.Resolution.GiftCard; gc != nil && in.Resolution.GiftCardApplied.IsPositive() {
		used := in.Resolution.GiftCardApplied
		id := gc.GiftCardID
		res.GiftCardUsedAmount = &used
		res.GiftCardID = &id
		res.GiftCardCode = gc.Code
		labels = append(labels, loyalty.GiftCardLabel(gc.Code, used))
	}

	res.PaymentNotes = buildNotes(labels, notes)
	if res.PaymentNotes == "" && !in.Outcome.Present() {
		res.PaymentNotes = notesAbsentDeposit
	}
	return res
}

func buildNotes(labels []string, operatorNote string) string {
	if len(labels) == 0 {
		return operatorNote
	}
	out := notesDiscountPrefix + strings.Join(labels, ", ")
	if operatorNote != "" {
		out += " | " + operatorNote
	}
	return out
}
