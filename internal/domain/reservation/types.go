package reservation

import (
	"strings"

	"salon-backoffice/internal/pkg/errs"
)

var ErrUnknownPaymentMethod = errs.Mark(errs.New("unknown payment method"), errs.ErrInvalidInput)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusNoShow, StatusCancelled:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
	PaymentNoShow  PaymentStatus = "no_show"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentUnpaid, PaymentPending, PaymentPartial, PaymentPaid, PaymentNoShow:
		return true
	default:
		return false
	}
}

// CollectsMoney reports whether the status records money taken or promised.
func (s PaymentStatus) CollectsMoney() bool {
	return s == PaymentPaid || s == PaymentPartial || s == PaymentPending
}

type PaymentMethod string

const (
	MethodNone     PaymentMethod = ""
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "transfer"
	MethodCheck    PaymentMethod = "check"
	MethodStripe   PaymentMethod = "stripe"
	MethodPayPal   PaymentMethod = "paypal"
	MethodMollie   PaymentMethod = "mollie"
	MethodSumUp    PaymentMethod = "sumup"
)

var methodAliases = map[string]PaymentMethod{
	"cash":     MethodCash,
	"especes":  MethodCash,
	"espèces":  MethodCash,
	"card":     MethodCard,
	"cb":       MethodCard,
	"carte":    MethodCard,
	"transfer": MethodTransfer,
	"virement": MethodTransfer,
	"check":    MethodCheck,
	"cheque":   MethodCheck,
	"chèque":   MethodCheck,
	"stripe":   MethodStripe,
	"paypal":   MethodPayPal,
	"mollie":   MethodMollie,
	"sumup":    MethodSumUp,
}

// ParsePaymentMethod normalizes operator input. An empty string yields MethodNone.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MethodNone, nil
	}
	m, ok := methodAliases[s]
	if !ok {
		return MethodNone, errs.Wrapf(ErrUnknownPaymentMethod, "%q", s)
	}
	return m, nil
}

func (m PaymentMethod) String() string {
	return string(m)
}

// IsOnline reports whether the method is a hosted checkout confirmed asynchronously.
func (m PaymentMethod) IsOnline() bool {
	switch m {
	case MethodStripe, MethodPayPal, MethodMollie, MethodSumUp:
		return true
	default:
		return false
	}
}
