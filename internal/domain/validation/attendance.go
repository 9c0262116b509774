package validation

import (
	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/pkg/errs"
)

var (
	ErrPendingPayment       = errs.Mark(errs.New("an online payment is awaiting provider confirmation"), errs.ErrBlockedByPendingPayment)
	ErrAttendanceUnanswered = errs.Mark(errs.New("attendance question is unanswered"), errs.ErrInvalidAttendanceCombination)
	ErrPaymentUnanswered    = errs.Mark(errs.New("payment question is unanswered"), errs.ErrInvalidAttendanceCombination)
)

type Attendance string

const (
	AttendanceUnknown Attendance = "unknown"
	AttendancePresent Attendance = "present"
	AttendanceAbsent  Attendance = "absent"
)

type PaymentAnswer string

const (
	PaymentUnknown PaymentAnswer = "unknown"
	PaymentMade    PaymentAnswer = "paid"
	PaymentNone    PaymentAnswer = "unpaid"
)

// Outcome is a terminal state of the attendance machine.
type Outcome struct {
	Attendance    Attendance
	Payment       PaymentAnswer
	Status        reservation.Status
	PaymentStatus reservation.PaymentStatus
}

func (o Outcome) Present() bool {
	return o.Attendance == AttendancePresent
}

func (o Outcome) Paid() bool {
	return o.Payment == PaymentMade
}

// AttendanceMachine walks Unknown -> Present|Absent -> Paid|Unpaid.
// A reservation with a pending online payment refuses every transition.
type AttendanceMachine struct {
	current    reservation.PaymentStatus
	attendance Attendance
	payment    PaymentAnswer
}

func NewAttendanceMachine(current reservation.PaymentStatus) *AttendanceMachine {
	return &AttendanceMachine{
		current:    current,
		attendance: AttendanceUnknown,
		payment:    PaymentUnknown,
	}
}

func (m *AttendanceMachine) guard() error {
	if m.current == reservation.PaymentPending {
		return ErrPendingPayment
	}
	return nil
}

func (m *AttendanceMachine) Attend(present bool) error {
	if err := m.guard(); err != nil {
		return err
	}
	if present {
		m.attendance = AttendancePresent
	} else {
		m.attendance = AttendanceAbsent
	}
	// Changing the attendance answer reopens the payment question.
	m.payment = PaymentUnknown
	return nil
}

func (m *AttendanceMachine) Pay(paid bool) error {
	if err := m.guard(); err != nil {
		return err
	}
	if m.attendance == AttendanceUnknown {
		return ErrAttendanceUnanswered
	}
	if paid {
		m.payment = PaymentMade
	} else {
		m.payment = PaymentNone
	}
	return nil
}

func (m *AttendanceMachine) Outcome() (Outcome, error) {
	if err := m.guard(); err != nil {
		return Outcome{}, err
	}
	if m.attendance == AttendanceUnknown {
		return Outcome{}, ErrAttendanceUnanswered
	}
	if m.payment == PaymentUnknown {
		return Outcome{}, ErrPaymentUnanswered
	}

	out := Outcome{Attendance: m.attendance, Payment: m.payment}
	switch {
	case m.attendance == AttendancePresent && m.payment == PaymentMade:
		out.Status, out.PaymentStatus = reservation.StatusCompleted, reservation.PaymentPaid
	case m.attendance == AttendancePresent:
		out.Status, out.PaymentStatus = reservation.StatusCompleted, reservation.PaymentUnpaid
	case m.payment == PaymentMade:
		// deposit kept
		out.Status, out.PaymentStatus = reservation.StatusNoShow, reservation.PaymentPartial
	default:
		out.Status, out.PaymentStatus = reservation.StatusNoShow, reservation.PaymentNoShow
	}
	return out, nil
}

// Decide answers both questions in order. Nil answers are unanswered questions.
func Decide(current reservation.PaymentStatus, attended, paid *bool) (Outcome, error) {
	m := NewAttendanceMachine(current)
	if attended != nil {
		if err := m.Attend(*attended); err != nil {
			return Outcome{}, err
		}
	}
	if paid != nil {
		if err := m.Pay(*paid); err != nil {
			return Outcome{}, err
		}
	}
	return m.Outcome()
}
