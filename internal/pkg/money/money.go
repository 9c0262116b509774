package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are euros with two decimal places.
const scale = 2

var ErrInvalidAmount = errors.New("invalid money amount")

type Money struct {
	d decimal.Decimal
}

func Zero() Money {
	return Money{}
}

func New(d decimal.Decimal) Money {
	return Money{d: d.Round(scale)}
}

func FromInt(euros int64) Money {
	return Money{d: decimal.NewFromInt(euros)}
}

func FromCents(cents int64) Money {
	return Money{d: decimal.New(cents, -scale)}
}

func Parse(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return New(d), nil
}

func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal {
	return m.d
}

func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// ClampZero returns m, or zero if m is negative.
func (m Money) ClampZero() Money {
	if m.d.IsNegative() {
		return Money{}
	}
	return m
}

func Min(a, b Money) Money {
	if a.d.LessThan(b.d) {
		return a
	}
	return b
}

func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

func (m Money) IsZero() bool {
	return m.d.IsZero()
}

func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

func (m Money) Cents() int64 {
	return m.d.Shift(scale).Round(0).IntPart()
}

func (m Money) String() string {
	return m.d.StringFixed(scale)
}

// Display renders the amount the way operators read it on notes and labels: "20€", "12.50€".
func (m Money) Display() string {
	if m.d.Equal(m.d.Truncate(0)) {
		return m.d.StringFixed(0) + "€"
	}
	return m.d.StringFixed(scale) + "€"
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.StringFixed(scale)), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return ErrInvalidAmount
	}
	*m = New(d)
	return nil
}
