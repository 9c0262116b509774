package giftcard

import (
	"time"

	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
)

var (
	ErrNotActive           = errs.Mark(errs.New("gift card is not active"), errs.ErrGiftCardInvalid)
	ErrExpired             = errs.Mark(errs.New("gift card has expired"), errs.ErrGiftCardInvalid)
	ErrEmptyBalance        = errs.Mark(errs.New("gift card balance is exhausted"), errs.ErrGiftCardInvalid)
	ErrInvalidDebit        = errs.Mark(errs.New("debit amount must be positive"), errs.ErrInvalidInput)
	ErrDebitExceedsBalance = errs.Mark(errs.New("debit exceeds gift card balance"), errs.ErrInvalidInput)
)

type GiftCard struct {
	id            uuid.UUID
	code          Code
	initialAmount money.Money
	balance       money.Money
	status        Status
	expiresAt     *time.Time
	createdAt     time.Time
}

func ReconstructGiftCard(
	id uuid.UUID,
	code Code,
	initialAmount, balance money.Money,
	status Status,
	expiresAt *time.Time,
	createdAt time.Time,
) *GiftCard {
	return &GiftCard{
		id:            id,
		code:          code,
		initialAmount: initialAmount,
		balance:       balance,
		status:        status,
		expiresAt:     expiresAt,
		createdAt:     createdAt,
	}
}

// Verify reports why the card cannot be redeemed at now, if it cannot.
func (g *GiftCard) Verify(now time.Time) error {
	if g.status != StatusActive {
		return ErrNotActive
	}
	if g.expiresAt != nil && now.After(*g.expiresAt) {
		return ErrExpired
	}
	if !g.balance.IsPositive() {
		return ErrEmptyBalance
	}
	return nil
}

func (g *GiftCard) IsValidAt(now time.Time) bool {
	return g.Verify(now) == nil
}

// Debit reduces the balance. A card reaching zero becomes used.
func (g *GiftCard) Debit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidDebit
	}
	if amount.Cmp(g.balance) > 0 {
		return ErrDebitExceedsBalance
	}
	g.balance = g.balance.Sub(amount)
	if g.balance.IsZero() {
		g.status = StatusUsed
	}
	return nil
}

func (g *GiftCard) ID() uuid.UUID              { return g.id }
func (g *GiftCard) Code() Code                 { return g.code }
func (g *GiftCard) InitialAmount() money.Money { return g.initialAmount }
func (g *GiftCard) Balance() money.Money       { return g.balance }
func (g *GiftCard) Status() Status             { return g.status }
func (g *GiftCard) ExpiresAt() *time.Time      { return g.expiresAt }
func (g *GiftCard) CreatedAt() time.Time       { return g.createdAt }
