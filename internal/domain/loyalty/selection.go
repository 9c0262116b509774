package loyalty

import (
	"strings"

	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
)

var (
	ErrManualAmountNotPositive = errs.Mark(errs.New("manual discount amount must be positive"), errs.ErrInvalidInput)
	ErrManualReasonRequired    = errs.Mark(errs.New("manual discount reason is required"), errs.ErrInvalidInput)
	ErrGiftCardAmountNegative  = errs.Mark(errs.New("gift card amount cannot be negative"), errs.ErrInvalidInput)
	ErrGiftCardOfferToggle     = errs.Mark(errs.New("gift cards are attached with SetGiftCard"), errs.ErrInvalidInput)
)

type GiftCardRedemption struct {
	GiftCardID uuid.UUID
	Code       string
	Balance    money.Money
	Amount     money.Money
}

// Selection is the set of discounts switched on for one validation.
type Selection struct {
	base        money.Money
	offers      []Offer
	giftCard    *GiftCardRedemption
	preselected bool
}

func NewSelection(base money.Money) *Selection {
	return &Selection{base: base}
}

func (s *Selection) Base() money.Money {
	return s.base
}

// Toggle switches an offer on or off by key and reports whether it is now active.
// Switching a referral offer on clears the opposite referral offer.
func (s *Selection) Toggle(o Offer) (bool, error) {
	if o.Kind() == KindGiftCard {
		return false, ErrGiftCardOfferToggle
	}
	if i := s.indexOf(o.Key()); i >= 0 {
		s.offers = append(s.offers[:i], s.offers[i+1:]...)
		return false, nil
	}
	if o.Kind().isReferral() {
		s.removeKind(oppositeReferral(o.Kind()))
	}
	s.offers = append(s.offers, o)
	return true, nil
}

func (s *Selection) AddManual(amount money.Money, reason string) (Offer, error) {
	if !amount.IsPositive() {
		return Offer{}, ErrManualAmountNotPositive
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Offer{}, ErrManualReasonRequired
	}
	o := NewOffer(KindManual, amount, ManualLabel(reason, amount), false)
	s.offers = append(s.offers, o)
	return o, nil
}

// SetGiftCard attaches a redemption. The usable amount never exceeds the card
// balance nor what is left to pay after the other discounts.
func (s *Selection) SetGiftCard(giftCardID uuid.UUID, code string, balance, amount money.Money) error {
	if amount.IsNegative() {
		return ErrGiftCardAmountNegative
	}
	s.giftCard = &GiftCardRedemption{
		GiftCardID: giftCardID,
		Code:       code,
		Balance:    balance,
		Amount:     amount,
	}
	return nil
}

func (s *Selection) ClearGiftCard() {
	s.giftCard = nil
}

// GiftCard returns the redemption clamped against the current selection.
func (s *Selection) GiftCard() *GiftCardRedemption {
	if s.giftCard == nil {
		return nil
	}
	gc := *s.giftCard
	gc.Amount = money.Min(gc.Amount, money.Min(gc.Balance.ClampZero(), s.remainingAfterDiscounts()))
	return &gc
}

// Preselect opts in the automatic offers once. Later calls are ignored so an
// offer the operator removed is never re-added.
func (s *Selection) Preselect(offers []Offer) {
	if s.preselected {
		return
	}
	s.preselected = true
	for _, o := range offers {
		if o.Automatic() && s.indexOf(o.Key()) < 0 {
			s.offers = append(s.offers, o)
		}
	}
}

func (s *Selection) Offers() []Offer {
	out := make([]Offer, len(s.offers))
	copy(out, s.offers)
	return out
}

func (s *Selection) Has(kind Kind) bool {
	for _, o := range s.offers {
		if o.Kind() == kind {
			return true
		}
	}
	return false
}

func (s *Selection) Contains(key string) bool {
	return s.indexOf(key) >= 0
}

func (s *Selection) remainingAfterDiscounts() money.Money {
	remaining := s.base.ClampZero()
	for _, o := range s.offers {
		remaining = remaining.Sub(o.Amount()).ClampZero()
	}
	return remaining
}

func (s *Selection) indexOf(key string) int {
	for i, o := range s.offers {
		if o.Key() == key {
			return i
		}
	}
	return -1
}

func (s *Selection) removeKind(kind Kind) {
	kept := s.offers[:0]
	for _, o := range s.offers {
		if o.Kind() != kind {
			kept = append(kept, o)
		}
	}
	s.offers = kept
}

func oppositeReferral(k Kind) Kind {
	if k == KindReferralSponsor {
		return KindReferralReferred
	}
	return KindReferralSponsor
}

func ManualLabel(reason string, amount money.Money) string {
	if reason == "" {
		return "Réduction manuelle: -" + amount.Display()
	}
	return "Réduction manuelle (" + reason + "): -" + amount.Display()
}

func GiftCardLabel(code string, amount money.Money) string {
	return "Carte cadeau " + code + ": -" + amount.Display()
}
