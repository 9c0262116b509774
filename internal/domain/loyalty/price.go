package loyalty

import "salon-backoffice/internal/pkg/money"

type AppliedDiscount struct {
	Offer   Offer
	Applied money.Money
}

type Resolution struct {
	Base            money.Money
	Lines           []AppliedDiscount
	DiscountTotal   money.Money
	GiftCard        *GiftCardRedemption
	GiftCardApplied money.Money
	Final           money.Money
}

// Resolve applies the selection to basePrice. Each discount consumes at most
// what remains; any excess is discarded.
func Resolve(basePrice money.Money, sel *Selection) Resolution {
	res := Resolution{Base: basePrice}
	remaining := basePrice.ClampZero()

	for _, o := range sel.Offers() {
		applied := money.Min(o.Amount().ClampZero(), remaining)
		remaining = remaining.Sub(applied)
		res.DiscountTotal = res.DiscountTotal.Add(applied)
		res.Lines = append(res.Lines, AppliedDiscount{Offer: o, Applied: applied})
	}

	if gc := sel.GiftCard(); gc != nil {
		applied := money.Min(gc.Amount, remaining)
		remaining = remaining.Sub(applied).ClampZero()
		gc.Amount = applied
		res.GiftCard = gc
		res.GiftCardApplied = applied
	}

	res.Final = remaining
	return res
}
