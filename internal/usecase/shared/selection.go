package shared

import (
	"context"
	"strings"
	"time"

	"salon-backoffice/internal/domain/giftcard"
	"salon-backoffice/internal/domain/loyalty"
	"salon-backoffice/internal/domain/reservation"
	"salon-backoffice/internal/infra"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/pkg/money"

	"github.com/google/uuid"
)

var ErrUnknownOffer = errs.Mark(errs.New("unknown discount offer"), errs.ErrInvalidInput)

type ManualDiscountInput struct {
	Amount money.Money `json:"amount"`
	Reason string      `json:"reason"`
}

type GiftCardInput struct {
	Code string `json:"code"`
	// Amount defaults to everything the card can cover.
	Amount *money.Money `json:"amount,omitempty"`
}

// SelectionInput is what the operator switched on. A nil SelectedOffers means
// "use the automatic offers".
type SelectionInput struct {
	SelectedOffers  []string              `json:"selectedOffers"`
	ManualDiscounts []ManualDiscountInput `json:"manualDiscounts,omitempty"`
	GiftCard        *GiftCardInput        `json:"giftCard,omitempty"`
}

// ValidationContext gathers every read a validation or a preview depends on.
type ValidationContext struct {
	Reservation *reservation.Reservation
	Profile     loyalty.Profile
	Settings    loyalty.Settings
	Catalog     loyalty.CatalogOptions
	Available   []loyalty.Offer
}

type ContextLoader struct {
	settings *SettingsProvider
	window   loyalty.BirthdayWindow
}

func NewContextLoader(settings *SettingsProvider, window loyalty.BirthdayWindow) *ContextLoader {
	return &ContextLoader{settings: settings, window: window}
}

func (l *ContextLoader) Load(ctx context.Context, tx Tx, res *reservation.Reservation, today time.Time) (*ValidationContext, error) {
	profile, err := tx.Clients().LoyaltyProfile(ctx, res.ClientID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrClientNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	ledger, err := tx.Ledger().ListByClient(ctx, res.ClientID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	settings, err := l.settings.Load(ctx, tx.Settings())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	catalog := loyalty.CatalogOptions{
		BirthdayAlreadyIssued: loyalty.BirthdayIssuedWithin(ledger, today, l.window),
		Ledger:                ledger,
	}
	return &ValidationContext{
		Reservation: res,
		Profile:     *profile,
		Settings:    settings,
		Catalog:     catalog,
		Available:   loyalty.ComputeAvailable(*profile, settings, today, catalog),
	}, nil
}

// DefaultKeys lists the offers a fresh selection starts with.
func (vc *ValidationContext) DefaultKeys() []string {
	keys := []string{}
	for _, o := range loyalty.Automatic(vc.Available) {
		keys = append(keys, o.Key())
	}
	return keys
}

// BuildSelection turns operator input into a selection over the current catalog.
func BuildSelection(ctx context.Context, tx Tx, vc *ValidationContext, in SelectionInput, now time.Time) (*loyalty.Selection, error) {
	sel := loyalty.NewSelection(vc.Reservation.TotalPrice())

	if in.SelectedOffers == nil {
		sel.Preselect(vc.Available)
	} else {
		byKey := make(map[string]loyalty.Offer, len(vc.Available))
		for _, o := range vc.Available {
			byKey[o.Key()] = o
		}
		for _, key := range in.SelectedOffers {
			o, ok := byKey[key]
			if !ok {
				return nil, errs.Wrapf(ErrUnknownOffer, "%s", key)
			}
			if sel.Contains(key) {
				continue
			}
			if _, err := sel.Toggle(o); err != nil {
				return nil, err
			}
		}
	}

	for _, m := range in.ManualDiscounts {
		if _, err := sel.AddManual(m.Amount, m.Reason); err != nil {
			return nil, err
		}
	}

	if in.GiftCard != nil {
		card, err := FindRedeemableGiftCard(ctx, tx, in.GiftCard.Code, now)
		if err != nil {
			return nil, err
		}
		amount := card.Balance()
		if in.GiftCard.Amount != nil {
			amount = *in.GiftCard.Amount
		}
		if err := sel.SetGiftCard(card.ID(), card.Code().String(), card.Balance(), amount); err != nil {
			return nil, err
		}
	}

	return sel, nil
}

// FindRedeemableGiftCard fails with GiftCardInvalid for unknown, inactive, expired or empty cards.
func FindRedeemableGiftCard(ctx context.Context, tx Tx, rawCode string, now time.Time) (*giftcard.GiftCard, error) {
	code, err := giftcard.NewCode(strings.ToUpper(strings.TrimSpace(rawCode)))
	if err != nil {
		return nil, err
	}
	card, err := tx.GiftCards().FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(errs.Mark(err, errs.ErrGiftCardNotFound), errs.ErrGiftCardInvalid)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := card.Verify(now); err != nil {
		return nil, err
	}
	return card, nil
}

func LoadReservation(ctx context.Context, repo ReservationRepository, id uuid.UUID, forUpdate bool) (*reservation.Reservation, error) {
	find := repo.FindByID
	if forUpdate {
		find = repo.FindByIDForUpdate
	}
	res, err := find(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}
