package payment

import (
	"context"
	"fmt"

	"salon-backoffice/internal/pkg/config"
	"salon-backoffice/internal/pkg/errs"
	"salon-backoffice/internal/usecase/shared"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// CheckoutSessionNewer is the subset of the Stripe client used to open a checkout session.
type CheckoutSessionNewer interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type StripeLinkProvider struct {
	sessions CheckoutSessionNewer
	cfg      config.StripeConfig
}

func NewStripeClient(cfg config.StripeConfig) *client.API {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)
	return sc
}

func NewStripeLinkProvider(sc *client.API, cfg config.StripeConfig) *StripeLinkProvider {
	return &StripeLinkProvider{sessions: sc.CheckoutSessions, cfg: cfg}
}

func NewStripeLinkProviderWith(sessions CheckoutSessionNewer, cfg config.StripeConfig) *StripeLinkProvider {
	return &StripeLinkProvider{sessions: sessions, cfg: cfg}
}

func (p *StripeLinkProvider) CreateLink(ctx context.Context, req shared.LinkRequest) (*shared.PaymentLink, error) {
	if !req.Amount.IsPositive() {
		return nil, errs.Mark(errs.New("payment link amount must be positive"), errs.ErrInvalidInput)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(p.cfg.SuccessURL),
		CancelURL:         stripe.String(p.cfg.CancelURL),
		ClientReferenceID: stripe.String(req.ReservationID.String()),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.cfg.Currency),
					UnitAmount: stripe.Int64(req.Amount.Cents()),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("reservation_id", req.ReservationID.String())
	if req.InvoiceNumber != "" {
		params.AddMetadata("invoice_number", req.InvoiceNumber)
	}

	session, err := p.sessions.New(params)
	if err != nil {
		return nil, errs.Mark(fmt.Errorf("failed to create checkout session: %w", err), errs.ErrPaymentLinkFailed)
	}

	return &shared.PaymentLink{ID: session.ID, URL: session.URL}, nil
}
