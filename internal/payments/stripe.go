// Package payments is the pass-through to the payment processor. It owns a
// fixed catalog of billable plans and creates Stripe Checkout sessions for
// them; every other billing concern (cards, invoices, disputes) stays
// inside Stripe.
package payments

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// Plan is a named billable offering with its price in cents. Interval is
// empty for one-time charges, or "month"/"year" for subscriptions.
type Plan struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Interval   string `json:"interval,omitempty"`
}

// DefaultPlans is the company's billing catalog. Prices are maintained
// here, not in Stripe, so the website and the processor cannot drift.
func DefaultPlans() []Plan {
	return []Plan{
		{Key: "one-time-treatment", Name: "One-Time Treatment", PriceCents: 19900},
		{Key: "quarterly-plan", Name: "Quarterly Protection Plan", PriceCents: 12900, Interval: "month"},
		{Key: "annual-plan", Name: "Annual Protection Plan", PriceCents: 99900, Interval: "year"},
	}
}

// Session is the caller-facing result of a checkout creation: the session
// identifier and the hosted payment page to redirect to.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Checkout creates payment sessions. The concrete implementation talks to
// Stripe; tests substitute a stub.
type Checkout interface {
	CreateSession(ctx context.Context, plan Plan, clientID string) (*Session, error)
}

// StripeCheckout implements Checkout against the Stripe API.
type StripeCheckout struct {
	successURL string
	cancelURL  string
	currency   string
}

// NewStripeCheckout configures the Stripe client. apiKey is the secret key;
// successURL and cancelURL are where Stripe redirects the browser after
// payment.
func NewStripeCheckout(apiKey, successURL, cancelURL string) *StripeCheckout {
	stripe.Key = apiKey
	return &StripeCheckout{
		successURL: successURL,
		cancelURL:  cancelURL,
		currency:   string(stripe.CurrencyUSD),
	}
}

// CreateSession builds a Checkout session for the plan. One-time plans use
// payment mode; plans with an interval become subscriptions. The client ID
// rides along as a reference so webhooks can attribute the payment.
func (s *StripeCheckout) CreateSession(ctx context.Context, plan Plan, clientID string) (*Session, error) {
	priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency:   stripe.String(s.currency),
		UnitAmount: stripe.Int64(plan.PriceCents),
		ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(plan.Name),
		},
	}
	mode := stripe.CheckoutSessionModePayment
	if plan.Interval != "" {
		mode = stripe.CheckoutSessionModeSubscription
		priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripe.String(plan.Interval),
		}
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(mode)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: priceData,
			Quantity:  stripe.Int64(1),
		}},
		SuccessURL:        stripe.String(s.successURL),
		CancelURL:         stripe.String(s.cancelURL),
		ClientReferenceID: stripe.String(clientID),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout: %w", err)
	}
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}
