// Package services – CheckoutService
//
// Checkout is a pass-through: the service validates the plan key against
// the fixed billing catalog and asks the payment processor for a hosted
// session. No money logic lives here.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pestward/go-booking-backend/internal/payments"
)

// CheckoutService creates payment sessions for catalog plans.
type CheckoutService struct {
	// Plans is the fixed billing catalog.
	Plans []payments.Plan
	// Client talks to the processor.
	Client payments.Checkout
}

// NewCheckoutService constructs a CheckoutService over the default plans.
func NewCheckoutService(client payments.Checkout) *CheckoutService {
	return &CheckoutService{Plans: payments.DefaultPlans(), Client: client}
}

// ListPlans returns the billing catalog.
func (s *CheckoutService) ListPlans() []payments.Plan {
	return s.Plans
}

// CreateSession builds a processor session for the named plan. It requires
// an authenticated client and a known plan key.
func (s *CheckoutService) CreateSession(ctx context.Context, clientID, planKey string) (*payments.Session, error) {
	tr := otel.Tracer("services/CheckoutService")
	ctx, span := tr.Start(ctx, "CreateSession",
		trace.WithAttributes(attribute.String("plan.key", planKey)),
	)
	defer span.End()

	if clientID == "" {
		return nil, ErrUnauthenticated
	}
	for _, p := range s.Plans {
		if p.Key == planKey {
			return s.Client.CreateSession(ctx, p, clientID)
		}
	}
	return nil, ErrUnknownPlan
}
