package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pestward/go-booking-backend/internal/payments"
)

type fakeCheckout struct {
	plan     payments.Plan
	clientID string
	out      *payments.Session
	err      error
	calls    int
}

func (c *fakeCheckout) CreateSession(ctx context.Context, plan payments.Plan, clientID string) (*payments.Session, error) {
	c.calls++
	c.plan, c.clientID = plan, clientID
	return c.out, c.err
}

func TestCreateSession_Preconditions(t *testing.T) {
	client := &fakeCheckout{}
	s := NewCheckoutService(client)
	ctx := context.Background()

	if _, err := s.CreateSession(ctx, "", "one-time-treatment"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous checkout: err = %v", err)
	}
	if _, err := s.CreateSession(ctx, "c1", "gold-plated-plan"); !errors.Is(err, ErrUnknownPlan) {
		t.Fatalf("unknown plan: err = %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("processor must not be called on refusal")
	}
}

func TestCreateSession_PassThrough(t *testing.T) {
	client := &fakeCheckout{out: &payments.Session{ID: "cs_123", URL: "https://checkout.test/cs_123"}}
	s := NewCheckoutService(client)

	sess, err := s.CreateSession(context.Background(), "c1", "quarterly-plan")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.ID != "cs_123" || sess.URL == "" {
		t.Fatalf("session = %+v", sess)
	}
	if client.plan.Key != "quarterly-plan" || client.clientID != "c1" {
		t.Fatalf("processor got plan=%q client=%q", client.plan.Key, client.clientID)
	}
}

func TestListPlans_DefaultCatalog(t *testing.T) {
	s := NewCheckoutService(&fakeCheckout{})
	plans := s.ListPlans()
	if len(plans) == 0 {
		t.Fatalf("expected a non-empty plan catalog")
	}
	seen := map[string]bool{}
	for _, p := range plans {
		if p.Key == "" || p.Name == "" || p.PriceCents <= 0 {
			t.Fatalf("bad plan: %+v", p)
		}
		if seen[p.Key] {
			t.Fatalf("duplicate plan key %q", p.Key)
		}
		seen[p.Key] = true
	}
}
