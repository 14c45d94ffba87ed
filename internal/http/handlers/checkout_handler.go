// Checkout HTTP handlers.
//
// Payment logic is a pass-through to Stripe Checkout: the API creates a
// session for a known plan and hands the redirect URL back to the client.
// Card data never touches this service.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pestward/go-booking-backend/internal/http/middleware"
	"github.com/pestward/go-booking-backend/internal/payments"
	"github.com/pestward/go-booking-backend/internal/services"
)

// CreateCheckoutRequest is the JSON payload for opening a checkout session.
type CreateCheckoutRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// CheckoutSessionResponse returns the Stripe session handle.
type CheckoutSessionResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// ListPlansResponse wraps the available payment plans.
type ListPlansResponse struct {
	Plans []payments.Plan `json:"plans"`
}

// ListPlans returns the purchasable service plans.
func (h *Handlers) ListPlans(c *gin.Context) {
	ok(c, http.StatusOK, ListPlansResponse{Plans: h.checkoutSvc.ListPlans()})
}

// CreateCheckoutSession opens a Stripe Checkout session for the current
// client and returns the redirect URL.
func (h *Handlers) CreateCheckoutSession(c *gin.Context) {
	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	sess, err := h.checkoutSvc.CreateSession(c.Request.Context(), middleware.ClientID(c), req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthenticated):
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		case errors.Is(err, services.ErrUnknownPlan):
			fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "unknown plan")
		default:
			fail(c, http.StatusBadGateway, ErrCodeCheckoutFailed, "could not create checkout session")
		}
		return
	}

	middleware.CheckoutSessions.WithLabelValues(req.Plan).Inc()
	ok(c, http.StatusCreated, CheckoutSessionResponse{SessionID: sess.ID, URL: sess.URL})
}
