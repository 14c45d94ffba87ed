// Verification-code HTTP handlers.
//
// Issue sends a single-use code to an email address; Redeem consumes it.
// Redeeming an admin-creation code additionally grants the admin role to the
// authenticated caller. Both endpoints sit behind the fixed-window attempt
// limiter, which is installed at the router.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pestward/go-booking-backend/internal/domain"
	"github.com/pestward/go-booking-backend/internal/http/middleware"
	"github.com/pestward/go-booking-backend/internal/services"
)

// IssueCodeRequest is the JSON payload for requesting a verification code.
type IssueCodeRequest struct {
	Email   string `json:"email" binding:"required"`
	Purpose string `json:"purpose" binding:"required"`
}

// RedeemCodeRequest is the JSON payload for redeeming a verification code.
type RedeemCodeRequest struct {
	Email   string `json:"email" binding:"required"`
	Code    string `json:"code" binding:"required"`
	Purpose string `json:"purpose" binding:"required"`
}

// IssueCode issues a verification code and emails it to the recipient.
//
// The response is 202 regardless of eventual delivery timing; a failed
// delivery surfaces as 502 so the caller knows to retry.
func (h *Handlers) IssueCode(c *gin.Context) {
	var req IssueCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.verifySvc.Issue(c.Request.Context(), req.Email, req.Purpose); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			middleware.VerificationEvents.WithLabelValues("issue", "rejected").Inc()
			fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "a valid email is required")
		case errors.Is(err, services.ErrInvalidPurpose):
			middleware.VerificationEvents.WithLabelValues("issue", "rejected").Inc()
			fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "unknown verification purpose")
		case errors.Is(err, services.ErrAdminExists):
			middleware.VerificationEvents.WithLabelValues("issue", "rejected").Inc()
			fail(c, http.StatusConflict, ErrCodeConflict, "an administrator already exists")
		case errors.Is(err, services.ErrCodeDelivery):
			middleware.VerificationEvents.WithLabelValues("issue", "error").Inc()
			fail(c, http.StatusBadGateway, ErrCodeDeliveryFailed, "could not deliver verification code")
		default:
			middleware.VerificationEvents.WithLabelValues("issue", "error").Inc()
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not issue verification code")
		}
		return
	}

	middleware.VerificationEvents.WithLabelValues("issue", "ok").Inc()
	c.Status(http.StatusAccepted)
}

// RedeemCode redeems a verification code.
//
// Admin-creation codes require an authenticated caller and grant the admin
// role on success. Invalid, expired, and already-used codes all produce the
// same response so callers cannot probe which codes exist.
func (h *Handlers) RedeemCode(c *gin.Context) {
	var req RedeemCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	var err error
	if req.Purpose == domain.PurposeAdminCreation {
		err = h.verifySvc.RedeemAdminCreation(c.Request.Context(), req.Email, req.Code, middleware.ClientID(c))
	} else {
		err = h.verifySvc.Redeem(c.Request.Context(), req.Email, req.Code, req.Purpose)
	}
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthenticated):
			middleware.VerificationEvents.WithLabelValues("redeem", "rejected").Inc()
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		case errors.Is(err, services.ErrInvalidCode):
			middleware.VerificationEvents.WithLabelValues("redeem", "rejected").Inc()
			fail(c, http.StatusUnprocessableEntity, ErrCodeInvalidCode, services.ErrInvalidCode.Error())
		default:
			middleware.VerificationEvents.WithLabelValues("redeem", "error").Inc()
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not redeem verification code")
		}
		return
	}

	middleware.VerificationEvents.WithLabelValues("redeem", "ok").Inc()
	noContent(c)
}
