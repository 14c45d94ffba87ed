// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes the symbolic error codes that handlers map to HTTP
// responses via the fail() helper. Codes are lowercase snake_case; generic
// codes mirror HTTP status semantics, domain-specific codes cover business
// refusals that the status alone cannot convey. Every error response carries
// both an HTTP status and one of these codes:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "invalid_code",
//	  "message": "invalid or expired code"
//	}
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeValidation   = "validation_failed"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeInvalidCode    = "invalid_code"
	ErrCodeSlotsFailed    = "slots_failed"
	ErrCodeDeliveryFailed = "delivery_failed"
	ErrCodeCheckoutFailed = "checkout_failed"
	ErrCodeListFailed     = "list_failed"
	ErrCodeCreateFailed   = "create_failed"
)
