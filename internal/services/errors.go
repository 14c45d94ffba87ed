// Package services defines the business logic for booking, verification,
// the service catalog, the assistant, and checkout. This file centralizes
// common service-level error values so that they can be consistently
// returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed
// at the handler layer.
package services

import "errors"

// Precondition / validation errors.
var (
	// ErrUnauthenticated is returned when an operation that requires an
	// authenticated actor is attempted without one. This is a fatal
	// precondition for booking and checkout, never a silent fallback.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidDate is returned when a date is not a valid YYYY-MM-DD value.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidTime is returned when a time is not a valid HH:MM value.
	ErrInvalidTime = errors.New("invalid time")

	// ErrInvalidEmail is returned when an email address is blank or malformed.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidPurpose is returned for verification purposes outside the
	// known set.
	ErrInvalidPurpose = errors.New("invalid verification purpose")

	// ErrEmptyMessage is returned when the assistant receives a blank message.
	ErrEmptyMessage = errors.New("message is empty")
)

// Business-rule refusals.
var (
	// ErrServiceNotFound indicates the requested catalog entry does not
	// exist or is inactive.
	ErrServiceNotFound = errors.New("service not found")

	// ErrAppointmentNotFound indicates the appointment does not exist or is
	// not accessible to the current client.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidCode is the single answer for every failed redemption:
	// wrong code, wrong purpose, already used, or expired. The cases are
	// deliberately indistinguishable to the caller.
	ErrInvalidCode = errors.New("invalid or expired code")

	// ErrAdminExists is returned when admin-creation issuance is refused
	// because an admin account already exists. At most one admin is ever
	// created through this path.
	ErrAdminExists = errors.New("an admin account already exists")

	// ErrUnknownPlan is returned for checkout requests naming a plan that
	// is not in the billing catalog.
	ErrUnknownPlan = errors.New("unknown billing plan")
)

// Remote I/O failures surfaced with stable user-facing wording.
var (
	// ErrSlotsUnavailable is surfaced when the booked-times fetch fails.
	// The caller must present no times rather than guess.
	ErrSlotsUnavailable = errors.New("failed to load available time slots")

	// ErrCodeDelivery is returned when the email hand-off fails after the
	// code was persisted.
	ErrCodeDelivery = errors.New("failed to send verification email")
)
