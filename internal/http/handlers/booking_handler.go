// Appointment HTTP handlers.
//
// This file exposes REST endpoints for the booking flow:
//   - GET    /appointments/slots  (availability for a date + service)
//   - POST   /appointments        (book)
//   - GET    /appointments        (list own, paginated)
//   - DELETE /appointments/{id}   (cancel own)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pestward/go-booking-backend/internal/domain"
	"github.com/pestward/go-booking-backend/internal/http/middleware"
	"github.com/pestward/go-booking-backend/internal/payments"
	"github.com/pestward/go-booking-backend/internal/schedule"
	"github.com/pestward/go-booking-backend/internal/services"
	"github.com/pestward/go-booking-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// BookingService defines the appointment operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type BookingService interface {
	// AvailableSlots returns the open slots for a date and service.
	AvailableSlots(ctx context.Context, date, serviceID string) ([]schedule.Slot, error)
	// Book creates a scheduled appointment for clientID.
	Book(ctx context.Context, clientID, serviceID, date, timeOfDay, notes string) (*domain.Appointment, error)
	// ListPage returns a page of the client's appointments and the total count.
	ListPage(ctx context.Context, clientID string, page, pageSize int) ([]domain.Appointment, int64, error)
	// Cancel marks an appointment owned by clientID as cancelled.
	Cancel(ctx context.Context, clientID, id string) error
}

// CatalogService lists the bookable service catalog.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Service, error)
}

// VerificationService covers the verification-code lifecycle.
type VerificationService interface {
	Issue(ctx context.Context, email, purpose string) error
	Redeem(ctx context.Context, email, code, purpose string) error
	RedeemAdminCreation(ctx context.Context, email, code, userID string) error
}

// AssistantService answers customer questions with canned replies.
type AssistantService interface {
	Reply(ctx context.Context, message string) (string, float64, error)
}

// CheckoutService creates Stripe checkout sessions for service plans.
type CheckoutService interface {
	ListPlans() []payments.Plan
	CreateSession(ctx context.Context, clientID, planKey string) (*payments.Session, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for bookings, the catalog, verification,
// the assistant, and checkout. It depends on abstract service interfaces to
// keep transport concerns separate from business logic.
type Handlers struct {
	bookingSvc  BookingService
	catalogSvc  CatalogService
	verifySvc   VerificationService
	assistSvc   AssistantService
	checkoutSvc CheckoutService
}

// New constructs a Handlers instance bound to the given services.
func New(booking BookingService, catalog CatalogService, verify VerificationService, assist AssistantService, checkout CheckoutService) *Handlers {
	return &Handlers{
		bookingSvc:  booking,
		catalogSvc:  catalog,
		verifySvc:   verify,
		assistSvc:   assist,
		checkoutSvc: checkout,
	}
}

//
// DTOs
//

// BookAppointmentRequest is the JSON payload for booking an appointment.
type BookAppointmentRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// SlotsResponse wraps the available slots for a date and service.
type SlotsResponse struct {
	Date  string          `json:"date"`
	Slots []schedule.Slot `json:"slots"`
}

// ListAppointmentsResponse wraps a page of appointments.
type ListAppointmentsResponse struct {
	Appointments []domain.Appointment `json:"appointments"`
	Pagination   Pagination           `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

//
// Handlers
//

// GetSlots returns the available time slots for a date and service.
func (h *Handlers) GetSlots(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	serviceID := strings.TrimSpace(c.Query("service_id"))
	if date == "" || serviceID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date and service_id are required")
		return
	}

	slots, err := h.bookingSvc.AvailableSlots(c.Request.Context(), date, serviceID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDate):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date must be YYYY-MM-DD")
		case errors.Is(err, services.ErrServiceNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "service not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeSlotsFailed, services.ErrSlotsUnavailable.Error())
		}
		return
	}
	ok(c, http.StatusOK, SlotsResponse{Date: date, Slots: slots})
}

// BookAppointment books a new appointment for the current client.
func (h *Handlers) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	appt, err := h.bookingSvc.Book(c.Request.Context(), middleware.ClientID(c),
		req.ServiceID, strings.TrimSpace(req.Date), strings.TrimSpace(req.Time), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthenticated):
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		case errors.Is(err, services.ErrInvalidDate):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date must be YYYY-MM-DD")
		case errors.Is(err, services.ErrInvalidTime):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "time must be HH:MM")
		case errors.Is(err, services.ErrServiceNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "service not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not book appointment")
		}
		return
	}

	middleware.AppointmentEvents.WithLabelValues("created").Inc()
	ok(c, http.StatusCreated, appt)
}

// ListAppointments returns a page of the current client's appointments.
func (h *Handlers) ListAppointments(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.bookingSvc.ListPage(c.Request.Context(), middleware.ClientID(c), page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrUnauthenticated) {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list appointments")
		return
	}

	totalPages := utils.TotalPages(total, pageSize)
	ok(c, http.StatusOK, ListAppointmentsResponse{
		Appointments: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// CancelAppointment cancels an appointment owned by the current client.
func (h *Handlers) CancelAppointment(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "appointment id must be a UUID")
		return
	}

	if err := h.bookingSvc.Cancel(c.Request.Context(), middleware.ClientID(c), id); err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthenticated):
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		case errors.Is(err, services.ErrAppointmentNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "appointment not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not cancel appointment")
		}
		return
	}

	middleware.AppointmentEvents.WithLabelValues("cancelled").Inc()
	noContent(c)
}
