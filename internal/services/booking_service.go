// Package services – BookingService
//
// This file implements BookingService, the application-level component
// behind the scheduling widget. It computes slot availability for a date
// and service, creates appointments for authenticated clients, and serves
// the dashboard's paginated appointment list. Availability itself is pure
// (internal/schedule); this service supplies the booked-times conflict set
// from storage and enforces the flow's preconditions.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// the client id, service id, and date.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pestward/go-booking-backend/internal/domain"
	"github.com/pestward/go-booking-backend/internal/schedule"
)

// BookingRepo defines the repository contract required by BookingService.
type BookingRepo interface {
	// GetService fetches a catalog entry by ID.
	GetService(ctx context.Context, db *gorm.DB, id string) (*domain.Service, error)

	// BookedTimes returns the "HH:MM" times of non-cancelled appointments
	// on a date.
	BookedTimes(ctx context.Context, db *gorm.DB, date string) ([]string, error)

	// CreateAppointment inserts a new appointment row.
	CreateAppointment(ctx context.Context, db *gorm.DB, appt domain.Appointment) (*domain.Appointment, error)

	// CountAppointments returns the client's total for pagination.
	CountAppointments(ctx context.Context, db *gorm.DB, clientID string) (int64, error)

	// ListAppointmentsPage returns a page of the client's appointments.
	ListAppointmentsPage(ctx context.Context, db *gorm.DB, clientID string, offset, limit int) ([]domain.Appointment, error)

	// CancelAppointment marks an appointment cancelled, enforcing ownership.
	CancelAppointment(ctx context.Context, db *gorm.DB, id, clientID string) error

	// InsertAudit appends to the event trail. Failures are logged, never
	// propagated.
	InsertAudit(ctx context.Context, db *gorm.DB, actorID, action, detail string) error
}

// BookingService coordinates availability computation and appointment
// creation. There is no idempotency guard on Book: two identical submits
// create two rows, exactly as the widget has always behaved.
type BookingService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the booking repository used by this service.
	Repo BookingRepo
	// Hours is the company's weekly business-hours table.
	Hours schedule.WeekHours
}

// NewBookingService constructs a BookingService with the default business hours.
func NewBookingService(db *gorm.DB, r BookingRepo) *BookingService {
	return &BookingService{DB: db, Repo: r, Hours: schedule.DefaultWeekHours()}
}

// AvailableSlots returns the open slots for a date and service, earliest
// first. The service must exist and be active; a failed booked-times fetch
// surfaces ErrSlotsUnavailable and no times at all.
func (s *BookingService) AvailableSlots(ctx context.Context, date, serviceID string) ([]schedule.Slot, error) {
	tr := otel.Tracer("services/BookingService")
	ctx, span := tr.Start(ctx, "AvailableSlots",
		trace.WithAttributes(
			attribute.String("booking.date", date),
			attribute.String("service.id", serviceID),
		),
	)
	defer span.End()

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	svc, err := s.Repo.GetService(ctx, s.DB, serviceID)
	if err != nil || !svc.Active {
		return nil, ErrServiceNotFound
	}

	candidates := schedule.Slots(day, svc.DurationMinutes, s.Hours)
	if len(candidates) == 0 {
		return candidates, nil
	}

	booked, err := s.Repo.BookedTimes(ctx, s.DB, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSlotsUnavailable, err)
	}
	return schedule.FilterBooked(candidates, booked), nil
}

// Book creates a scheduled appointment for the authenticated client and
// returns the persisted record so the caller can render its confirmation.
// An absent client identity is a fatal precondition failure.
func (s *BookingService) Book(ctx context.Context, clientID, serviceID, date, timeOfDay, notes string) (*domain.Appointment, error) {
	tr := otel.Tracer("services/BookingService")
	ctx, span := tr.Start(ctx, "Book",
		trace.WithAttributes(
			attribute.String("client.id", clientID),
			attribute.String("service.id", serviceID),
			attribute.String("booking.date", date),
		),
	)
	defer span.End()

	if clientID == "" {
		return nil, ErrUnauthenticated
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return nil, ErrInvalidTime
	}
	svc, err := s.Repo.GetService(ctx, s.DB, serviceID)
	if err != nil || !svc.Active {
		return nil, ErrServiceNotFound
	}

	appt, err := s.Repo.CreateAppointment(ctx, s.DB, domain.Appointment{
		ClientID:      clientID,
		ServiceID:     svc.ID,
		ScheduledDate: date,
		ScheduledTime: timeOfDay,
		Status:        domain.StatusScheduled,
		Notes:         notes,
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, clientID, "appointment.created", fmt.Sprintf("%s %s %s", svc.Name, date, timeOfDay))
	return appt, nil
}

// ListPage returns a page of the client's appointments and the total count.
// It applies defaults for invalid page/pageSize.
func (s *BookingService) ListPage(ctx context.Context, clientID string, page, pageSize int) ([]domain.Appointment, int64, error) {
	if clientID == "" {
		return nil, 0, ErrUnauthenticated
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountAppointments(ctx, s.DB, clientID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Appointment{}, 0, nil
	}

	items, err := s.Repo.ListAppointmentsPage(ctx, s.DB, clientID, offset, pageSize)
	return items, total, err
}

// Cancel marks the client's appointment cancelled, freeing its hour bucket
// for new bookings.
func (s *BookingService) Cancel(ctx context.Context, clientID, appointmentID string) error {
	if clientID == "" {
		return ErrUnauthenticated
	}
	if err := s.Repo.CancelAppointment(ctx, s.DB, appointmentID, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}
	s.audit(ctx, clientID, "appointment.cancelled", appointmentID)
	return nil
}

// audit writes an event-trail row. Failures go to the diagnostic log only;
// they never block the primary operation.
func (s *BookingService) audit(ctx context.Context, actorID, action, detail string) {
	if err := s.Repo.InsertAudit(ctx, s.DB, actorID, action, detail); err != nil {
		log.Error().Err(err).Str("action", action).Msg("audit insert failed")
	}
}
