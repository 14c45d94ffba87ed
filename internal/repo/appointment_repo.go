// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Appointment model.
//
// Functions:
//
//   - CreateAppointment(ctx, db, appt) -> *domain.Appointment, error
//     Inserts a new appointment row with UUID primary key and UTC timestamp.
//
//   - BookedTimes(ctx, db, date) -> []string, error
//     Returns the scheduled times ("HH:MM") of all non-cancelled
//     appointments on a date. This is the conflict set consumed by
//     schedule.FilterBooked.
//
//   - CountAppointments / ListAppointmentsPage
//     Paginated dashboard listing per client, newest first.
//
//   - CancelAppointment(ctx, db, id, clientID) -> error
//     Marks an appointment cancelled, enforcing client ownership.
//     Returns ErrNotFound when no row matches.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pestward/go-booking-backend/internal/domain"
)

// CreateAppointment inserts the given appointment. The ID is generated when
// absent and CreatedAt is set to UTC. The caller is responsible for having
// validated the service, date, and time; no uniqueness is enforced here, so
// a double submit really does create two rows.
func CreateAppointment(ctx context.Context, db *gorm.DB, appt domain.Appointment) (*domain.Appointment, error) {
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	if appt.Status == "" {
		appt.Status = domain.StatusScheduled
	}
	appt.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(&appt).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

// BookedTimes returns the "HH:MM" start times of every appointment on date
// whose status is not cancelled. Cancelled visits free their hour bucket.
func BookedTimes(ctx context.Context, db *gorm.DB, date string) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("scheduled_date = ? AND status <> ?", date, domain.StatusCancelled).
		Pluck("scheduled_time", &out).Error
	return out, err
}

// CountAppointments returns the total number of appointments owned by clientID.
func CountAppointments(ctx context.Context, db *gorm.DB, clientID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("client_id = ?", clientID).
		Count(&total).Error
	return total, err
}

// ListAppointmentsPage returns a page of the client's appointments ordered
// by scheduled date descending, then time descending. Use CountAppointments
// to obtain the total for pagination metadata.
func ListAppointmentsPage(ctx context.Context, db *gorm.DB, clientID string, offset, limit int) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("scheduled_date desc, scheduled_time desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CancelAppointment sets the status of an appointment to cancelled,
// enforcing client ownership and skipping rows that are already cancelled.
// If no rows are affected it returns gorm.ErrRecordNotFound.
func CancelAppointment(ctx context.Context, db *gorm.DB, id, clientID string) error {
	res := db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("id = ? AND client_id = ? AND status <> ?", id, clientID, domain.StatusCancelled).
		Update("status", domain.StatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
