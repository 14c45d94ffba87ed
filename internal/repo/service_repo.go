// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Service
// catalog.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a service is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pestward/go-booking-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ListActiveServices returns every active catalog entry ordered by name.
// Inactive services are reference data for old appointments and stay hidden.
func ListActiveServices(ctx context.Context, db *gorm.DB) ([]domain.Service, error) {
	var out []domain.Service
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("name asc").
		Find(&out).Error
	return out, err
}

// GetService fetches a single catalog entry by ID. If the record does not
// exist, it returns ErrNotFound.
func GetService(ctx context.Context, db *gorm.DB, id string) (*domain.Service, error) {
	var s domain.Service
	if err := db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// CountServices returns the number of catalog rows, including inactive ones.
// Used by startup seeding to decide whether the table needs populating.
func CountServices(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Service{}).Count(&total).Error
	return total, err
}

// CreateService inserts a catalog entry with a generated UUID and UTC
// timestamp. Only the seeding path writes services; the API never does.
func CreateService(ctx context.Context, db *gorm.DB, s domain.Service) (*domain.Service, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
