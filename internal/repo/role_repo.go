// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for user roles.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pestward/go-booking-backend/internal/domain"
)

// AdminExists reports whether any user already holds the admin role. The
// admin-creation flow refuses to issue a code when this returns true.
func AdminExists(ctx context.Context, db *gorm.DB) (bool, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.UserRole{}).
		Where("role = ?", domain.RoleAdmin).
		Count(&total).Error
	return total > 0, err
}

// CreateRole grants role to userID. The unique index on (user_id, role)
// turns a duplicate grant into a DB error, which the caller surfaces.
func CreateRole(ctx context.Context, db *gorm.DB, userID, role string) (*domain.UserRole, error) {
	rec := &domain.UserRole{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}
