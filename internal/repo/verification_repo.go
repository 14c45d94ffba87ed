// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for one-time
// verification codes.
//
// The redemption guard lives in MarkCodeUsed: the UPDATE carries a
// "used_at IS NULL" predicate and the caller checks rows-affected, so two
// racing redemptions of the same row cannot both succeed on one database.
// There is no cross-table transaction around redeem-and-grant; that
// remains best effort.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pestward/go-booking-backend/internal/domain"
)

// CreateCode inserts a verification code row with a generated UUID and UTC
// timestamp, returning the persisted record.
func CreateCode(ctx context.Context, db *gorm.DB, email, code, purpose string, expiresAt time.Time) (*domain.VerificationCode, error) {
	rec := &domain.VerificationCode{
		ID:        uuid.NewString(),
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// FindRedeemableCode looks up an unused, unexpired code matching
// email+code+purpose at instant now. A miss of any kind (wrong code, wrong
// purpose, already used, expired) uniformly returns
// gorm.ErrRecordNotFound; the service layer deliberately does not
// distinguish these cases.
func FindRedeemableCode(ctx context.Context, db *gorm.DB, email, code, purpose string, now time.Time) (*domain.VerificationCode, error) {
	var rec domain.VerificationCode
	err := db.WithContext(ctx).
		Where("email = ? AND code = ? AND purpose = ? AND used_at IS NULL AND expires_at > ?",
			email, code, purpose, now).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// MarkCodeUsed stamps used_at on the code row, but only if it is still
// unused. Returns gorm.ErrRecordNotFound when the row was consumed (or
// removed) in the meantime.
func MarkCodeUsed(ctx context.Context, db *gorm.DB, id string, now time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.VerificationCode{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
