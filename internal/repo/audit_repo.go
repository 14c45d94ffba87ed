// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the insert-only audit trail.
//
// Audit inserts return their error so the caller can log it, but by
// contract no caller may let an audit failure fail the primary operation.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pestward/go-booking-backend/internal/domain"
)

// InsertAudit appends a row to audit_logs.
func InsertAudit(ctx context.Context, db *gorm.DB, actorID, action, detail string) error {
	rec := &domain.AuditLog{
		ID:        uuid.NewString(),
		ActorID:   actorID,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).Create(rec).Error
}

// InsertAdminAudit appends a row to admin_audit_logs.
func InsertAdminAudit(ctx context.Context, db *gorm.DB, actorID, action, detail string) error {
	rec := &domain.AdminAuditLog{
		ID:        uuid.NewString(),
		ActorID:   actorID,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).Create(rec).Error
}
