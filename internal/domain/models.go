// Package domain defines the persistence models for the booking backend:
// the service catalog, appointments, verification codes, user roles, and
// the audit trail. These types are mapped with GORM and form the core data
// layer of the application.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Appointment statuses. Only StatusScheduled is written by the booking flow;
// the remaining values exist because the dashboard reads and renders them.
const (
	StatusScheduled   = "scheduled"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
)

// Verification-code purposes. The purpose determines the code expiry and,
// for admin creation, an additional issuance policy (at most one admin ever).
const (
	PurposeEmailVerification = "email_verification"
	PurposeAdminCreation     = "admin_creation"
)

// RoleAdmin is the single privileged role this backend knows about.
const RoleAdmin = "admin"

// Service is an entry in the company's service catalog (e.g. "Termite
// Inspection"). It is immutable reference data: the API only reads it.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name / Description: display data for the website.
//   - DurationMinutes: appointment length used by the slot generator.
//   - PriceCents: integer price to avoid float money.
//   - Active: inactive services are hidden from the catalog and cannot be booked.
type Service struct {
	ID              string         `json:"id"               gorm:"type:char(36);primaryKey"`
	Name            string         `json:"name"             gorm:"type:varchar(120);not null"`
	Description     string         `json:"description"      gorm:"type:text"`
	DurationMinutes int            `json:"duration_minutes" gorm:"not null"`
	PriceCents      int64          `json:"price_cents"      gorm:"not null"`
	Active          bool           `json:"active"           gorm:"not null;default:true;index"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-"                gorm:"index"`
}

// TableName returns the database table name for Service.
func (Service) TableName() string { return "services" }

// Appointment is a booked visit. It is created by the booking flow with
// status "scheduled"; later status transitions happen in the back office.
//
// ScheduledDate is stored as "YYYY-MM-DD" and ScheduledTime as "HH:MM" to
// match the slot values the availability generator hands out. TechnicianID
// is assigned later by dispatch and is nullable here.
type Appointment struct {
	ID            string         `json:"id"             gorm:"type:char(36);primaryKey"`
	ClientID      string         `json:"client_id"      gorm:"type:varchar(64);not null;index:idx_client_appts"`
	ServiceID     string         `json:"service_id"     gorm:"type:char(36);not null;index"`
	ScheduledDate string         `json:"scheduled_date" gorm:"type:char(10);not null;index:idx_appt_date"`
	ScheduledTime string         `json:"scheduled_time" gorm:"type:char(5);not null"`
	Status        string         `json:"status"         gorm:"type:varchar(16);not null;default:'scheduled';check:status IN ('scheduled','completed','cancelled','rescheduled')"`
	Notes         string         `json:"notes,omitempty" gorm:"type:text"`
	TechnicianID  *string        `json:"technician_id,omitempty" gorm:"type:varchar(64)"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-"              gorm:"index"`

	// Service is the booked catalog entry. Kept for eager loads on the
	// dashboard listing; not required by the booking path itself.
	Service Service `json:"-" gorm:"foreignKey:ServiceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Appointment.
func (Appointment) TableName() string { return "appointments" }

// VerificationCode is a one-time numeric code mailed to a user. A code is
// redeemable iff UsedAt is nil and the current time is before ExpiresAt;
// redemption marks UsedAt exactly once.
type VerificationCode struct {
	ID        string     `json:"id"         gorm:"type:char(36);primaryKey"`
	Email     string     `json:"email"      gorm:"type:varchar(255);not null;index:idx_codes_email"`
	Code      string     `json:"-"          gorm:"type:char(6);not null"`
	Purpose   string     `json:"purpose"    gorm:"type:varchar(32);not null;index:idx_codes_email"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName returns the database table name for VerificationCode.
func (VerificationCode) TableName() string { return "verification_codes" }

// Redeemable reports whether the code is still valid at the given instant.
func (v *VerificationCode) Redeemable(now time.Time) bool {
	return v.UsedAt == nil && now.Before(v.ExpiresAt)
}

// UserRole grants a role to a user. The backend only ever writes the
// "admin" role (via the admin-creation redemption path) and only ever
// queries for its existence.
type UserRole struct {
	ID        string    `json:"id"      gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_user_role,priority:1"`
	Role      string    `json:"role"    gorm:"type:varchar(32);not null;uniqueIndex:ux_user_role,priority:2;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for UserRole.
func (UserRole) TableName() string { return "user_roles" }

// AuditLog is an insert-only event trail row. Writes to this table must
// never fail the operation that produced them.
type AuditLog struct {
	ID        string    `json:"id"       gorm:"type:char(36);primaryKey"`
	ActorID   string    `json:"actor_id" gorm:"type:varchar(64);not null;index"`
	Action    string    `json:"action"   gorm:"type:varchar(64);not null"`
	Detail    string    `json:"detail"   gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for AuditLog.
func (AuditLog) TableName() string { return "audit_logs" }

// AdminAuditLog mirrors AuditLog for privileged actions. Kept as a separate
// table so admin events survive routine audit-log pruning.
type AdminAuditLog struct {
	ID        string    `json:"id"       gorm:"type:char(36);primaryKey"`
	ActorID   string    `json:"actor_id" gorm:"type:varchar(64);not null;index"`
	Action    string    `json:"action"   gorm:"type:varchar(64);not null"`
	Detail    string    `json:"detail"   gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for AdminAuditLog.
func (AdminAuditLog) TableName() string { return "admin_audit_logs" }
