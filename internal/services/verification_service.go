// Package services – VerificationService
//
// This file implements the one-time verification code lifecycle: issuing a
// 6-digit code (persist, then hand to the mailer) and redeeming it exactly
// once. Two purposes exist: plain email verification (5-minute expiry) and
// privileged admin creation (30-minute expiry), which additionally refuses
// issuance once any admin account exists.
//
// The 6-digit decimal space is small; the digits come from crypto/rand,
// but redemption has no attempt ceiling of its own beyond the HTTP
// fixed-window limiter. See DESIGN.md for the open question on intended
// brute-force resistance.
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pestward/go-booking-backend/internal/domain"
	"github.com/pestward/go-booking-backend/internal/mail"
)

// Code expiries per purpose.
const (
	emailVerificationTTL = 5 * time.Minute
	adminCreationTTL     = 30 * time.Minute
	codeLength           = 6
)

// VerificationRepo defines the repository contract required by
// VerificationService.
type VerificationRepo interface {
	// CreateCode persists a new code row.
	CreateCode(ctx context.Context, db *gorm.DB, email, code, purpose string, expiresAt time.Time) (*domain.VerificationCode, error)

	// FindRedeemableCode returns the matching unused, unexpired code or
	// gorm.ErrRecordNotFound.
	FindRedeemableCode(ctx context.Context, db *gorm.DB, email, code, purpose string, now time.Time) (*domain.VerificationCode, error)

	// MarkCodeUsed stamps used_at if the row is still unused.
	MarkCodeUsed(ctx context.Context, db *gorm.DB, id string, now time.Time) error

	// AdminExists reports whether any admin role row exists.
	AdminExists(ctx context.Context, db *gorm.DB) (bool, error)

	// CreateRole grants a role to a user.
	CreateRole(ctx context.Context, db *gorm.DB, userID, role string) (*domain.UserRole, error)

	// InsertAdminAudit appends to the privileged event trail.
	InsertAdminAudit(ctx context.Context, db *gorm.DB, actorID, action, detail string) error
}

// VerificationService owns the issue/redeem lifecycle.
type VerificationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the verification repository used by this service.
	Repo VerificationRepo
	// Mailer delivers issued codes. Delivery failure fails the issue call.
	Mailer mail.Mailer

	// Now is a clock seam for expiry tests; defaults to time.Now.
	Now func() time.Time
}

// NewVerificationService constructs a VerificationService with a real clock.
func NewVerificationService(db *gorm.DB, r VerificationRepo, m mail.Mailer) *VerificationService {
	return &VerificationService{DB: db, Repo: r, Mailer: m, Now: time.Now}
}

// Issue generates a 6-digit code for email and purpose, persists it with
// the purpose's expiry, and hands it to the mailer. Admin-creation
// issuance is refused outright once an admin account exists.
func (s *VerificationService) Issue(ctx context.Context, email, purpose string) error {
	tr := otel.Tracer("services/VerificationService")
	ctx, span := tr.Start(ctx, "Issue",
		trace.WithAttributes(attribute.String("code.purpose", purpose)),
	)
	defer span.End()

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	ttl, err := purposeTTL(purpose)
	if err != nil {
		return err
	}

	if purpose == domain.PurposeAdminCreation {
		exists, err := s.Repo.AdminExists(ctx, s.DB)
		if err != nil {
			return err
		}
		if exists {
			return ErrAdminExists
		}
	}

	code, err := generateCode(codeLength)
	if err != nil {
		return err
	}
	now := s.now()
	if _, err := s.Repo.CreateCode(ctx, s.DB, email, code, purpose, now.Add(ttl)); err != nil {
		return err
	}
	if err := s.Mailer.SendVerificationCode(ctx, email, code, ttl); err != nil {
		return fmt.Errorf("%w: %v", ErrCodeDelivery, err)
	}
	return nil
}

// Redeem consumes a code. Every miss — wrong code, wrong purpose, already
// used, expired — returns the same ErrInvalidCode so callers cannot tell
// the cases apart. On match the row is marked used; losing the mark race
// also reads as ErrInvalidCode.
func (s *VerificationService) Redeem(ctx context.Context, email, code, purpose string) error {
	tr := otel.Tracer("services/VerificationService")
	ctx, span := tr.Start(ctx, "Redeem",
		trace.WithAttributes(attribute.String("code.purpose", purpose)),
	)
	defer span.End()

	email = strings.TrimSpace(strings.ToLower(email))
	now := s.now()

	rec, err := s.Repo.FindRedeemableCode(ctx, s.DB, email, code, purpose, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		return err
	}
	if err := s.Repo.MarkCodeUsed(ctx, s.DB, rec.ID, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		return err
	}
	return nil
}

// RedeemAdminCreation redeems an admin-creation code and grants the admin
// role to userID. The grant is recorded in the admin audit trail; an audit
// failure is logged and swallowed, a grant failure is not.
func (s *VerificationService) RedeemAdminCreation(ctx context.Context, email, code, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if err := s.Redeem(ctx, email, code, domain.PurposeAdminCreation); err != nil {
		return err
	}
	if _, err := s.Repo.CreateRole(ctx, s.DB, userID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.Repo.InsertAdminAudit(ctx, s.DB, userID, "admin.role_granted", email); err != nil {
		log.Error().Err(err).Msg("admin audit insert failed")
	}
	return nil
}

// now returns the configured clock, tolerating a zero-value service.
func (s *VerificationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// purposeTTL maps a purpose to its expiry window.
func purposeTTL(purpose string) (time.Duration, error) {
	switch purpose {
	case domain.PurposeEmailVerification:
		return emailVerificationTTL, nil
	case domain.PurposeAdminCreation:
		return adminCreationTTL, nil
	default:
		return 0, ErrInvalidPurpose
	}
}

// generateCode produces length decimal digits from crypto/rand.
func generateCode(length int) (string, error) {
	const digits = "0123456789"
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[n.Int64()]
	}
	return string(code), nil
}
