// Package mail delivers verification codes by email. The core treats
// delivery as a black box behind the Mailer interface; the production
// implementation rides SendGrid.
package mail

import (
	"context"
	"time"
)

// Mailer sends a one-time verification code to an address. Implementations
// report failure so the issuing flow can fall back to an error state; they
// must not retry on their own.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string, ttl time.Duration) error
}
