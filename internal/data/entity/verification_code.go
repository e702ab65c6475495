package entity

import (
	"time"

	"github.com/google/uuid"
)

// VerificationCode is the one-time phone verification code. One row per user,
// replaced on every send.
type VerificationCode struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	Code      string    `db:"code"`
	ExpiresAt time.Time `db:"expires_at"`
	Attempts  int       `db:"attempts"`
}

func (c *VerificationCode) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}
