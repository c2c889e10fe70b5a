package domain

import (
	"time"

	"github.com/aussiebroadwan/tunnelhub/pkg/idx"
)

// Session is an authenticated client. The token is the bearer credential;
// ID is a loggable handle for the same session.
type Session struct {
	ID        idx.ID
	Token     string
	IsAdmin   bool
	UserID    string
	CreatedAt time.Time
	// ExpiresAt is zero for sessions that never expire.
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
