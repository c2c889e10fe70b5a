package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/domain"
	"github.com/aussiebroadwan/tunnelhub/pkg/cryptox"
	"github.com/aussiebroadwan/tunnelhub/pkg/idx"
)

// SessionService issues and validates opaque bearer tokens. Sessions live in
// process memory only and are lost on restart.
type SessionService struct {
	// TTL bounds a session's lifetime. Zero means sessions never expire.
	TTL    time.Duration
	Logger *slog.Logger
	Now    func() time.Time

	sessions sync.Map // map[string]domain.Session
}

// NewSessionService creates a SessionService.
func NewSessionService(ttl time.Duration, logger *slog.Logger) *SessionService {
	return &SessionService{TTL: ttl, Logger: logger, Now: time.Now}
}

func (s *SessionService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Create starts a new session and returns it. The token carries 256 bits of
// entropy from the system CSPRNG.
func (s *SessionService) Create(isAdmin bool, userID string) domain.Session {
	now := s.now()

	for {
		sess := domain.Session{
			ID:        idx.NewAt(now),
			Token:     cryptox.MustGenerateToken(cryptox.TokenSize256),
			IsAdmin:   isAdmin,
			UserID:    userID,
			CreatedAt: now,
		}
		if s.TTL > 0 {
			sess.ExpiresAt = now.Add(s.TTL)
		}

		if _, loaded := s.sessions.LoadOrStore(sess.Token, sess); !loaded {
			s.Logger.Info("session created",
				"session_id", sess.ID.String(),
				"is_admin", sess.IsAdmin,
				"user_id", sess.UserID,
			)
			return sess
		}
	}
}

// Lookup returns the session for token. Expired sessions are reported as
// absent. Lookup never modifies the store.
func (s *SessionService) Lookup(token string) (domain.Session, bool) {
	if token == "" {
		return domain.Session{}, false
	}

	v, ok := s.sessions.Load(token)
	if !ok {
		return domain.Session{}, false
	}

	sess := v.(domain.Session)
	if sess.Expired(s.now()) {
		return domain.Session{}, false
	}
	return sess, true
}

// Invalidate removes the session for token. Unknown tokens are ignored.
func (s *SessionService) Invalidate(token string) {
	v, ok := s.sessions.LoadAndDelete(token)
	if !ok {
		return
	}
	s.Logger.Info("session invalidated", "session_id", v.(domain.Session).ID.String())
}

// DeleteExpired drops expired sessions and returns how many were removed.
func (s *SessionService) DeleteExpired() int {
	now := s.now()
	removed := 0

	s.sessions.Range(func(key, value any) bool {
		if value.(domain.Session).Expired(now) {
			if s.sessions.CompareAndDelete(key, value) {
				removed++
			}
		}
		return true
	})
	return removed
}

// Count returns the number of stored sessions, expired or not.
func (s *SessionService) Count() int {
	n := 0
	s.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
