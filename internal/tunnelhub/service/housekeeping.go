package service

import (
	"context"
	"log/slog"
	"time"
)

// Pinger is satisfied by stores whose health housekeeping reports on.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HousekeepingService periodically drops expired sessions so the in-memory
// session table does not grow without bound when a TTL is configured.
type HousekeepingService struct {
	Sessions *SessionService
	Names    Pinger
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given
// interval. If interval is 0 or negative, defaults to 5 minutes.
func NewHousekeepingService(sessions *SessionService, names Pinger, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &HousekeepingService{
		Sessions: sessions,
		Names:    names,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts down the background worker and waits for any in-progress
// cleanup to finish.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup()

	for {
		select {
		case <-ticker.C:
			s.Cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs one housekeeping pass. Failures are logged; each step is
// independent of the others.
func (s *HousekeepingService) Cleanup() {
	removed := 0
	if s.Sessions != nil {
		removed = s.Sessions.DeleteExpired()
	}

	if s.Names != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Names.Ping(ctx); err != nil {
			s.Logger.Error("name store unreachable", "error", err)
		}
	}

	s.Logger.Debug("housekeeping cleanup completed", "expired_sessions", removed)
}
