package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/store"
)

// HousekeepingService periodically drops revocation records whose tokens
// can no longer be accepted anyway.
type HousekeepingService struct {
	Tokens   store.RevokedTokens
	Logger   *slog.Logger
	Interval time.Duration
	Clock    func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(tokens store.RevokedTokens, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Tokens:   tokens,
		Logger:   logger,
		Interval: interval,
		Clock:    time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the cleanup loop in the background until Stop is called.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup runs one collection pass and returns how many records it removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	n, err := s.Tokens.DeleteExpired(ctx, s.Clock())
	if err != nil {
		s.Logger.Error("failed to delete expired revoked tokens", "error", err)
		return 0
	}
	s.Logger.Info("housekeeping cleanup completed", "revoked_tokens_deleted", n)
	return n
}
