package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/driftpeak/helios/internal/auth/store"
	"github.com/driftpeak/helios/pkg/jwtx"
)

// HousekeepingService periodically deletes opaque exchange codes older than
// their TTL. Exchange codes have no expiry column; issuance time drives the
// sweep. The request path never waits on this worker.
type HousekeepingService struct {
	Tokens   store.Tokens
	Logger   *slog.Logger
	Interval time.Duration
	CodeTTL  time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker. A non-positive
// interval defaults to 1 hour; a non-positive code TTL defaults to the
// signed exchange code lifetime.
func NewHousekeepingService(tokens store.Tokens, logger *slog.Logger, interval, codeTTL time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if codeTTL <= 0 {
		codeTTL = jwtx.DefaultExchangeCodeTTL
	}

	return &HousekeepingService{
		Tokens:   tokens,
		Logger:   logger,
		Interval: interval,
		CodeTTL:  codeTTL,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut it
// down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		"interval", s.Interval,
		"exchange_code_ttl", s.CodeTTL,
	)
}

// Stop shuts down the worker, blocking until any in-progress sweep ends.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep once at startup so a restart doesn't leave stale codes sitting
	// for a full interval.
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) sweep() {
	ctx := context.Background()
	cutoff := time.Now().Add(-s.CodeTTL)

	if err := s.Tokens.DeleteExpiredExchangeCodes(ctx, cutoff); err != nil {
		s.Logger.Error("failed to delete expired exchange codes", "error", err)
		return
	}
	s.Logger.Debug("swept expired exchange codes", "cutoff", cutoff)
}
