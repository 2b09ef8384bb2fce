package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/alltabs/alltabsd/internal/domain"
	"github.com/alltabs/alltabsd/internal/logger"
)

// Refresher reloads full state from the backend.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshScheduler keeps the store in sync with the backend: a periodic
// full refresh, plus a manual trigger channel for sign-in and the
// /api/refresh endpoint. Failed refreshes are retried with capped
// exponential backoff; the store keeps serving last-known-good state in
// the meantime. Unauthenticated ticks are skipped quietly.
type RefreshScheduler struct {
	refresher     Refresher
	logger        logger.Logger
	interval      time.Duration
	retryWait     time.Duration
	retryMax      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewRefreshScheduler creates a refresh scheduler.
func NewRefreshScheduler(
	refresher Refresher,
	log logger.Logger,
	interval time.Duration,
	retryWait time.Duration,
	retryMax time.Duration,
	manualTrigger chan struct{},
) *RefreshScheduler {
	return &RefreshScheduler{
		refresher:     refresher,
		logger:        log,
		interval:      interval,
		retryWait:     retryWait,
		retryMax:      retryMax,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic refresh loop. Never fails on a failed first
// refresh: the daemon usually starts signed out.
func (rs *RefreshScheduler) Start(ctx context.Context) {
	rs.attempt(ctx)

	go rs.loop(ctx)
}

// Stop stops the scheduler.
func (rs *RefreshScheduler) Stop() {
	close(rs.stopCh)
}

func (rs *RefreshScheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(rs.interval)
	defer ticker.Stop()

	var retry *time.Timer
	var retryCh <-chan time.Time
	wait := rs.retryWait

	scheduleRetry := func() {
		if retry != nil {
			retry.Stop()
		}
		retry = time.NewTimer(wait)
		retryCh = retry.C
		rs.logger.Warn("refresh failed, will retry",
			logger.Duration("retry_in", wait))
		// Exponential backoff with cap
		wait *= 2
		if wait > rs.retryMax {
			wait = rs.retryMax
		}
	}
	clearRetry := func() {
		if retry != nil {
			retry.Stop()
			retry = nil
			retryCh = nil
		}
		wait = rs.retryWait
	}

	for {
		select {
		case <-ticker.C:
			if rs.attempt(ctx) {
				clearRetry()
			} else {
				scheduleRetry()
			}
		case <-retryCh:
			retryCh = nil
			if rs.attempt(ctx) {
				clearRetry()
			} else {
				scheduleRetry()
			}
		case <-rs.manualTrigger:
			rs.logger.Info("manual refresh triggered")
			if rs.attempt(ctx) {
				clearRetry()
			} else {
				scheduleRetry()
			}
		case <-rs.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// attempt runs one refresh. Returns true on success or when skipped for
// lack of a session (nothing to retry in that case).
func (rs *RefreshScheduler) attempt(ctx context.Context) bool {
	err := rs.refresher.Refresh(ctx)
	if err == nil {
		return true
	}
	if errors.Is(err, domain.ErrAuthRequired) {
		rs.logger.Debug("refresh skipped, no session")
		return true
	}
	rs.logger.Error("refresh failed", logger.Error(err))
	return false
}
