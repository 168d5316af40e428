package worker

import (
	"context"
	"time"

	"slotify/internal/store"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// NotificationPoller refreshes the notification slice in the background
// while a session is authenticated. The rate limiter caps refresh pressure
// regardless of interval configuration; after a failed poll the next one
// waits per the retry policy instead of hammering a struggling backend.
// Individual fetches are still single attempts — the poller schedules, it
// never retries a request.
type NotificationPoller struct {
	store    *store.Store
	interval time.Duration
	limiter  *rate.Limiter
	policy   RetryPolicy
	logger   *zerolog.Logger
}

func NewNotificationPoller(st *store.Store, interval time.Duration, burst int, policy RetryPolicy, logger *zerolog.Logger) *NotificationPoller {
	if interval <= 0 {
		interval = time.Minute
	}
	if burst <= 0 {
		burst = 1
	}
	return &NotificationPoller{
		store:    st,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), burst),
		policy:   policy,
		logger:   logger,
	}
}

// Start blocks until ctx is done. Run it in a goroutine.
func (p *NotificationPoller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	failures := 0
	var backoffUntil time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if !p.store.Auth.Authenticated() {
				continue
			}
			if now.Before(backoffUntil) {
				continue
			}
			if !p.limiter.Allow() {
				continue
			}

			if err := p.store.Notifications.Fetch(ctx); err != nil {
				failures++
				delay := p.policy.NextDelay(failures)
				backoffUntil = time.Now().Add(delay)
				p.logger.Warn().Err(err).Int("failures", failures).Dur("backoff", delay).Msg("notification poll failed")
				continue
			}
			failures = 0
			backoffUntil = time.Time{}
		}
	}
}
