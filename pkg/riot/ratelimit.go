package riot

import (
	"context"
	"sync"
	"time"

	"lolstats/pkg/config"
)

// Single riot rate limiting window.
type riotLimit struct {
	limit         int
	resetInterval time.Duration
	count         int
	lastReset     time.Time
}

// RateLimiter keeps the client under every window of the API key.
// Background calls are additionally paced so on demand calls keep priority.
type RateLimiter struct {
	windows []*riotLimit

	// Slowest interval that let all background requests be consumed before reseting.
	backgroundInterval time.Duration

	lastBackground time.Time
	mu             sync.Mutex
}

// NewRateLimiter creates the limiter from the configured windows.
func NewRateLimiter(limits config.LimitsConfiguration) *RateLimiter {
	now := time.Now()
	windows := make([]*riotLimit, 0, 2)
	for _, l := range []config.LimitConfiguration{limits.Lower, limits.Higher} {
		if l.Count <= 0 || l.ResetInterval <= 0 {
			continue
		}
		windows = append(windows, &riotLimit{
			limit:         l.Count,
			resetInterval: l.ResetInterval,
			lastReset:     now,
		})
	}

	var interval time.Duration
	for _, w := range windows {
		if per := w.resetInterval / time.Duration(w.limit); per > interval {
			interval = per
		}
	}

	return &RateLimiter{
		windows:            windows,
		backgroundInterval: interval,
	}
}

// Reset the counts of the windows that expired.
func (r *RateLimiter) resetCounts(now time.Time) {
	for _, window := range r.windows {
		if now.Sub(window.lastReset) >= window.resetInterval {
			window.count = 0
			window.lastReset = now
		}
	}
}

// Check if every window still has room.
func (r *RateLimiter) checkLimits() bool {
	for _, window := range r.windows {
		if window.count >= window.limit {
			return false
		}
	}
	return true
}

func (r *RateLimiter) incrementCounts() {
	for _, window := range r.windows {
		window.count++
	}
}

// waitTime is how long until the most restrictive full window resets.
func (r *RateLimiter) waitTime(now time.Time) time.Duration {
	var wait time.Duration
	for _, window := range r.windows {
		if window.count < window.limit {
			continue
		}
		if till := window.resetInterval - now.Sub(window.lastReset); till > wait {
			wait = till
		}
	}
	return wait
}

// reserve takes a slot when possible, otherwise returns how long to wait.
func (r *RateLimiter) reserve(background bool) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.resetCounts(now)

	if background {
		if since := now.Sub(r.lastBackground); since < r.backgroundInterval {
			return false, r.backgroundInterval - since
		}
	}

	if !r.checkLimits() {
		return false, r.waitTime(now)
	}

	r.incrementCounts()
	if background {
		r.lastBackground = now
	}
	return true, 0
}

// Wait blocks until a request can be sent or the context is done.
func (r *RateLimiter) Wait(ctx context.Context, background bool) error {
	for {
		ok, wait := r.reserve(background)
		if ok {
			return nil
		}

		if wait <= 0 {
			wait = time.Millisecond
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

type backgroundKey struct{}

// Background marks the calls made with ctx as background work.
func Background(ctx context.Context) context.Context {
	return context.WithValue(ctx, backgroundKey{}, true)
}

// IsBackground tells if ctx was marked with Background.
func IsBackground(ctx context.Context) bool {
	v, _ := ctx.Value(backgroundKey{}).(bool)
	return v
}
