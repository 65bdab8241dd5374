package ebay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
)

// ErrDailyLimitReached is returned when the local daily call budget is spent.
// It also matches apperror.ErrRateLimited.
var ErrDailyLimitReached = errors.New("daily API limit reached")

// RateLimiter is shared by every account and environment. It combines a
// token bucket for per-second pacing with a rolling 24-hour call budget.
type RateLimiter struct {
	limiter  *rate.Limiter
	daily    atomic.Int64
	maxDaily int64
	resetAt  time.Time
	mu       sync.Mutex
	nowFunc  func() time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a limiter allowing perSecond calls with the given
// burst. maxDaily <= 0 disables the daily budget.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily: maxDaily,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.nowFunc().Add(24 * time.Hour)
	return r
}

// Wait blocks until the bucket allows a call or ctx is done. When the daily
// budget is spent it fails immediately with a rate-limited error carrying
// the time until the window resets.
func (r *RateLimiter) Wait(ctx context.Context) error {
	resetAt := r.checkDailyReset()

	if r.maxDaily > 0 && r.daily.Load() >= r.maxDaily {
		return fmt.Errorf("%w (%d/%d): %w", ErrDailyLimitReached, r.daily.Load(), r.maxDaily,
			&apperror.RateLimitedError{
				RetryAfter: resetAt.Sub(r.nowFunc()),
				Message:    "eBay daily call budget exhausted",
			})
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	r.daily.Add(1)
	return nil
}

// DailyCount returns the number of calls made in the current window.
func (r *RateLimiter) DailyCount() int64 {
	return r.daily.Load()
}

// MaxDaily returns the configured daily call limit.
func (r *RateLimiter) MaxDaily() int64 {
	return r.maxDaily
}

// Remaining returns the calls left in the current window, or -1 when the
// daily budget is disabled.
func (r *RateLimiter) Remaining() int64 {
	if r.maxDaily <= 0 {
		return -1
	}
	return max(r.maxDaily-r.daily.Load(), 0)
}

// ResetAt returns when the current 24-hour window expires.
func (r *RateLimiter) ResetAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAt
}

// Usage is a point-in-time view of the local limiter.
type Usage struct {
	DailyCount int64     `json:"daily_count"`
	DailyLimit int64     `json:"daily_limit"`
	Remaining  int64     `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
}

// Usage returns the current counters.
func (r *RateLimiter) Usage() Usage {
	return Usage{
		DailyCount: r.DailyCount(),
		DailyLimit: r.maxDaily,
		Remaining:  r.Remaining(),
		ResetAt:    r.ResetAt(),
	}
}

func (r *RateLimiter) checkDailyReset() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.daily.Store(0)
		r.resetAt = now.Add(24 * time.Hour)
	}
	return r.resetAt
}
