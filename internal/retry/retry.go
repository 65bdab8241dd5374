// Package retry runs an operation under a bounded exponential backoff. Token
// refresh and every publish/sync remote call go through Do so the retry
// budget is configured in one place.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
)

// Policy bounds a retry loop.
type Policy struct {
	MaxAttempts     int           `yaml:"max_attempts"`
	InitialInterval time.Duration `yaml:"initial_interval"`
	MaxInterval     time.Duration `yaml:"max_interval"`
	Multiplier      float64       `yaml:"multiplier"`
}

// DefaultPolicy is three attempts starting at 500ms.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
		Multiplier:      2,
	}
}

// Delayer is implemented by errors that carry a server-requested wait, such
// as a Retry-After header. Do never waits less than that before retrying.
type Delayer interface {
	RetryDelay() time.Duration
}

// hintedBackOff raises the next interval to the wait the last error asked
// for.
type hintedBackOff struct {
	backoff.BackOff
	hint time.Duration
}

func (h *hintedBackOff) NextBackOff() time.Duration {
	next := h.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	return max(next, h.hint)
}

// Option configures a single Do call.
type Option func(*options)

type options struct {
	retryable func(error) bool
	notify    func(err error, attempt int, wait time.Duration)
	jitter    float64
}

// WithRetryable overrides the predicate deciding whether an error is worth
// another attempt. The default retries errors in the transient category.
func WithRetryable(fn func(error) bool) Option {
	return func(o *options) { o.retryable = fn }
}

// WithNotify registers a callback invoked before each wait.
func WithNotify(fn func(err error, attempt int, wait time.Duration)) Option {
	return func(o *options) { o.notify = fn }
}

// WithoutJitter disables randomization of the wait intervals.
func WithoutJitter() Option {
	return func(o *options) { o.jitter = 0 }
}

// Do calls fn until it succeeds, returns a non-retryable error, the attempt
// budget is spent, or ctx is done. The last error from fn is returned.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error, opts ...Option) error {
	o := options{
		retryable: apperror.IsRetryable,
		jitter:    backoff.DefaultRandomizationFactor,
	}
	for _, opt := range opts {
		opt(&o)
	}

	p = p.normalized()

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialInterval
	eb.MaxInterval = p.MaxInterval
	eb.Multiplier = p.Multiplier
	eb.RandomizationFactor = o.jitter
	eb.MaxElapsedTime = 0

	hb := &hintedBackOff{BackOff: eb}
	b := backoff.WithContext(backoff.WithMaxRetries(hb, uint64(p.MaxAttempts-1)), ctx)

	attempt := 0
	op := func() error {
		attempt++
		hb.hint = 0
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !o.retryable(err) {
			return backoff.Permanent(err)
		}
		var d Delayer
		if errors.As(err, &d) {
			hb.hint = d.RetryDelay()
		}
		return err
	}

	var notify backoff.Notify
	if o.notify != nil {
		notify = func(err error, wait time.Duration) {
			o.notify(err, attempt, wait)
		}
	}

	return backoff.RetryNotify(op, b, notify)
}

func (p Policy) normalized() Policy {
	def := DefaultPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	if p.InitialInterval <= 0 {
		p.InitialInterval = def.InitialInterval
	}
	if p.MaxInterval < p.InitialInterval {
		p.MaxInterval = p.InitialInterval
	}
	if p.Multiplier < 1 {
		p.Multiplier = def.Multiplier
	}
	return p
}
