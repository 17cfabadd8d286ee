package retry

import (
	"context"
	"errors"
	"time"

	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/pkg/metrics"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 2 * time.Second
	defaultMaxDelay    = 10 * time.Second
)

// Policy runs external calls with bounded exponential backoff. Only errors that
// apperr.IsRetryable accepts are retried; everything else is returned at once.
type Policy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	onRetry     func(attempt int, delay time.Duration, err error)
}

// Option defines a function to configure the Policy.
type Option func(*Policy)

// WithMaxAttempts sets the total number of calls, including the first one.
func WithMaxAttempts(n int) Option {
	return func(p *Policy) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithBaseDelay sets the delay before the first retry.
func WithBaseDelay(d time.Duration) Option {
	return func(p *Policy) {
		p.baseDelay = d
	}
}

// WithMaxDelay caps a single backoff delay.
func WithMaxDelay(d time.Duration) Option {
	return func(p *Policy) {
		p.maxDelay = d
	}
}

// WithSleeper replaces the context-aware sleep, mostly for tests.
func WithSleeper(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Policy) {
		p.sleep = fn
	}
}

// WithOnRetry registers a hook called before each backoff sleep.
func WithOnRetry(fn func(attempt int, delay time.Duration, err error)) Option {
	return func(p *Policy) {
		p.onRetry = fn
	}
}

// New creates a Policy with default values and optional overrides.
func New(opts ...Option) *Policy {
	p := &Policy{
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		maxDelay:    defaultMaxDelay,
		sleep:       sleepCtx,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.maxDelay < p.baseDelay {
		p.maxDelay = p.baseDelay
	}
	return p
}

// MaxAttempts returns the configured attempt bound.
func (p *Policy) MaxAttempts() int {
	return p.maxAttempts
}

// Delay returns the backoff before retry number n (0-based): min(max, base*2^n).
func (p *Policy) Delay(n int) time.Duration {
	d := p.baseDelay
	for i := 0; i < n; i++ {
		if d >= p.maxDelay {
			return p.maxDelay
		}
		d *= 2
	}
	if d > p.maxDelay {
		return p.maxDelay
	}
	return d
}

// Do executes fn until it succeeds, returns a non-retryable error or the
// attempt budget runs out. The last error from fn is returned unchanged.
func (p *Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := p.Delay(attempt - 1)
			metrics.Retries.Inc()
			if p.onRetry != nil {
				p.onRetry(attempt, delay, err)
			}
			if sleepErr := p.sleep(ctx, delay); sleepErr != nil {
				return errors.Join(sleepErr, err)
			}
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			if err == nil {
				return ctxErr
			}
			return errors.Join(ctxErr, err)
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !apperr.IsRetryable(err) {
			return err
		}
	}
	return err
}

// DoWithData executes fn with retries and returns its value.
func DoWithData[T any](ctx context.Context, p *Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := p.Do(ctx, func(ctx context.Context) error {
		var e error
		result, e = fn(ctx)
		return e
	})
	return result, err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
