package stackexchange

import (
	"context"
	"math/rand/v2"
	"time"
)

// RetryPolicy bounds how many times a request is reattempted and how
// long to wait between attempts. The zero value disables retries.
type RetryPolicy struct {
	// MaxRetries is the number of reattempts after the first try.
	MaxRetries int
	// BaseDelay seeds the exponential backoff for upstream failures.
	// Rate-limit errors start from the server's hint instead.
	BaseDelay time.Duration
	// MaxDelay caps a single wait.
	MaxDelay time.Duration
}

// DefaultRetryPolicy matches the documented client contract: two
// reattempts with jittered exponential backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   30 * time.Second,
	}
}

// do runs fn until it succeeds, fails with a non-retryable error, or
// the retry budget is spent. fn must return errors already classified
// into this package's taxonomy.
func (p RetryPolicy) do(ctx context.Context, fn func(ctx context.Context) error) error {
	var last error
	for attempt := 0; ; attempt++ {
		last = fn(ctx)
		if last == nil {
			return nil
		}
		e, ok := AsError(last)
		if !ok || !e.retryable() || attempt >= p.MaxRetries {
			return last
		}
		if err := sleepCtx(ctx, p.delay(attempt, e)); err != nil {
			return err
		}
	}
}

// delay computes the wait before reattempt number attempt+1.
func (p RetryPolicy) delay(attempt int, e *Error) time.Duration {
	base := p.BaseDelay
	if e.Kind == KindRateLimited && e.RetryAfter > 0 {
		base = e.RetryAfter
	}
	d := base << attempt
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	// Up to 25% jitter so concurrent invocations don't retry in lockstep.
	return d + time.Duration(rand.Int64N(int64(d)/4+1))
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
