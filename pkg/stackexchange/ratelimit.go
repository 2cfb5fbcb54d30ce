package stackexchange

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces outbound requests. It combines a token bucket with a
// backoff window recorded from the API's backoff field, so one
// throttled response quiets every in-process caller.
type Limiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewLimiter creates a limiter allowing requestsPerSecond sustained
// with the given burst.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until a request may be sent. It honors any recorded
// backoff window first, then the token bucket.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if until := time.Until(retryAt); until > 0 {
		if err := sleepCtx(ctx, until); err != nil {
			return err
		}
	}
	return l.limiter.Wait(ctx)
}

// RecordBackoff opens a backoff window. The API expects no further
// requests to the same method for the hinted duration.
func (l *Limiter) RecordBackoff(d time.Duration) {
	if d <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if at := time.Now().Add(d); at.After(l.retryAt) {
		l.retryAt = at
	}
}
