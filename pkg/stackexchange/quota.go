package stackexchange

import (
	"fmt"
	"sync"
	"time"
)

// QuotaGauge tracks the provider's remaining request quota. It is the
// only shared mutable state in the system: one gauge is shared by every
// request a client makes, and concurrent tool invocations observe and
// acquire it under a single mutex.
//
// The API reports quota_remaining/quota_max on every response but no
// reset time; the gauge assumes the provider's daily reset at the next
// UTC midnight once remaining hits zero.
type QuotaGauge struct {
	mu        sync.Mutex
	remaining int
	max       int
	observed  bool
	resetAt   time.Time

	now func() time.Time // injectable for tests
}

// NewQuotaGauge creates a gauge with no observations yet. Until the
// first response is observed, Acquire always succeeds.
func NewQuotaGauge() *QuotaGauge {
	return &QuotaGauge{now: time.Now}
}

// Acquire checks that quota remains before a network call is made.
// Returns a KindQuotaExhausted error when the gauge reads zero and the
// assumed reset time has not elapsed.
func (g *QuotaGauge) Acquire() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.observed || g.remaining > 0 {
		return nil
	}
	now := g.now()
	if now.Before(g.resetAt) {
		return &Error{
			Kind:       KindQuotaExhausted,
			Message:    fmt.Sprintf("daily quota of %d requests spent", g.max),
			RetryAfter: g.resetAt.Sub(now),
		}
	}
	// Reset time elapsed; allow the call and let the next observation
	// re-establish the real remaining count.
	g.observed = false
	return nil
}

// Observe records the quota fields from an API response.
func (g *QuotaGauge) Observe(remaining, max int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.remaining = remaining
	g.max = max
	g.observed = true
	if remaining <= 0 {
		g.resetAt = nextUTCMidnight(g.now())
	}
}

// Remaining returns the last observed remaining quota, or -1 if no
// response has been observed yet.
func (g *QuotaGauge) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.observed {
		return -1
	}
	return g.remaining
}

func nextUTCMidnight(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}
