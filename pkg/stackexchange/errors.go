package stackexchange

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a client failure. Every error leaving this package
// carries exactly one kind.
type Kind int

const (
	// KindInvalidArgument is a caller error. Never retried.
	KindInvalidArgument Kind = iota
	// KindRateLimited means the provider throttled the request. Carries
	// the server's backoff hint in RetryAfter.
	KindRateLimited
	// KindQuotaExhausted means the daily request quota is spent. No
	// network call is made while the quota gauge reads zero.
	KindQuotaExhausted
	// KindUpstreamUnavailable covers network failures and 5xx responses
	// after retries are exhausted.
	KindUpstreamUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindRateLimited:
		return "rate limited"
	case KindQuotaExhausted:
		return "quota exhausted"
	case KindUpstreamUnavailable:
		return "upstream unavailable"
	default:
		return "unknown"
	}
}

// Error is a classified Stack Exchange client error.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int           // HTTP status, 0 for network failures
	RetryAfter time.Duration // backoff hint for rate/quota errors
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("stackexchange: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("stackexchange: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// retryable reports whether the failure may succeed on a fresh attempt.
func (e *Error) retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindUpstreamUnavailable
}

func invalidArgument(msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

// AsError extracts a classified *Error from err, if present.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsInvalidArgument reports whether err is a caller error.
func IsInvalidArgument(err error) bool { return hasKind(err, KindInvalidArgument) }

// IsRateLimited reports whether err is a provider throttle.
func IsRateLimited(err error) bool { return hasKind(err, KindRateLimited) }

// IsQuotaExhausted reports whether err means the quota is spent.
func IsQuotaExhausted(err error) bool { return hasKind(err, KindQuotaExhausted) }

// IsUpstreamUnavailable reports whether err is a transient upstream failure.
func IsUpstreamUnavailable(err error) bool { return hasKind(err, KindUpstreamUnavailable) }

func hasKind(err error, k Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == k
}
