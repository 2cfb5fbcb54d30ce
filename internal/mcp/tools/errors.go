package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/overflowhq/stackoverflow-mcp/pkg/stackexchange"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeQuotaExhausted = "QUOTA_EXHAUSTED"
	ErrCodeUpstreamError  = "UPSTREAM_ERROR"
	ErrCodeTimeout        = "TIMEOUT"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapAPIError converts a stackexchange.Error or other error to a coded error.
func WrapAPIError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError

	if apiErr, ok := stackexchange.AsError(err); ok {
		switch apiErr.Kind {
		case stackexchange.KindInvalidArgument:
			coded = &CodedError{
				Code:    ErrCodeInvalidInput,
				Message: apiErr.Message,
				Cause:   err,
			}
		case stackexchange.KindRateLimited:
			msg := apiErr.Message
			if apiErr.RetryAfter > 0 {
				msg = fmt.Sprintf("%s (retry after %s)", msg, apiErr.RetryAfter)
			}
			coded = &CodedError{
				Code:    ErrCodeRateLimited,
				Message: msg,
				Cause:   err,
			}
		case stackexchange.KindQuotaExhausted:
			msg := apiErr.Message
			if apiErr.RetryAfter > 0 {
				msg = fmt.Sprintf("%s (resets in %s)", msg, apiErr.RetryAfter)
			}
			coded = &CodedError{
				Code:    ErrCodeQuotaExhausted,
				Message: msg,
				Cause:   err,
			}
		default:
			coded = &CodedError{
				Code:    ErrCodeUpstreamError,
				Message: apiErr.Message,
				Cause:   err,
			}
		}
	} else {
		var netErr net.Error
		switch {
		case errors.As(err, &netErr) && netErr.Timeout():
			coded = &CodedError{
				Code:    ErrCodeTimeout,
				Message: "request timed out",
				Cause:   err,
			}
		case errors.Is(err, context.DeadlineExceeded):
			coded = &CodedError{
				Code:    ErrCodeTimeout,
				Message: "request timed out",
				Cause:   err,
			}
		default:
			coded = &CodedError{
				Code:    ErrCodeUpstreamError,
				Message: err.Error(),
				Cause:   err,
			}
		}
	}

	slog.Warn("Stack Exchange API error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource string, id int64) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %d", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
