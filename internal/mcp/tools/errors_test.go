package tools

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overflowhq/stackoverflow-mcp/pkg/stackexchange"
)

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	return coded.Code
}

func TestWrapAPIError_Nil(t *testing.T) {
	assert.NoError(t, WrapAPIError(nil))
}

func TestWrapAPIError_KindMapping(t *testing.T) {
	tests := []struct {
		name string
		kind stackexchange.Kind
		want string
	}{
		{"invalid argument", stackexchange.KindInvalidArgument, ErrCodeInvalidInput},
		{"rate limited", stackexchange.KindRateLimited, ErrCodeRateLimited},
		{"quota exhausted", stackexchange.KindQuotaExhausted, ErrCodeQuotaExhausted},
		{"upstream unavailable", stackexchange.KindUpstreamUnavailable, ErrCodeUpstreamError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapAPIError(&stackexchange.Error{Kind: tt.kind, Message: "boom"})
			assert.Equal(t, tt.want, codeOf(t, err))
		})
	}
}

func TestWrapAPIError_RateLimitMentionsRetryAfter(t *testing.T) {
	err := WrapAPIError(&stackexchange.Error{
		Kind:       stackexchange.KindRateLimited,
		Message:    "too many requests",
		RetryAfter: 3 * time.Second,
	})
	assert.Contains(t, err.Error(), "retry after 3s")
}

func TestWrapAPIError_UnknownErrorIsUpstream(t *testing.T) {
	err := WrapAPIError(errors.New("connection reset"))
	assert.Equal(t, ErrCodeUpstreamError, codeOf(t, err))
}

func TestWrapAPIError_PreservesCause(t *testing.T) {
	cause := &stackexchange.Error{Kind: stackexchange.KindRateLimited, Message: "slow down"}
	err := WrapAPIError(cause)
	assert.ErrorIs(t, err, cause)
}

func TestErrNotFound(t *testing.T) {
	err := ErrNotFound("question", 42)
	assert.Equal(t, ErrCodeNotFound, codeOf(t, err))
	assert.Contains(t, err.Error(), "question not found: 42")
}

func TestErrInvalidInput(t *testing.T) {
	err := ErrInvalidInput("limit out of range")
	assert.Equal(t, ErrCodeInvalidInput, codeOf(t, err))
}
