package stackexchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a client against a fake upstream with fast
// retries and effectively no client-side pacing.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(
		WithBaseURL(srv.URL),
		WithRateLimit(10000, 10000),
		WithRetryPolicy(RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}),
	)
	return c, srv
}

func writeEnvelope(w http.ResponseWriter, items any, hasMore bool, quotaRemaining int) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"items":           items,
		"has_more":        hasMore,
		"quota_max":       300,
		"quota_remaining": quotaRemaining,
	})
}

func testQuestion(id int64, score int) map[string]any {
	return map[string]any{
		"question_id":   id,
		"title":         fmt.Sprintf("Question %d", id),
		"body":          "<p>body</p>",
		"score":         score,
		"answer_count":  1,
		"is_answered":   true,
		"creation_date": 1700000000 + id,
		"tags":          []string{"go"},
		"link":          fmt.Sprintf("https://stackoverflow.com/q/%d", id),
	}
}

func TestSearchQuestions_SinglePage(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/search/advanced", r.URL.Path)
		assert.Equal(t, "python generators", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("pagesize"))
		assert.Equal(t, "votes", r.URL.Query().Get("sort"))
		assert.Equal(t, "stackoverflow", r.URL.Query().Get("site"))
		writeEnvelope(w, []any{testQuestion(1, 10), testQuestion(2, 5)}, true, 299)
	})

	pager, err := c.SearchQuestions(SearchQuery{Query: "python generators", PageSize: 2, MaxResults: 2})
	require.NoError(t, err)

	questions, err := pager.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load(), "bounded collect should issue exactly one upstream call")
	require.Len(t, questions, 2)
	for _, q := range questions {
		assert.Positive(t, q.ID)
		assert.NotEmpty(t, q.Title)
		assert.GreaterOrEqual(t, q.Score, 0)
	}
	assert.False(t, pager.More(), "result bound reached")
	assert.True(t, pager.HasMore(), "upstream flag survives the result bound")
}

func TestSearchQuestions_PaginatesUntilBound(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		base := int64(n-1) * 2
		writeEnvelope(w, []any{testQuestion(base+1, 3), testQuestion(base+2, 3)}, true, 299)
	})

	pager, err := c.SearchQuestions(SearchQuery{Query: "go channels", PageSize: 2, MaxResults: 5})
	require.NoError(t, err)

	questions, err := pager.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(3), calls.Load())
	require.Len(t, questions, 5, "last page trimmed to the max-results bound")
	assert.False(t, pager.More())
}

func TestSearchQuestions_StopsWhenNoMore(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, []any{testQuestion(1, 3)}, false, 299)
	})

	pager, err := c.SearchQuestions(SearchQuery{Query: "anything", PageSize: 10, MaxResults: 50})
	require.NoError(t, err)

	questions, err := pager.Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, questions, 1)
	assert.False(t, pager.More())
	assert.False(t, pager.HasMore())
}

func TestSearchQuestions_MinScoreFiltersClientSide(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, []any{testQuestion(1, 10), testQuestion(2, 1), testQuestion(3, 7)}, false, 299)
	})

	pager, err := c.SearchQuestions(SearchQuery{Query: "x", MinScore: 5, PageSize: 10, MaxResults: 10})
	require.NoError(t, err)

	questions, err := pager.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, int64(1), questions[0].ID)
	assert.Equal(t, int64(3), questions[1].ID)
}

func TestSearchQuestions_Validation(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		query SearchQuery
	}{
		{"empty query", SearchQuery{Query: "   "}},
		{"bad sort", SearchQuery{Query: "x", Sort: "hotness"}},
		{"oversized page", SearchQuery{Query: "x", PageSize: MaxPageSize + 1}},
		{"negative page", SearchQuery{Query: "x", Page: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.SearchQuestions(tt.query)
			require.Error(t, err)
			assert.True(t, IsInvalidArgument(err), "got %v", err)
		})
	}
}

func TestRetry_UpstreamRecoversWithinBudget(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeEnvelope(w, []any{testQuestion(1, 3)}, false, 299)
	})

	q, err := c.Question(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, int32(3), calls.Load(), "503 twice then 200 should succeed on the third attempt")
}

func TestRetry_UpstreamStaysDown(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Question(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsUpstreamUnavailable(err), "got %v", err)
	assert.Equal(t, int32(3), calls.Load(), "one try plus two retries")
}

func TestRetry_InvalidArgumentFailsFast(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error_id":      400,
			"error_name":    "bad_parameter",
			"error_message": "sort is invalid",
		})
	})

	pager, err := c.SearchQuestions(SearchQuery{Query: "x"})
	require.NoError(t, err)
	_, err = pager.Next(context.Background())
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err), "got %v", err)
	assert.Equal(t, int32(1), calls.Load(), "caller errors are never retried")
}

func TestThrottleViolation_ClassifiedRateLimited(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error_id":      502,
			"error_name":    "throttle_violation",
			"error_message": "too many requests from this IP",
			"backoff":       1,
		})
	})

	_, err := c.Question(context.Background(), 1)
	require.Error(t, err)
	require.True(t, IsRateLimited(err), "got %v", err)

	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, time.Second, e.RetryAfter, "server hint surfaces on the error")
}

func TestQuota_ExhaustionShortCircuits(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeEnvelope(w, []any{testQuestion(1, 3)}, false, 0)
	})

	_, err := c.Question(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Quota().Remaining())

	_, err = c.Question(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsQuotaExhausted(err), "got %v", err)
	assert.Equal(t, int32(1), calls.Load(), "no network call once quota reads zero")
}

func TestQuestion_UnknownIDIsEmptyResult(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, []any{}, false, 299)
	})

	q, err := c.Question(context.Background(), 99999999)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestQuestion_NotFoundStatusIsEmptyResult(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	q, err := c.Question(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestBackoffHint_RecordedOnPager(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items":           []any{testQuestion(1, 3)},
			"has_more":        true,
			"backoff":         3,
			"quota_max":       300,
			"quota_remaining": 200,
		})
	})

	pager, err := c.SearchQuestions(SearchQuery{Query: "x", MaxResults: 10})
	require.NoError(t, err)
	_, err = pager.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, pager.Backoff())
}

func TestClient_ContextCancellation(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Question(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
