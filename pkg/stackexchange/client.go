package stackexchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the Stack Exchange API root.
const DefaultBaseURL = "https://api.stackexchange.com/2.3"

// DefaultSite is the Stack Exchange site queried by default.
const DefaultSite = "stackoverflow"

// API filters selecting which fields the API includes. These are
// registered filter IDs that add bodies to questions, answers, and
// comments on top of the default field set.
const (
	questionFilter = "!*MZqiDl8Y0c)yVzXS"
	answerFilter   = "!*MZqiDl8Y0c)yVzXS"
	commentFilter  = "!*Mg-gxeRLu"
)

// Default client-side pacing. The provider allows 30 requests per
// second per IP; stay under it.
const (
	defaultRequestsPerSecond = 25.0
	defaultBurst             = 5
	defaultPageSize          = 5
)

// Client is a Stack Exchange API client. It is safe for concurrent
// use; the quota gauge and limiter are its only mutable state.
type Client struct {
	baseURL     string
	site        string
	apiKey      string
	accessToken string
	pageSize    int
	httpClient  *http.Client
	limiter     *Limiter
	quota       *QuotaGauge
	retry       RetryPolicy
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL sets a custom API root, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAPIKey attaches an API key to every request. Absence of a key
// is not an error; it just lowers the daily quota.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithAccessToken attaches a user access token to every request.
func WithAccessToken(token string) Option {
	return func(c *Client) {
		c.accessToken = token
	}
}

// WithSite selects the Stack Exchange site to query.
func WithSite(site string) Option {
	return func(c *Client) {
		if site != "" {
			c.site = site
		}
	}
}

// WithDefaultPageSize sets the page size used when a query leaves it zero.
func WithDefaultPageSize(n int) Option {
	return func(c *Client) {
		if n >= 1 && n <= MaxPageSize {
			c.pageSize = n
		}
	}
}

// WithRetryPolicy overrides the retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) {
		c.retry = p
	}
}

// WithQuotaGauge injects a shared quota gauge. Useful when several
// clients share one key, and in tests.
func WithQuotaGauge(g *QuotaGauge) Option {
	return func(c *Client) {
		if g != nil {
			c.quota = g
		}
	}
}

// WithRateLimit overrides the client-side pacing.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		c.limiter = NewLimiter(requestsPerSecond, burst)
	}
}

// New creates a Stack Exchange API client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		site:       DefaultSite,
		pageSize:   defaultPageSize,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    NewLimiter(defaultRequestsPerSecond, defaultBurst),
		quota:      NewQuotaGauge(),
		retry:      DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Quota returns the client's quota gauge.
func (c *Client) Quota() *QuotaGauge { return c.quota }

// commonParams returns the parameters attached to every request.
func (c *Client) commonParams() url.Values {
	params := url.Values{}
	params.Set("site", c.site)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	if c.accessToken != "" {
		params.Set("access_token", c.accessToken)
	}
	return params
}

// getPage performs a GET with retries and returns one decoded page.
func getPage[T any](ctx context.Context, c *Client, path string, params url.Values) (*Page[T], error) {
	var page *Page[T]
	err := c.retry.do(ctx, func(ctx context.Context) error {
		p, err := fetchOnce[T](ctx, c, path, params)
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// fetchOnce performs a single GET attempt: quota check, pacing, the
// HTTP call, and classification of any failure.
func fetchOnce[T any](ctx context.Context, c *Client, path string, params url.Values) (*Page[T], error) {
	if err := c.quota.Acquire(); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, invalidArgument(fmt.Sprintf("bad request path %q: %v", path, err))
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, invalidArgument(fmt.Sprintf("creating request: %v", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Debug("API request failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, &Error{Kind: KindUpstreamUnavailable, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, &Error{Kind: KindUpstreamUnavailable, Message: "reading response", StatusCode: resp.StatusCode, Cause: err}
	}

	// The API wraps errors in the same JSON envelope it uses for
	// results, so decode before deciding on the status code.
	var w wrapper[T]
	decodeErr := json.Unmarshal(body, &w)

	// An unknown resource reads as an empty result, not an error.
	if resp.StatusCode == http.StatusNotFound {
		return &Page[T]{}, nil
	}

	if resp.StatusCode >= 400 || w.ErrorID != 0 {
		apiErr := classify(resp, &w)
		slog.Debug("API request returned error",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("error_name", w.ErrorName),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, &Error{Kind: KindUpstreamUnavailable, Message: "decoding response", StatusCode: resp.StatusCode, Cause: decodeErr}
	}

	c.quota.Observe(w.QuotaRemaining, w.QuotaMax)

	backoff := time.Duration(w.Backoff) * time.Second
	if backoff > 0 {
		c.limiter.RecordBackoff(backoff)
	}

	slog.Debug("API request completed",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Int("items", len(w.Items)),
		slog.Int("quota_remaining", w.QuotaRemaining),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return &Page[T]{Items: w.Items, HasMore: w.HasMore, Backoff: backoff}, nil
}

// classify maps an HTTP failure to exactly one error kind.
func classify[T any](resp *http.Response, w *wrapper[T]) error {
	msg := w.ErrorMessage
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || w.ErrorName == "throttle_violation":
		return &Error{
			Kind:       KindRateLimited,
			Message:    msg,
			StatusCode: resp.StatusCode,
			RetryAfter: retryAfterHint(resp, w),
		}
	case resp.StatusCode >= 500:
		return &Error{Kind: KindUpstreamUnavailable, Message: msg, StatusCode: resp.StatusCode}
	default:
		return &Error{Kind: KindInvalidArgument, Message: msg, StatusCode: resp.StatusCode}
	}
}

// retryAfterHint extracts the server's backoff hint: the envelope's
// backoff field, then the Retry-After header, then a 2s default.
func retryAfterHint[T any](resp *http.Response, w *wrapper[T]) time.Duration {
	if w.Backoff > 0 {
		return time.Duration(w.Backoff) * time.Second
	}
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 2 * time.Second
}
