// Package base provides shared HTTP client infrastructure for the
// Databricks REST API: authentication, retries, rate limiting, circuit
// breaking, and request deduplication.
package base

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/lakeware/databricks-mcp-server/internal/infra"
	"github.com/lakeware/databricks-mcp-server/metrics"
)

const (
	// DefaultTimeout for API requests
	DefaultTimeout = 30 * time.Second

	// DefaultCacheTTL for cached responses
	DefaultCacheTTL = 5 * time.Minute

	// DefaultRequestsPerSecond limits the upstream call rate. Databricks
	// workspace APIs throttle aggressively past roughly 30 qps.
	DefaultRequestsPerSecond = 20
)

// Client provides common HTTP infrastructure for workspace API calls:
// bearer authentication, JSON encoding, retries with backoff, a token
// bucket rate limiter, a circuit breaker, caching, and deduplication
// of identical in-flight requests.
type Client struct {
	HTTPClient     *http.Client
	Logger         *slog.Logger
	Cache          *infra.Cache
	Dedup          *infra.RequestDeduplicator
	CircuitBreaker *infra.CircuitBreaker
	Limiter        *rate.Limiter

	baseURL    string
	token      string
	userAgent  string
	maxRetries int
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithCache sets a custom cache
func WithCache(c *infra.Cache) ClientOption {
	return func(client *Client) {
		client.Cache = c
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.HTTPClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header for all requests
func WithUserAgent(ua string) ClientOption {
	return func(client *Client) {
		client.userAgent = ua
	}
}

// WithMaxRetries sets the retry budget for failed requests
func WithMaxRetries(n int) ClientOption {
	return func(client *Client) {
		if n > 0 {
			client.maxRetries = n
		}
	}
}

// WithRateLimit overrides the default requests-per-second limit
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(client *Client) {
		client.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient creates a client for the workspace at baseURL, authenticating
// every request with the given bearer token.
func NewClient(baseURL, token string, opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient:     newHTTPClient(DefaultTimeout),
		Logger:         slog.Default(),
		Cache:          infra.NewCache(1000),
		Dedup:          infra.NewRequestDeduplicator(),
		CircuitBreaker: infra.NewCircuitBreaker(),
		Limiter:        rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), DefaultRequestsPerSecond),
		baseURL:        baseURL,
		token:          token,
		userAgent:      "databricks-mcp-server/1.0",
		maxRetries:     3,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the workspace URL this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs an authenticated GET against path (which may carry a
// query string) and returns the response body and status code.
func (c *Client) Get(ctx context.Context, path string) ([]byte, int, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post marshals payload as JSON and POSTs it to path.
func (c *Client) Post(ctx context.Context, path string, payload any) ([]byte, int, error) {
	return c.Do(ctx, http.MethodPost, path, payload)
}

// Patch marshals payload as JSON and PATCHes it to path.
func (c *Client) Patch(ctx context.Context, path string, payload any) ([]byte, int, error) {
	return c.Do(ctx, http.MethodPatch, path, payload)
}

// Delete performs an authenticated DELETE against path. A nil payload
// sends no body.
func (c *Client) Delete(ctx context.Context, path string, payload any) ([]byte, int, error) {
	return c.Do(ctx, http.MethodDelete, path, payload)
}

// Do performs an authenticated request with circuit breaking, rate
// limiting, and retries. 429 responses honor the Retry-After header and
// 5xx responses are retried with exponential backoff. The caller parses
// the returned body and decides what non-2xx status codes mean.
func (c *Client) Do(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	if !c.CircuitBreaker.Allow() {
		metrics.CircuitBreakerRejections.Inc()
		return nil, 0, c.CircuitBreaker.OpenError()
	}

	if !c.Limiter.Allow() {
		metrics.RateLimitWaits.Inc()
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("context canceled while waiting for rate limiter: %w", err)
		}
	}

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	url := c.baseURL + path
	requestID := uuid.NewString()

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * 100 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, 0, fmt.Errorf("context canceled during backoff: %w", ctx.Err())
			}
		}

		req, err := c.newRequest(ctx, method, url, body, requestID)
		if err != nil {
			return nil, 0, err
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			c.Logger.Warn("API request failed, retrying",
				"attempt", attempt+1,
				"method", method,
				"path", path,
				"request_id", requestID,
				"error", err)
			continue
		}

		respBody, err := readAndClose(resp)
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429)")
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if seconds, parseErr := strconv.Atoi(retryAfter); parseErr == nil {
					select {
					case <-time.After(time.Duration(seconds) * time.Second):
					case <-ctx.Done():
						return nil, 0, ctx.Err()
					}
				}
			}
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error %d: %s", resp.StatusCode, truncate(string(respBody), 200))
			continue
		}

		c.CircuitBreaker.RecordSuccess()
		return respBody, resp.StatusCode, nil
	}

	c.CircuitBreaker.RecordFailure()
	if lastErr == nil {
		lastErr = fmt.Errorf("request failed after %d attempts", c.maxRetries)
	}
	return nil, 0, lastErr
}

func (c *Client) newRequest(ctx context.Context, method, url string, body []byte, requestID string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// newHTTPClient creates an HTTP client with tuned transport settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
