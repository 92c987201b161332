// Package databricks implements a typed client for the Databricks REST
// API, organized into the same service groups the workspace exposes:
// jobs, compute, SQL, Unity Catalog, pipelines, serving, secrets,
// identity, the workspace file tree, Lakeview dashboards, and
// workspace administration (tokens, Git credentials, init scripts).
package databricks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lakeware/databricks-mcp-server/internal/base"
	"github.com/lakeware/databricks-mcp-server/internal/config"
	"github.com/lakeware/databricks-mcp-server/metrics"
	"github.com/lakeware/databricks-mcp-server/tracing"
)

// listCacheTTL bounds staleness for cached listings. Resource state
// (cluster lifecycle, run status) changes quickly, so reads that matter
// for polling bypass the cache entirely.
const listCacheTTL = 30 * time.Second

// Client is the workspace API client. Each field groups the operations
// of one Databricks service.
type Client struct {
	base *base.Client
	log  *slog.Logger

	Jobs        JobsAPI
	Clusters    ClustersAPI
	SQL         SQLAPI
	Catalog     CatalogAPI
	Pipelines   PipelinesAPI
	Serving     ServingAPI
	Secrets     SecretsAPI
	IAM         IAMAPI
	Workspace   WorkspaceAPI
	Dashboards  DashboardsAPI
	Tokens      TokensAPI
	GitCreds    GitCredentialsAPI
	InitScripts InitScriptsAPI
}

// New creates a Client for the workspace described by cfg.
func New(cfg *config.Config, logger *slog.Logger) *Client {
	b := base.NewClient(cfg.Host, cfg.Token,
		base.WithLogger(logger),
		base.WithTimeout(cfg.Timeout),
		base.WithUserAgent(cfg.UserAgent),
		base.WithMaxRetries(cfg.MaxRetries),
	)
	return newClient(b, logger)
}

// NewWithBase creates a Client on top of an existing base client. Tests
// use this to point the client at a local HTTP server.
func NewWithBase(b *base.Client, logger *slog.Logger) *Client {
	return newClient(b, logger)
}

func newClient(b *base.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{base: b, log: logger}
	c.Jobs = JobsAPI{c}
	c.Clusters = ClustersAPI{c}
	c.SQL = SQLAPI{c}
	c.Catalog = CatalogAPI{c}
	c.Pipelines = PipelinesAPI{c}
	c.Serving = ServingAPI{c}
	c.Secrets = SecretsAPI{c}
	c.IAM = IAMAPI{c}
	c.Workspace = WorkspaceAPI{c}
	c.Dashboards = DashboardsAPI{c}
	c.Tokens = TokensAPI{c}
	c.GitCreds = GitCredentialsAPI{c}
	c.InitScripts = InitScriptsAPI{c}
	return c
}

// Host returns the workspace URL this client targets.
func (c *Client) Host() string {
	return c.base.BaseURL()
}

// invalidate drops cached listings for a service after a mutation.
func (c *Client) invalidate(service string) {
	c.base.Cache.DeletePrefix(service + ":")
	metrics.SetCacheSize(c.base.Cache.Size())
}

// apiCall performs one instrumented request against the workspace API
// and decodes the JSON response into T. Non-2xx responses become
// *APIError.
func apiCall[T any](ctx context.Context, c *Client, service, action, method, path string, payload any) (*T, error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "databricks."+service+"."+action)
	defer span.End()
	tracing.AddAPIAttributes(span, service, action)

	body, status, err := c.base.Do(ctx, method, path, payload)
	if err != nil {
		tracing.RecordError(span, err)
		metrics.RecordAPICall(service, action, time.Since(start).Seconds(), false, "")
		return nil, err
	}

	if status >= 400 {
		apiErr := parseAPIError(status, body)
		tracing.RecordError(span, apiErr)
		metrics.RecordAPICall(service, action, time.Since(start).Seconds(), false, apiErr.Code)
		c.log.Debug("API call failed",
			"service", service,
			"action", action,
			"status", status,
			"error_code", apiErr.Code)
		return nil, apiErr
	}

	var out T
	if len(body) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("failed to decode %s.%s response: %w", service, action, err)
		}
	}
	metrics.RecordAPICall(service, action, time.Since(start).Seconds(), true, "")
	return &out, nil
}

// apiGet performs an instrumented GET.
func apiGet[T any](ctx context.Context, c *Client, service, action, path string) (*T, error) {
	return apiCall[T](ctx, c, service, action, http.MethodGet, path, nil)
}

// apiPost performs an instrumented POST with a JSON payload.
func apiPost[T any](ctx context.Context, c *Client, service, action, path string, payload any) (*T, error) {
	return apiCall[T](ctx, c, service, action, http.MethodPost, path, payload)
}

// apiDelete performs an instrumented DELETE. payload may be nil.
func apiDelete[T any](ctx context.Context, c *Client, service, action, path string, payload any) (*T, error) {
	return apiCall[T](ctx, c, service, action, http.MethodDelete, path, payload)
}

// apiGetCached is apiGet with a read-through cache and deduplication of
// identical concurrent requests. Only listings whose staleness is
// tolerable go through here.
func apiGetCached[T any](ctx context.Context, c *Client, service, action, path string, ttl time.Duration) (*T, error) {
	key := service + ":" + path
	if v, ok := c.base.Cache.Get(key); ok {
		metrics.RecordCacheAccess(true)
		return v.(*T), nil
	}
	metrics.RecordCacheAccess(false)

	v, _, err := c.base.Dedup.Do(ctx, key, func() (any, error) {
		return apiGet[T](ctx, c, service, action, path)
	})
	if err != nil {
		return nil, err
	}
	out := v.(*T)
	c.base.Cache.Set(key, out, ttl)
	metrics.SetCacheSize(c.base.Cache.Size())
	return out, nil
}
