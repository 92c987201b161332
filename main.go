// Databricks MCP Server - A Model Context Protocol server for Databricks
// workspaces. Exposes jobs, clusters, SQL, Unity Catalog, pipelines,
// serving, secrets, IAM, workspace, dashboard, and workspace
// administration operations as MCP tools, plus guided workflow prompts
// and a workspace info resource.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lakeware/databricks-mcp-server/internal/config"
	"github.com/lakeware/databricks-mcp-server/internal/databricks"
	"github.com/lakeware/databricks-mcp-server/metrics"
	"github.com/lakeware/databricks-mcp-server/tools"
	"github.com/lakeware/databricks-mcp-server/tracing"
)

const (
	ServerName    = "databricks-mcp-server"
	ServerVersion = "1.0.0"
)

const serverInstructions = `Databricks MCP Server provides tools for managing a Databricks workspace.

Capability groups: jobs, compute, sql, unity_catalog, pipelines, serving,
secrets, iam, workspace, dashboards, tokens, git_credentials, global_init_scripts.
All tools return JSON text. Failures are returned as readable error strings
(e.g. "APIError: [RESOURCE_DOES_NOT_EXIST] Job 42 does not exist."), never
as protocol errors, so results are always safe to show to the user.

Configure via environment variables:
- DATABRICKS_HOST: Workspace URL (e.g. https://adb-1234.5.azuredatabricks.net)
- DATABRICKS_TOKEN: Personal access token
- DATABRICKS_MCP_TOOLS_INCLUDE / DATABRICKS_MCP_TOOLS_EXCLUDE: comma-separated
  capability groups to register (include wins when both are set)
- DATABRICKS_MCP_CONFIG: optional TOML file; env vars override file values`

func main() {
	httpAddr := flag.String("http", "", "serve MCP over HTTP on this address (e.g. :8080) instead of stdio")
	flag.Parse()

	// Log to stderr: stdout carries the MCP protocol on the stdio transport.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("Tracing shutdown failed", "error", err)
		}
	}()

	client := databricks.New(cfg, logger)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	registry := tools.NewHandlerRegistry(client, cfg.Filter, logger)
	registry.RegisterAll(server)
	tools.RegisterPrompts(server)
	tools.RegisterResources(server, client)

	logger.Info("Starting Databricks MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"host", cfg.Host,
	)

	if *httpAddr != "" {
		if err := runHTTP(*httpAddr, server, logger); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// runHTTP serves the streamable MCP handler plus operational endpoints.
func runHTTP(addr string, server *mcp.Server, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Serving MCP over HTTP", "addr", addr)
	return srv.ListenAndServe()
}

// newRouter builds the HTTP transport router: the streamable MCP handler
// on /mcp plus Prometheus metrics and a liveness probe.
func newRouter(server *mcp.Server) http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	r := chi.NewRouter()
	r.Use(httpMetrics)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/mcp", streamable)
	return r
}

// httpMetrics records request counts and latency for the HTTP transport.
func httpMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
