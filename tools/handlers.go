package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/lakeware/databricks-mcp-server/internal/config"
	"github.com/lakeware/databricks-mcp-server/internal/databricks"
	"github.com/lakeware/databricks-mcp-server/internal/render"
	"github.com/lakeware/databricks-mcp-server/metrics"
	"github.com/lakeware/databricks-mcp-server/tracing"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool specs to their concrete client methods.
type HandlerRegistry struct {
	client *databricks.Client
	filter config.ToolFilter
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *databricks.Client, filter config.ToolFilter, logger *slog.Logger) *HandlerRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &HandlerRegistry{
		client: client,
		filter: filter,
		logger: logger,
	}
}

// RegisterAll registers every tool whose capability group passes the
// filter with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	registered, skipped := 0, 0
	for _, spec := range AllTools {
		if !h.filter.Enabled(spec.Group) {
			skipped++
			continue
		}
		h.registerByName(server, spec)
		registered++
	}
	h.logger.Info("Registered tools", "registered", registered, "skipped", skipped)
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)
	c := h.client

	switch spec.Method {
	// Jobs tools
	case "JobsList":
		register(h, server, tool, spec, c.Jobs.List)
	case "JobsGet":
		register(h, server, tool, spec, c.Jobs.Get)
	case "JobsCreate":
		register(h, server, tool, spec, c.Jobs.Create)
	case "JobsDelete":
		register(h, server, tool, spec, c.Jobs.Delete)
	case "JobsRunNow":
		register(h, server, tool, spec, c.Jobs.RunNow)
	case "JobsListRuns":
		register(h, server, tool, spec, c.Jobs.ListRuns)
	case "JobsGetRun":
		register(h, server, tool, spec, c.Jobs.GetRun)
	case "JobsCancelRun":
		register(h, server, tool, spec, c.Jobs.CancelRun)
	case "JobsGetRunOutput":
		register(h, server, tool, spec, c.Jobs.GetRunOutput)
	case "JobsExportRun":
		register(h, server, tool, spec, c.Jobs.ExportRun)

	// Compute tools
	case "ClustersList":
		register(h, server, tool, spec, c.Clusters.List)
	case "ClustersGet":
		register(h, server, tool, spec, c.Clusters.Get)
	case "ClustersCreate":
		register(h, server, tool, spec, c.Clusters.Create)
	case "ClustersStart":
		register(h, server, tool, spec, c.Clusters.Start)
	case "ClustersRestart":
		register(h, server, tool, spec, c.Clusters.Restart)
	case "ClustersTerminate":
		register(h, server, tool, spec, c.Clusters.Terminate)
	case "ClustersResize":
		register(h, server, tool, spec, c.Clusters.Resize)
	case "ClustersListInstancePools":
		register(h, server, tool, spec, c.Clusters.ListInstancePools)
	case "ClustersListPolicies":
		register(h, server, tool, spec, c.Clusters.ListPolicies)

	// SQL tools
	case "SQLListWarehouses":
		register(h, server, tool, spec, c.SQL.ListWarehouses)
	case "SQLGetWarehouse":
		register(h, server, tool, spec, c.SQL.GetWarehouse)
	case "SQLCreateWarehouse":
		register(h, server, tool, spec, c.SQL.CreateWarehouse)
	case "SQLStartWarehouse":
		register(h, server, tool, spec, c.SQL.StartWarehouse)
	case "SQLStopWarehouse":
		register(h, server, tool, spec, c.SQL.StopWarehouse)
	case "SQLDeleteWarehouse":
		register(h, server, tool, spec, c.SQL.DeleteWarehouse)
	case "SQLExecuteStatement":
		register(h, server, tool, spec, c.SQL.ExecuteStatement)
	case "SQLGetStatement":
		register(h, server, tool, spec, c.SQL.GetStatement)
	case "SQLCancelStatement":
		register(h, server, tool, spec, c.SQL.CancelStatement)
	case "SQLListQueries":
		register(h, server, tool, spec, c.SQL.ListQueries)
	case "SQLCreateQuery":
		register(h, server, tool, spec, c.SQL.CreateQuery)
	case "SQLListAlerts":
		register(h, server, tool, spec, c.SQL.ListAlerts)
	case "SQLCreateAlert":
		register(h, server, tool, spec, c.SQL.CreateAlert)
	case "SQLListQueryHistory":
		register(h, server, tool, spec, c.SQL.ListQueryHistory)

	// Unity Catalog tools
	case "CatalogListCatalogs":
		register(h, server, tool, spec, c.Catalog.ListCatalogs)
	case "CatalogGetCatalog":
		register(h, server, tool, spec, c.Catalog.GetCatalog)
	case "CatalogCreateCatalog":
		register(h, server, tool, spec, c.Catalog.CreateCatalog)
	case "CatalogDeleteCatalog":
		register(h, server, tool, spec, c.Catalog.DeleteCatalog)
	case "CatalogListSchemas":
		register(h, server, tool, spec, c.Catalog.ListSchemas)
	case "CatalogCreateSchema":
		register(h, server, tool, spec, c.Catalog.CreateSchema)
	case "CatalogListTables":
		register(h, server, tool, spec, c.Catalog.ListTables)
	case "CatalogGetTable":
		register(h, server, tool, spec, c.Catalog.GetTable)
	case "CatalogGetGrants":
		register(h, server, tool, spec, c.Catalog.GetGrants)
	case "CatalogGetEffectiveGrants":
		register(h, server, tool, spec, c.Catalog.GetEffectiveGrants)
	case "CatalogUpdateGrants":
		register(h, server, tool, spec, c.Catalog.UpdateGrants)
	case "CatalogListMetastores":
		register(h, server, tool, spec, c.Catalog.ListMetastores)
	case "CatalogMetastoreSummary":
		register(h, server, tool, spec, c.Catalog.MetastoreSummary)

	// Pipelines tools
	case "PipelinesList":
		register(h, server, tool, spec, c.Pipelines.List)
	case "PipelinesGet":
		register(h, server, tool, spec, c.Pipelines.Get)
	case "PipelinesCreate":
		register(h, server, tool, spec, c.Pipelines.Create)
	case "PipelinesDelete":
		register(h, server, tool, spec, c.Pipelines.Delete)
	case "PipelinesStartUpdate":
		register(h, server, tool, spec, c.Pipelines.StartUpdate)
	case "PipelinesStop":
		register(h, server, tool, spec, c.Pipelines.Stop)
	case "PipelinesListEvents":
		register(h, server, tool, spec, c.Pipelines.ListEvents)

	// Serving tools
	case "ServingList":
		register(h, server, tool, spec, c.Serving.List)
	case "ServingGet":
		register(h, server, tool, spec, c.Serving.Get)
	case "ServingDelete":
		register(h, server, tool, spec, c.Serving.Delete)
	case "ServingQuery":
		register(h, server, tool, spec, c.Serving.Query)
	case "ServingBuildLogs":
		register(h, server, tool, spec, c.Serving.GetBuildLogs)

	// Secrets tools
	case "SecretsListScopes":
		register(h, server, tool, spec, c.Secrets.ListScopes)
	case "SecretsCreateScope":
		register(h, server, tool, spec, c.Secrets.CreateScope)
	case "SecretsDeleteScope":
		register(h, server, tool, spec, c.Secrets.DeleteScope)
	case "SecretsListSecrets":
		register(h, server, tool, spec, c.Secrets.ListSecrets)
	case "SecretsPutSecret":
		register(h, server, tool, spec, c.Secrets.PutSecret)
	case "SecretsDeleteSecret":
		register(h, server, tool, spec, c.Secrets.DeleteSecret)
	case "SecretsListACLs":
		register(h, server, tool, spec, c.Secrets.ListACLs)
	case "SecretsPutACL":
		register(h, server, tool, spec, c.Secrets.PutACL)

	// IAM tools
	case "IAMListUsers":
		register(h, server, tool, spec, c.IAM.ListUsers)
	case "IAMGetUser":
		register(h, server, tool, spec, c.IAM.GetUser)
	case "IAMCreateUser":
		register(h, server, tool, spec, c.IAM.CreateUser)
	case "IAMDeleteUser":
		register(h, server, tool, spec, c.IAM.DeleteUser)
	case "IAMListGroups":
		register(h, server, tool, spec, c.IAM.ListGroups)
	case "IAMCreateGroup":
		register(h, server, tool, spec, c.IAM.CreateGroup)
	case "IAMDeleteGroup":
		register(h, server, tool, spec, c.IAM.DeleteGroup)
	case "IAMMe":
		register(h, server, tool, spec, c.IAM.Me)
	case "IAMListServicePrincipals":
		register(h, server, tool, spec, c.IAM.ListServicePrincipals)

	// Workspace tools
	case "WorkspaceList":
		register(h, server, tool, spec, c.Workspace.List)
	case "WorkspaceGetStatus":
		register(h, server, tool, spec, c.Workspace.GetStatus)
	case "WorkspaceMkdirs":
		register(h, server, tool, spec, c.Workspace.Mkdirs)
	case "WorkspaceDelete":
		register(h, server, tool, spec, c.Workspace.Delete)
	case "WorkspaceExportNotebook":
		register(h, server, tool, spec, c.Workspace.ExportNotebook)
	case "WorkspaceImportNotebook":
		register(h, server, tool, spec, c.Workspace.ImportNotebook)
	case "WorkspaceListRepos":
		register(h, server, tool, spec, c.Workspace.ListRepos)
	case "WorkspaceGetRepo":
		register(h, server, tool, spec, c.Workspace.GetRepo)
	case "WorkspaceCreateRepo":
		register(h, server, tool, spec, c.Workspace.CreateRepo)
	case "WorkspaceUpdateRepo":
		register(h, server, tool, spec, c.Workspace.UpdateRepo)

	// Dashboards tools
	case "DashboardsList":
		register(h, server, tool, spec, c.Dashboards.List)
	case "DashboardsGet":
		register(h, server, tool, spec, c.Dashboards.Get)
	case "DashboardsCreate":
		register(h, server, tool, spec, c.Dashboards.Create)
	case "DashboardsUpdate":
		register(h, server, tool, spec, c.Dashboards.Update)
	case "DashboardsPublish":
		register(h, server, tool, spec, c.Dashboards.Publish)
	case "DashboardsUnpublish":
		register(h, server, tool, spec, c.Dashboards.Unpublish)
	case "DashboardsTrash":
		register(h, server, tool, spec, c.Dashboards.Trash)
	case "DashboardsMigrate":
		register(h, server, tool, spec, c.Dashboards.Migrate)

	// Token tools
	case "TokensList":
		register(h, server, tool, spec, c.Tokens.List)
	case "TokensCreate":
		register(h, server, tool, spec, c.Tokens.Create)
	case "TokensRevoke":
		register(h, server, tool, spec, c.Tokens.Revoke)

	// Git credential tools
	case "GitCredsList":
		register(h, server, tool, spec, c.GitCreds.List)
	case "GitCredsCreate":
		register(h, server, tool, spec, c.GitCreds.Create)
	case "GitCredsUpdate":
		register(h, server, tool, spec, c.GitCreds.Update)
	case "GitCredsDelete":
		register(h, server, tool, spec, c.GitCreds.Delete)

	// Global init script tools
	case "InitScriptsList":
		register(h, server, tool, spec, c.InitScripts.List)
	case "InitScriptsGet":
		register(h, server, tool, spec, c.InitScripts.Get)
	case "InitScriptsCreate":
		register(h, server, tool, spec, c.InitScripts.Create)
	case "InitScriptsDelete":
		register(h, server, tool, spec, c.InitScripts.Delete)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and
// logging, and collapses the typed result to a single text content block.
// Failures are rendered into the text as well: the protocol-level error
// slot stays empty so the LLM always receives something it can read.
func register[Args any, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (*Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (res *mcp.CallToolResult, _ any, _ error) {
		defer func() {
			if rec := recover(); rec != nil {
				metrics.PanicsRecovered.WithLabelValues(spec.Name).Inc()
				h.logger.Error("Panic recovered",
					"tool", spec.Name,
					"panic", rec,
					"stack", string(debug.Stack()))
				res = textResult(fmt.Sprintf("Error: %s: internal failure: %v", spec.Name, rec))
			}
		}()

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()
		tracing.AddToolAttributes(span, spec.Name, spec.Group)

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		var text string
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			text = render.FormatError(err)
		} else {
			span.SetStatus(codes.Ok, "")
			metrics.RecordRequest(spec.Name, duration, true)
			text = render.ToJSON(result)
		}
		metrics.ResponseSize.WithLabelValues(spec.Name).Observe(float64(len(text)))
		h.logExecution(spec, duration, err)

		return textResult(text), nil, nil
	})
}

// textResult wraps a string as a single-block text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// logExecution logs one tool invocation.
func (h *HandlerRegistry) logExecution(spec ToolSpec, duration float64, err error) {
	attrs := []any{
		"tool", spec.Name,
		"group", spec.Group,
		"duration_seconds", duration,
		"success", err == nil,
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
		h.logger.Warn("Tool executed", attrs...)
		return
	}
	h.logger.Info("Tool executed", attrs...)
}
