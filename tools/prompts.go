package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterPrompts registers guided workflow prompts with the MCP
// server. Each prompt expands into step-by-step instructions that walk
// an agent through a multi-tool workflow.
func RegisterPrompts(server *mcp.Server) {
	addPrompt(server, &mcp.Prompt{
		Name:        "explore_data_catalog",
		Description: "Explore the Unity Catalog data assets systematically",
		Arguments: []*mcp.PromptArgument{
			{Name: "catalog_name", Description: "Catalog to explore; omit to survey all catalogs"},
		},
	}, func(args map[string]string) string {
		return exploreCatalogPrompt(args["catalog_name"])
	})

	addPrompt(server, &mcp.Prompt{
		Name:        "debug_failing_job",
		Description: "Diagnose why a Databricks job is failing",
		Arguments: []*mcp.PromptArgument{
			{Name: "job_id", Description: "The numeric ID of the failing job", Required: true},
		},
	}, func(args map[string]string) string {
		return debugJobPrompt(args["job_id"])
	})

	addPrompt(server, &mcp.Prompt{
		Name:        "setup_data_pipeline",
		Description: "Plan and create a data pipeline for a source table",
		Arguments: []*mcp.PromptArgument{
			{Name: "source_table", Description: "Three-level name of the source table", Required: true},
		},
	}, func(args map[string]string) string {
		return setupPipelinePrompt(args["source_table"])
	})

	addPrompt(server, &mcp.Prompt{
		Name:        "workspace_health_check",
		Description: "Run a comprehensive health check on the Databricks workspace",
	}, func(map[string]string) string {
		return healthCheckPrompt()
	})

	addPrompt(server, &mcp.Prompt{
		Name:        "query_data",
		Description: "Answer a natural language question about the data using SQL",
		Arguments: []*mcp.PromptArgument{
			{Name: "question", Description: "The question to answer from the data", Required: true},
		},
	}, func(args map[string]string) string {
		return queryDataPrompt(args["question"])
	})

	addPrompt(server, &mcp.Prompt{
		Name:        "manage_permissions",
		Description: "Review and manage permissions on a Unity Catalog securable",
		Arguments: []*mcp.PromptArgument{
			{Name: "securable_type", Description: "Kind of object, e.g. catalog, schema, table", Required: true},
			{Name: "full_name", Description: "Full name of the securable", Required: true},
		},
	}, func(args map[string]string) string {
		return managePermissionsPrompt(args["securable_type"], args["full_name"])
	})
}

// addPrompt wires a text-building function into the MCP prompt shape.
func addPrompt(server *mcp.Server, prompt *mcp.Prompt, build func(map[string]string) string) {
	server.AddPrompt(prompt, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Description: prompt.Description,
			Messages: []*mcp.PromptMessage{
				{Role: "user", Content: &mcp.TextContent{Text: build(req.Params.Arguments)}},
			},
		}, nil
	})
}

func exploreCatalogPrompt(catalog string) string {
	if catalog != "" {
		return fmt.Sprintf("I want to explore the data in catalog %q. Please:\n"+
			"1. Call databricks_get_catalog(name=%q) to see catalog details\n"+
			"2. Call databricks_list_schemas(catalog_name=%q) to list all schemas\n"+
			"3. For each schema, call databricks_list_tables to see the tables\n"+
			"4. For the most interesting tables, call databricks_get_table to see columns\n"+
			"5. Summarize what data is available, organized by schema", catalog, catalog, catalog)
	}
	return "I want to explore the data catalog. Please:\n" +
		"1. Call databricks_list_catalogs() to see all available catalogs\n" +
		"2. For each catalog, call databricks_list_schemas to see schemas\n" +
		"3. Pick the most relevant schemas and call databricks_list_tables\n" +
		"4. For key tables, call databricks_get_table to see columns\n" +
		"5. Provide a summary of the data landscape"
}

func debugJobPrompt(jobID string) string {
	return fmt.Sprintf("Job %s is failing. Please diagnose the issue:\n"+
		"1. Call databricks_get_job(job_id=%s) to see the job configuration\n"+
		"2. Call databricks_list_runs(job_id=%s) to find recent failed runs\n"+
		"3. For the most recent failed run, call databricks_get_run to see the error state\n"+
		"4. Call databricks_get_run_output for the failed run to see error messages and logs\n"+
		"5. If the job runs on an existing cluster, check it with databricks_get_cluster\n"+
		"6. Summarize the root cause and suggest a fix", jobID, jobID, jobID)
}

func setupPipelinePrompt(sourceTable string) string {
	return fmt.Sprintf("Set up a data pipeline for source table %q. Please:\n"+
		"1. Call databricks_get_table(full_name=%q) to understand the source data\n"+
		"2. Check available SQL warehouses with databricks_list_warehouses\n"+
		"3. If no warehouse is running, start one with databricks_start_warehouse\n"+
		"4. Preview the data with databricks_execute_sql: SELECT * FROM %s LIMIT 10\n"+
		"5. Suggest a transformation pipeline: cleaning steps, target table structure,\n"+
		"   and whether to use a DLT pipeline or a job\n"+
		"6. Offer to create it with databricks_create_pipeline or databricks_create_job",
		sourceTable, sourceTable, sourceTable)
}

func healthCheckPrompt() string {
	return "Run a health check on this Databricks workspace. Please check:\n" +
		"1. Call databricks_get_current_user() to confirm authentication\n" +
		"2. Call databricks_list_clusters() -- report how many are running vs terminated\n" +
		"3. Call databricks_list_warehouses() -- report status of each warehouse\n" +
		"4. Call databricks_list_jobs() -- count total jobs, check for recent failures\n" +
		"5. Call databricks_list_serving_endpoints() -- report endpoint health\n" +
		"6. Call databricks_list_catalogs() -- verify Unity Catalog access\n" +
		"7. Provide a summary: auth status, cluster counts, warehouse states,\n" +
		"   job totals, endpoint health, and catalog access"
}

func queryDataPrompt(question string) string {
	return fmt.Sprintf("The user wants to know: %q\n\n"+
		"Please answer this by querying the data:\n"+
		"1. Explore the catalog with databricks_list_catalogs, databricks_list_schemas,\n"+
		"   and databricks_list_tables; use databricks_get_table to check column types\n"+
		"2. Find a running SQL warehouse with databricks_list_warehouses;\n"+
		"   if none are running, start one with databricks_start_warehouse\n"+
		"3. Write and execute a SQL query with databricks_execute_sql\n"+
		"4. Present the results clearly, answering the original question\n"+
		"5. If the first query doesn't fully answer it, refine and re-query", question)
}

func managePermissionsPrompt(securableType, fullName string) string {
	return fmt.Sprintf("Review and manage permissions for %s %q. Please:\n"+
		"1. Get current grants with databricks_get_grants(securable_type=%q, full_name=%q)\n"+
		"2. Get inherited access with databricks_get_effective_grants\n"+
		"3. List relevant principals with databricks_list_users and databricks_list_groups\n"+
		"4. Present a clear permissions matrix showing who has what access\n"+
		"5. Ask if any permissions should be added, changed, or revoked\n"+
		"6. If changes are requested, apply them with databricks_update_grants",
		securableType, fullName, securableType, fullName)
}
