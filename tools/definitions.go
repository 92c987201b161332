package tools

// AllTools contains all tool specifications for the Databricks MCP server.
// Tools are organized by capability group for easier maintenance.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// JOBS
	// ==========================================================================
	{
		Name:   "databricks_list_jobs",
		Method: "JobsList",
		Title:  "List Jobs",
		Group:  "jobs",
		Description: `List job definitions in the workspace.

USE WHEN: User asks "what jobs exist", "show scheduled jobs", "find the ETL job".

NOT FOR: Listing executions of a job (use databricks_list_runs instead).

RETURNS: JSON array of jobs with job_id, name, tasks, and schedule. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_job",
		Method: "JobsGet",
		Title:  "Get Job",
		Group:  "jobs",
		Description: `Get the full definition of one job.

USE WHEN: User asks "show me job 42", "what does the nightly job run", "what cluster does job X use".

NOT FOR: Run status (use databricks_get_run instead).

RETURNS: JSON object with all tasks, cluster configuration, schedule, and notifications.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_job",
		Method: "JobsCreate",
		Title:  "Create Job",
		Group:  "jobs",
		Description: `Create a single-task job running a notebook or Python file.

USE WHEN: User says "create a job that runs notebook X", "schedule this script as a job".

NOT FOR: Multi-task jobs or complex schedules (use the Databricks UI). Not for running an existing job (use databricks_run_job).

RETURNS: JSON confirmation with the new job_id. Exactly one of notebook_path or python_file must be provided.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_delete_job",
		Method: "JobsDelete",
		Title:  "Delete Job",
		Group:  "jobs",
		Description: `Permanently delete a job and cancel its active runs.

USE WHEN: User says "delete job 42", "remove the old ETL job".

NOT FOR: Stopping a single run (use databricks_cancel_run instead).

RETURNS: JSON confirmation. This action cannot be undone.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_run_job",
		Method: "JobsRunNow",
		Title:  "Run Job",
		Group:  "jobs",
		Description: `Trigger a new run of an existing job with its default parameters.

USE WHEN: User says "run job 42 now", "kick off the nightly job".

NOT FOR: Creating a new job (use databricks_create_job instead).

RETURNS: JSON with the run_id. The run executes asynchronously; poll with databricks_get_run.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_list_runs",
		Method: "JobsListRuns",
		Title:  "List Runs",
		Group:  "jobs",
		Description: `List job runs, newest first, optionally filtered by job.

USE WHEN: User asks "did the nightly job succeed", "show recent runs", "run history for job X".

NOT FOR: One run's details (use databricks_get_run instead).

RETURNS: JSON array of runs with run_id, state, start/end times. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_run",
		Method: "JobsGetRun",
		Title:  "Get Run",
		Group:  "jobs",
		Description: `Get the status and details of one job run.

USE WHEN: User asks "is run 777 finished", "why did the run fail".

NOT FOR: The run's produced output (use databricks_get_run_output instead).

RETURNS: JSON with lifecycle state (PENDING, RUNNING, TERMINATED), result state, and error messages.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_cancel_run",
		Method: "JobsCancelRun",
		Title:  "Cancel Run",
		Group:  "jobs",
		Description: `Cancel an active job run.

USE WHEN: User says "stop run 777", "cancel the running job".

NOT FOR: Deleting the job definition (use databricks_delete_job instead).

RETURNS: JSON confirmation. Cancellation is asynchronous; verify with databricks_get_run.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_get_run_output",
		Method: "JobsGetRunOutput",
		Title:  "Get Run Output",
		Group:  "jobs",
		Description: `Get the output produced by a completed run.

USE WHEN: User asks "what did the run print", "show the notebook exit value", "get run logs".

NOT FOR: Run status (use databricks_get_run instead).

RETURNS: JSON with notebook output, stdout/stderr logs, or SQL results depending on the task type.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_export_run",
		Method: "JobsExportRun",
		Title:  "Export Run",
		Group:  "jobs",
		Description: `Export a run's rendered notebook content as HTML.

USE WHEN: User wants the full rendered notebook of a run, including cell outputs and charts.

NOT FOR: Plain logs or exit values (use databricks_get_run_output instead).

RETURNS: JSON with one HTML view per notebook.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// COMPUTE
	// ==========================================================================
	{
		Name:   "databricks_list_clusters",
		Method: "ClustersList",
		Title:  "List Clusters",
		Group:  "compute",
		Description: `List compute clusters, both running and terminated.

USE WHEN: User asks "what clusters exist", "which clusters are running".

NOT FOR: SQL warehouses (use databricks_list_warehouses instead).

RETURNS: JSON array with cluster_id, cluster_name, state, spark_version, node types. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_cluster",
		Method: "ClustersGet",
		Title:  "Get Cluster",
		Group:  "compute",
		Description: `Get full details of one compute cluster.

USE WHEN: User asks "show cluster X", "why is the cluster terminated", "what runtime is cluster X on".

RETURNS: JSON with state, state_message, spark_version, node types, autoscale config, and spark_conf.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_cluster",
		Method: "ClustersCreate",
		Title:  "Create Cluster",
		Group:  "compute",
		Description: `Create an all-purpose compute cluster.

USE WHEN: User says "create a cluster with 4 workers", "spin up a cluster on runtime 15.0".

NOT FOR: SQL-only workloads (use databricks_create_warehouse instead).

RETURNS: JSON with the new cluster_id. Set both autoscale_min and autoscale_max for autoscaling, otherwise num_workers is used.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_start_cluster",
		Method: "ClustersStart",
		Title:  "Start Cluster",
		Group:  "compute",
		Description: `Start a terminated compute cluster.

USE WHEN: User says "start cluster X", "bring the dev cluster back up".

RETURNS: JSON confirmation. Startup takes minutes; this returns immediately.`,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_restart_cluster",
		Method: "ClustersRestart",
		Title:  "Restart Cluster",
		Group:  "compute",
		Description: `Restart a running cluster's driver and workers.

USE WHEN: User says "restart the cluster", "clear cached state on cluster X".

NOT FOR: Starting a terminated cluster (use databricks_start_cluster instead).

RETURNS: JSON confirmation; the restart proceeds asynchronously.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_terminate_cluster",
		Method: "ClustersTerminate",
		Title:  "Terminate Cluster",
		Group:  "compute",
		Description: `Terminate a running cluster, releasing its cloud resources.

USE WHEN: User says "stop cluster X", "shut down the dev cluster to save cost".

NOT FOR: Deleting the configuration permanently; terminated clusters can be restarted.

RETURNS: JSON confirmation; running workloads are stopped.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_resize_cluster",
		Method: "ClustersResize",
		Title:  "Resize Cluster",
		Group:  "compute",
		Description: `Change the worker count of a running cluster.

USE WHEN: User says "scale cluster X to 8 workers", "shrink the cluster".

RETURNS: JSON confirmation. The resize is graceful and does not interrupt running tasks.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_list_instance_pools",
		Method: "ClustersListInstancePools",
		Title:  "List Instance Pools",
		Group:  "compute",
		Description: `List instance pools of warm, ready-to-use instances.

USE WHEN: User asks "what instance pools exist", "is there a pool for i3.xlarge".

RETURNS: JSON array with pool id, name, node type, and idle instance counts. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_list_cluster_policies",
		Method: "ClustersListPolicies",
		Title:  "List Cluster Policies",
		Group:  "compute",
		Description: `List cluster policies that constrain cluster creation.

USE WHEN: User asks "what cluster policies apply", "which policy should I use".

RETURNS: JSON array with policy_id, name, description, and definition. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// SQL
	// ==========================================================================
	{
		Name:   "databricks_list_warehouses",
		Method: "SQLListWarehouses",
		Title:  "List Warehouses",
		Group:  "sql",
		Description: `List SQL warehouses in the workspace.

USE WHEN: User asks "what warehouses exist", "which warehouse is running", or needs a warehouse_id for queries.

NOT FOR: Spark clusters (use databricks_list_clusters instead).

RETURNS: JSON array with id, name, state, cluster_size, and auto-stop settings. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_warehouse",
		Method: "SQLGetWarehouse",
		Title:  "Get Warehouse",
		Group:  "sql",
		Description: `Get details of one SQL warehouse.

USE WHEN: User asks "show warehouse X", "is the warehouse healthy".

RETURNS: JSON with name, state, cluster_size, auto_stop_mins, num_clusters, and health.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_warehouse",
		Method: "SQLCreateWarehouse",
		Title:  "Create Warehouse",
		Group:  "sql",
		Description: `Create a serverless SQL warehouse.

USE WHEN: User says "create a small SQL warehouse", "set up a warehouse for the BI team".

RETURNS: JSON with the new warehouse id. Defaults: 2X-Small, one cluster, 15 minute auto-stop.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_start_warehouse",
		Method: "SQLStartWarehouse",
		Title:  "Start Warehouse",
		Group:  "sql",
		Description: `Start a stopped SQL warehouse.

USE WHEN: User says "start the warehouse" before running queries.

RETURNS: JSON confirmation; the warehouse takes a few minutes to become running.`,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_stop_warehouse",
		Method: "SQLStopWarehouse",
		Title:  "Stop Warehouse",
		Group:  "sql",
		Description: `Stop a running SQL warehouse to save cost.

USE WHEN: User says "stop the warehouse", "shut down SQL compute".

RETURNS: JSON confirmation. Any running queries are terminated.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_delete_warehouse",
		Method: "SQLDeleteWarehouse",
		Title:  "Delete Warehouse",
		Group:  "sql",
		Description: `Permanently delete a SQL warehouse.

USE WHEN: User says "delete warehouse X".

NOT FOR: Temporarily stopping it (use databricks_stop_warehouse instead).

RETURNS: JSON confirmation. This action cannot be undone.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_execute_sql",
		Method: "SQLExecuteStatement",
		Title:  "Execute SQL",
		Group:  "sql",
		Description: `Execute a SQL statement on a SQL warehouse.

USE WHEN: User asks "run this query", "how many rows are in table X", "select from ...".

NOT FOR: Saving a reusable query (use databricks_create_query instead).

RETURNS: JSON with status, column manifest, and inline rows. Waits up to 50 seconds; poll databricks_get_statement_status for longer statements.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_get_statement_status",
		Method: "SQLGetStatement",
		Title:  "Get Statement Status",
		Group:  "sql",
		Description: `Get the status and results of a previously executed statement.

USE WHEN: Polling a long-running statement started by databricks_execute_sql.

RETURNS: JSON with state (PENDING, RUNNING, SUCCEEDED, FAILED) and results once complete.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_cancel_statement",
		Method: "SQLCancelStatement",
		Title:  "Cancel Statement",
		Group:  "sql",
		Description: `Cancel an executing SQL statement.

USE WHEN: User says "stop that query".

RETURNS: JSON confirmation. Cancellation may not be immediate; poll the statement status to confirm.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_list_queries",
		Method: "SQLListQueries",
		Title:  "List Queries",
		Group:  "sql",
		Description: `List saved SQL queries accessible to the current user.

USE WHEN: User asks "what saved queries exist", "find the revenue query".

NOT FOR: Execution history (use databricks_list_query_history instead).

RETURNS: JSON array with id, display_name, query_text. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_query",
		Method: "SQLCreateQuery",
		Title:  "Create Query",
		Group:  "sql",
		Description: `Create a saved, reusable SQL query.

USE WHEN: User says "save this query", "create a query for the dashboard".

NOT FOR: One-off execution (use databricks_execute_sql instead).

RETURNS: JSON with the created query's id.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_list_alerts",
		Method: "SQLListAlerts",
		Title:  "List Alerts",
		Group:  "sql",
		Description: `List SQL alerts accessible to the current user.

USE WHEN: User asks "what alerts are configured", "is there an alert on failures".

RETURNS: JSON array with id, name, query, and condition. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_alert",
		Method: "SQLCreateAlert",
		Title:  "Create Alert",
		Group:  "sql",
		Description: `Create an alert that fires when a saved query's result meets a condition.

USE WHEN: User says "alert me when error_count exceeds 100", "create an alert on the revenue query".

RETURNS: JSON with the created alert. Requires a result column, a comparison operator, and (except for IS_NULL) a threshold.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_list_query_history",
		Method: "SQLListQueryHistory",
		Title:  "List Query History",
		Group:  "sql",
		Description: `List recently executed queries with status and duration.

USE WHEN: User asks "what queries ran today", "which queries are slow", "who queried table X".

NOT FOR: Saved query definitions (use databricks_list_queries instead).

RETURNS: JSON array of executions with query_text, status, duration, and warehouse. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// UNITY CATALOG
	// ==========================================================================
	{
		Name:   "databricks_list_catalogs",
		Method: "CatalogListCatalogs",
		Title:  "List Catalogs",
		Group:  "unity_catalog",
		Description: `List Unity Catalog catalogs visible to the current principal.

USE WHEN: User asks "what catalogs exist", "show the data catalogs".

RETURNS: JSON array with name, owner, comment. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_catalog",
		Method: "CatalogGetCatalog",
		Title:  "Get Catalog",
		Group:  "unity_catalog",
		Description: `Get details of one catalog.

USE WHEN: User asks "who owns catalog main", "show catalog X".

RETURNS: JSON with name, owner, type, and timestamps.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_catalog",
		Method: "CatalogCreateCatalog",
		Title:  "Create Catalog",
		Group:  "unity_catalog",
		Description: `Create a catalog in the metastore.

USE WHEN: User says "create a catalog named analytics".

RETURNS: JSON with the created catalog.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_delete_catalog",
		Method: "CatalogDeleteCatalog",
		Title:  "Delete Catalog",
		Group:  "unity_catalog",
		Description: `Delete a catalog from the metastore.

USE WHEN: User says "delete catalog X". Set force to delete a non-empty catalog.

RETURNS: JSON confirmation. This action cannot be undone.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_list_schemas",
		Method: "CatalogListSchemas",
		Title:  "List Schemas",
		Group:  "unity_catalog",
		Description: `List schemas (databases) in a catalog.

USE WHEN: User asks "what schemas are in catalog main", "show databases".

RETURNS: JSON array with name, full_name, owner. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_schema",
		Method: "CatalogCreateSchema",
		Title:  "Create Schema",
		Group:  "unity_catalog",
		Description: `Create a schema in a catalog.

USE WHEN: User says "create schema staging in catalog main".

RETURNS: JSON with the created schema.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_list_tables",
		Method: "CatalogListTables",
		Title:  "List Tables",
		Group:  "unity_catalog",
		Description: `List tables in a schema, including column metadata.

USE WHEN: User asks "what tables are in main.sales", "show tables in that schema".

NOT FOR: One table's full details (use databricks_get_table instead).

RETURNS: JSON array with name, table_type, columns. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_table",
		Method: "CatalogGetTable",
		Title:  "Get Table",
		Group:  "unity_catalog",
		Description: `Get one table by its three-level name (catalog.schema.table).

USE WHEN: User asks "describe main.sales.orders", "what columns does table X have".

RETURNS: JSON with columns, types, owner, and storage format.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_grants",
		Method: "CatalogGetGrants",
		Title:  "Get Grants",
		Group:  "unity_catalog",
		Description: `Get privileges granted directly on a Unity Catalog securable.

USE WHEN: User asks "who can read table X", "show permissions on catalog main".

NOT FOR: Inherited privileges (use databricks_get_effective_grants instead).

RETURNS: JSON array of principal/privilege assignments.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_effective_grants",
		Method: "CatalogGetEffectiveGrants",
		Title:  "Get Effective Grants",
		Group:  "unity_catalog",
		Description: `Get direct plus inherited privileges on a Unity Catalog securable.

USE WHEN: User asks "what access does alice actually have on this table", including grants inherited from the parent catalog or schema.

RETURNS: JSON array of principal/privilege assignments including inherited ones.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_update_grants",
		Method: "CatalogUpdateGrants",
		Title:  "Update Grants",
		Group:  "unity_catalog",
		Description: `Grant or revoke privileges for one principal on a securable.

USE WHEN: User says "give the data team SELECT on main.sales", "revoke MODIFY from bob".

RETURNS: JSON with the resulting privilege assignments. Provide add and/or remove lists.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_list_metastores",
		Method: "CatalogListMetastores",
		Title:  "List Metastores",
		Group:  "unity_catalog",
		Description: `List Unity Catalog metastores visible to the account.

USE WHEN: User asks "what metastores exist", "which regions have metastores".

RETURNS: JSON array with metastore_id, name, cloud, region. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_metastore_summary",
		Method: "CatalogMetastoreSummary",
		Title:  "Get Metastore Summary",
		Group:  "unity_catalog",
		Description: `Get the metastore assigned to this workspace.

USE WHEN: User asks "which metastore is this workspace using", "where is the metastore storage root".

RETURNS: JSON with metastore_id, name, cloud, region, and storage root.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// PIPELINES
	// ==========================================================================
	{
		Name:   "databricks_list_pipelines",
		Method: "PipelinesList",
		Title:  "List Pipelines",
		Group:  "pipelines",
		Description: `List Delta Live Tables pipelines.

USE WHEN: User asks "what DLT pipelines exist", "show streaming pipelines".

RETURNS: JSON array with pipeline_id, name, state. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_pipeline",
		Method: "PipelinesGet",
		Title:  "Get Pipeline",
		Group:  "pipelines",
		Description: `Get one pipeline's spec and latest update state.

USE WHEN: User asks "show pipeline X", "is the pipeline healthy".

RETURNS: JSON with spec, state, and latest update.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_pipeline",
		Method: "PipelinesCreate",
		Title:  "Create Pipeline",
		Group:  "pipelines",
		Description: `Create a DLT pipeline defined by a notebook.

USE WHEN: User says "create a pipeline from notebook X publishing to schema Y".

RETURNS: JSON with the new pipeline_id.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_delete_pipeline",
		Method: "PipelinesDelete",
		Title:  "Delete Pipeline",
		Group:  "pipelines",
		Description: `Permanently delete a pipeline.

USE WHEN: User says "delete pipeline X". Published tables are not dropped.

RETURNS: JSON confirmation.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_start_pipeline",
		Method: "PipelinesStartUpdate",
		Title:  "Start Pipeline",
		Group:  "pipelines",
		Description: `Trigger a pipeline update.

USE WHEN: User says "run the pipeline", "refresh the DLT tables". Set full_refresh to recompute from scratch.

RETURNS: JSON with the update_id; the update runs asynchronously.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_stop_pipeline",
		Method: "PipelinesStop",
		Title:  "Stop Pipeline",
		Group:  "pipelines",
		Description: `Stop a pipeline's current update.

USE WHEN: User says "stop the pipeline", "pause the continuous pipeline".

RETURNS: JSON confirmation.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_list_pipeline_events",
		Method: "PipelinesListEvents",
		Title:  "List Pipeline Events",
		Group:  "pipelines",
		Description: `List recent entries from a pipeline's event log.

USE WHEN: User asks "why did the pipeline fail", "show pipeline errors".

RETURNS: JSON array of events with level, type, and message. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// SERVING
	// ==========================================================================
	{
		Name:   "databricks_list_serving_endpoints",
		Method: "ServingList",
		Title:  "List Serving Endpoints",
		Group:  "serving",
		Description: `List model serving endpoints.

USE WHEN: User asks "what models are deployed", "show serving endpoints".

RETURNS: JSON array with name, state, and served entities. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_serving_endpoint",
		Method: "ServingGet",
		Title:  "Get Serving Endpoint",
		Group:  "serving",
		Description: `Get one serving endpoint's configuration and readiness.

USE WHEN: User asks "is endpoint X ready", "what model version is endpoint X serving".

RETURNS: JSON with state, config, and served entities.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_delete_serving_endpoint",
		Method: "ServingDelete",
		Title:  "Delete Serving Endpoint",
		Group:  "serving",
		Description: `Delete a serving endpoint and release its compute.

USE WHEN: User says "tear down endpoint X", "undeploy the model".

RETURNS: JSON confirmation.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_query_serving_endpoint",
		Method: "ServingQuery",
		Title:  "Query Serving Endpoint",
		Group:  "serving",
		Description: `Send inputs to a serving endpoint and return predictions.

USE WHEN: User says "test the model with this input", "score these features".

RETURNS: JSON with predictions (or chat choices for LLM endpoints). Inputs must be JSON-encoded.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_get_serving_endpoint_logs",
		Method: "ServingBuildLogs",
		Title:  "Get Serving Build Logs",
		Group:  "serving",
		Description: `Get the container build logs of a served model.

USE WHEN: User asks "why won't the endpoint become ready", "show the model build logs".

RETURNS: JSON with the build log text.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// SECRETS
	// ==========================================================================
	{
		Name:   "databricks_list_secret_scopes",
		Method: "SecretsListScopes",
		Title:  "List Secret Scopes",
		Group:  "secrets",
		Description: `List secret scopes in the workspace.

USE WHEN: User asks "what secret scopes exist".

RETURNS: JSON array with scope name and backend type. Secret values are never returned.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_secret_scope",
		Method: "SecretsCreateScope",
		Title:  "Create Secret Scope",
		Group:  "secrets",
		Description: `Create a Databricks-backed secret scope.

USE WHEN: User says "create a scope for the API keys".

RETURNS: JSON confirmation.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_delete_secret_scope",
		Method: "SecretsDeleteScope",
		Title:  "Delete Secret Scope",
		Group:  "secrets",
		Description: `Delete a scope and every secret in it.

USE WHEN: User says "delete scope X".

RETURNS: JSON confirmation. This action cannot be undone.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_list_secrets",
		Method: "SecretsListSecrets",
		Title:  "List Secrets",
		Group:  "secrets",
		Description: `List the secret keys in a scope.

USE WHEN: User asks "what secrets are in scope X".

RETURNS: JSON array of keys and update timestamps. Values are write-only and never returned.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_put_secret",
		Method: "SecretsPutSecret",
		Title:  "Put Secret",
		Group:  "secrets",
		Description: `Store a secret value, overwriting any existing value for the key.

USE WHEN: User says "store this API key in scope X".

RETURNS: JSON confirmation. The value is never echoed back.`,
		Destructive: true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_delete_secret",
		Method: "SecretsDeleteSecret",
		Title:  "Delete Secret",
		Group:  "secrets",
		Description: `Delete one secret from a scope.

USE WHEN: User says "remove the old API key".

RETURNS: JSON confirmation.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_list_secret_acls",
		Method: "SecretsListACLs",
		Title:  "List Secret ACLs",
		Group:  "secrets",
		Description: `List who can access a secret scope.

USE WHEN: User asks "who can read scope X".

RETURNS: JSON array of principal/permission pairs.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_put_secret_acl",
		Method: "SecretsPutACL",
		Title:  "Put Secret ACL",
		Group:  "secrets",
		Description: `Grant or update a principal's permission on a scope.

USE WHEN: User says "give the data team READ on scope X".

RETURNS: JSON confirmation. Permission must be READ, WRITE, or MANAGE.`,
		OpenWorld: true,
	},

	// ==========================================================================
	// IAM
	// ==========================================================================
	{
		Name:   "databricks_list_users",
		Method: "IAMListUsers",
		Title:  "List Users",
		Group:  "iam",
		Description: `List workspace users, optionally filtered by a SCIM expression.

USE WHEN: User asks "who has access to the workspace", "find user alice".

RETURNS: JSON array with id, userName, displayName, active. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_user",
		Method: "IAMGetUser",
		Title:  "Get User",
		Group:  "iam",
		Description: `Get one user including group memberships.

USE WHEN: User asks "what groups is alice in", "show user X".

RETURNS: JSON with userName, emails, and groups.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_user",
		Method: "IAMCreateUser",
		Title:  "Create User",
		Group:  "iam",
		Description: `Add a user to the workspace.

USE WHEN: User says "add bob@example.com to the workspace".

RETURNS: JSON with the created user's SCIM id.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_delete_user",
		Method: "IAMDeleteUser",
		Title:  "Delete User",
		Group:  "iam",
		Description: `Remove a user from the workspace.

USE WHEN: User says "remove bob from the workspace".

RETURNS: JSON confirmation.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_list_groups",
		Method: "IAMListGroups",
		Title:  "List Groups",
		Group:  "iam",
		Description: `List workspace groups.

USE WHEN: User asks "what groups exist", "find the admins group".

RETURNS: JSON array with id, displayName, members. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_group",
		Method: "IAMCreateGroup",
		Title:  "Create Group",
		Group:  "iam",
		Description: `Create an empty workspace group.

USE WHEN: User says "create a group for the data team".

RETURNS: JSON with the created group's SCIM id.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_delete_group",
		Method: "IAMDeleteGroup",
		Title:  "Delete Group",
		Group:  "iam",
		Description: `Delete a workspace group. Members are not deleted.

USE WHEN: User says "delete group X".

RETURNS: JSON confirmation.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_get_current_user",
		Method: "IAMMe",
		Title:  "Get Current User",
		Group:  "iam",
		Description: `Get the identity this server is authenticated as.

USE WHEN: User asks "who am I connected as", "which account is the token for".

RETURNS: JSON with userName and group memberships of the calling principal.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_list_service_principals",
		Method: "IAMListServicePrincipals",
		Title:  "List Service Principals",
		Group:  "iam",
		Description: `List service principals in the workspace.

USE WHEN: User asks "what automation identities exist", "show service principals".

RETURNS: JSON array with id, applicationId, displayName. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// WORKSPACE
	// ==========================================================================
	{
		Name:   "databricks_list_workspace",
		Method: "WorkspaceList",
		Title:  "List Workspace",
		Group:  "workspace",
		Description: `List notebooks, directories, and files under a workspace path.

USE WHEN: User asks "what's in /Users/alice", "browse the workspace".

NOT FOR: Unity Catalog tables (use databricks_list_tables instead).

RETURNS: JSON array with path, object_type, language. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_workspace_status",
		Method: "WorkspaceGetStatus",
		Title:  "Get Workspace Status",
		Group:  "workspace",
		Description: `Get type and metadata for one workspace object.

USE WHEN: User asks "does /Users/alice/etl exist", "is that path a notebook or a directory".

RETURNS: JSON with object_type, language, and modification time.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_mkdirs",
		Method: "WorkspaceMkdirs",
		Title:  "Make Directories",
		Group:  "workspace",
		Description: `Create a workspace directory and any missing parents.

USE WHEN: User says "create a folder for the project".

RETURNS: JSON confirmation.`,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_delete_workspace",
		Method: "WorkspaceDelete",
		Title:  "Delete Workspace Object",
		Group:  "workspace",
		Description: `Delete a notebook, file, or directory.

USE WHEN: User says "delete that notebook", "remove the old folder". Set recursive for non-empty directories.

RETURNS: JSON confirmation. This action cannot be undone.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_export_notebook",
		Method: "WorkspaceExportNotebook",
		Title:  "Export Notebook",
		Group:  "workspace",
		Description: `Export a notebook's source code.

USE WHEN: User says "show me the notebook source", "download notebook X".

NOT FOR: Rendered run output (use databricks_export_run instead).

RETURNS: JSON with the decoded source text.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_import_notebook",
		Method: "WorkspaceImportNotebook",
		Title:  "Import Notebook",
		Group:  "workspace",
		Description: `Import source text as a notebook at a workspace path.

USE WHEN: User says "upload this code as a notebook", "create a notebook with this content".

RETURNS: JSON confirmation. Language must be PYTHON, SQL, SCALA, or R; set overwrite to replace an existing notebook.`,
		Destructive: true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_list_repos",
		Method: "WorkspaceListRepos",
		Title:  "List Repos",
		Group:  "workspace",
		Description: `List Git folders checked out in the workspace.

USE WHEN: User asks "what repos are cloned", "show Git folders".

RETURNS: JSON array with id, url, branch, path. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_repo",
		Method: "WorkspaceGetRepo",
		Title:  "Get Repo",
		Group:  "workspace",
		Description: `Get one Git folder's details.

USE WHEN: User asks "what branch is repo X on".

RETURNS: JSON with url, branch, and head commit.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_repo",
		Method: "WorkspaceCreateRepo",
		Title:  "Create Repo",
		Group:  "workspace",
		Description: `Check a Git repository out into the workspace.

USE WHEN: User says "clone the etl repo into the workspace".

RETURNS: JSON with the new repo's id and path. Provider must be gitHub, gitLab, bitbucketCloud, or azureDevOpsServices.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_update_repo",
		Method: "WorkspaceUpdateRepo",
		Title:  "Update Repo",
		Group:  "workspace",
		Description: `Switch a workspace repo to a different branch.

USE WHEN: User says "check out the release branch in repo X".

RETURNS: JSON with the repo's new branch and head commit.`,
		OpenWorld: true,
	},

	// ==========================================================================
	// DASHBOARDS
	// ==========================================================================
	{
		Name:   "databricks_list_dashboards",
		Method: "DashboardsList",
		Title:  "List Dashboards",
		Group:  "dashboards",
		Description: `List Lakeview (AI/BI) dashboards in the workspace.

USE WHEN: User asks "what dashboards exist", "show the BI dashboards".

RETURNS: JSON array with dashboard_id, display_name, path, lifecycle_state. Capped at 100 items.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_dashboard",
		Method: "DashboardsGet",
		Title:  "Get Dashboard",
		Group:  "dashboards",
		Description: `Get one Lakeview dashboard including its serialized layout.

USE WHEN: User asks "show dashboard X", "what warehouse does the sales dashboard use".

RETURNS: JSON with display_name, serialized_dashboard (layout JSON), warehouse_id, and lifecycle_state.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_dashboard",
		Method: "DashboardsCreate",
		Title:  "Create Dashboard",
		Group:  "dashboards",
		Description: `Create a draft Lakeview dashboard.

USE WHEN: User says "create a dashboard for sales analytics".

RETURNS: JSON with the new dashboard_id. Optionally pre-populate the layout with serialized_dashboard JSON.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_update_dashboard",
		Method: "DashboardsUpdate",
		Title:  "Update Dashboard",
		Group:  "dashboards",
		Description: `Update a Lakeview dashboard draft's name and/or layout.

USE WHEN: User says "rename the dashboard", "replace the dashboard layout".

RETURNS: JSON with the updated dashboard. Only provided fields change; the published version is untouched until re-published.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_publish_dashboard",
		Method: "DashboardsPublish",
		Title:  "Publish Dashboard",
		Group:  "dashboards",
		Description: `Publish a Lakeview dashboard draft so workspace users can view it.

USE WHEN: User says "publish the dashboard", "make the dashboard live".

RETURNS: JSON with the published revision. Set embed_credentials so viewers can run queries without their own warehouse access.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_unpublish_dashboard",
		Method: "DashboardsUnpublish",
		Title:  "Unpublish Dashboard",
		Group:  "dashboards",
		Description: `Remove the published version of a dashboard.

USE WHEN: User says "take the dashboard offline". The draft is retained and can be re-published.

RETURNS: JSON confirmation.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_trash_dashboard",
		Method: "DashboardsTrash",
		Title:  "Trash Dashboard",
		Group:  "dashboards",
		Description: `Move a Lakeview dashboard to the trash.

USE WHEN: User says "delete the old dashboard". Trashed dashboards can be recovered from the workspace trash.

RETURNS: JSON confirmation.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
	{
		Name:   "databricks_migrate_dashboard",
		Method: "DashboardsMigrate",
		Title:  "Migrate Dashboard",
		Group:  "dashboards",
		Description: `Convert a classic SQL dashboard into a new Lakeview dashboard.

USE WHEN: User says "migrate the legacy dashboard to Lakeview". The original is not modified.

RETURNS: JSON with the newly created Lakeview dashboard's id.`,
		OpenWorld: true,
	},

	// ==========================================================================
	// TOKENS
	// ==========================================================================
	{
		Name:   "databricks_list_tokens",
		Method: "TokensList",
		Title:  "List Tokens",
		Group:  "tokens",
		Description: `List the calling user's personal access tokens.

USE WHEN: User asks "what tokens do I have", "when does my token expire".

RETURNS: JSON array with token_id, comment, creation and expiry times. Token values are never returned.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_token",
		Method: "TokensCreate",
		Title:  "Create Token",
		Group:  "tokens",
		Description: `Create a personal access token for the calling user.

USE WHEN: User says "create a token for CI", "issue a token that expires in a week".

RETURNS: JSON with token_value. This is the only time the value is shown; store it immediately.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_revoke_token",
		Method: "TokensRevoke",
		Title:  "Revoke Token",
		Group:  "tokens",
		Description: `Revoke a personal access token immediately.

USE WHEN: User says "revoke token X", "that token leaked, kill it".

RETURNS: JSON confirmation. Revocation cannot be undone.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},

	// ==========================================================================
	// GIT CREDENTIALS
	// ==========================================================================
	{
		Name:   "databricks_list_git_credentials",
		Method: "GitCredsList",
		Title:  "List Git Credentials",
		Group:  "git_credentials",
		Description: `List the Git credentials stored for the calling user.

USE WHEN: User asks "what Git credentials are configured", "which provider is my repo auth for".

RETURNS: JSON array with credential_id, git_provider, git_username. Tokens are never returned.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_git_credential",
		Method: "GitCredsCreate",
		Title:  "Create Git Credential",
		Group:  "git_credentials",
		Description: `Store a Git provider credential for repo sync.

USE WHEN: User says "set up my GitHub token for repos".

RETURNS: JSON with the new credential_id. Provider must be gitHub, gitLab, bitbucketCloud, or azureDevOpsServices; one credential per provider.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_update_git_credential",
		Method: "GitCredsUpdate",
		Title:  "Update Git Credential",
		Group:  "git_credentials",
		Description: `Replace the token stored under an existing Git credential.

USE WHEN: User says "rotate my GitHub token".

RETURNS: JSON confirmation.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_delete_git_credential",
		Method: "GitCredsDelete",
		Title:  "Delete Git Credential",
		Group:  "git_credentials",
		Description: `Delete a stored Git credential.

USE WHEN: User says "remove my old GitLab credential". Repo sync for that provider stops working.

RETURNS: JSON confirmation.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},

	// ==========================================================================
	// GLOBAL INIT SCRIPTS
	// ==========================================================================
	{
		Name:   "databricks_list_global_init_scripts",
		Method: "InitScriptsList",
		Title:  "List Global Init Scripts",
		Group:  "global_init_scripts",
		Description: `List global init scripts that run on every cluster at startup.

USE WHEN: User asks "what init scripts are configured", "is anything injected into cluster startup".

RETURNS: JSON array with script_id, name, enabled, position. Script bodies are omitted.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_get_global_init_script",
		Method: "InitScriptsGet",
		Title:  "Get Global Init Script",
		Group:  "global_init_scripts",
		Description: `Get one global init script with its decoded body.

USE WHEN: User asks "show me what init script X does".

RETURNS: JSON with name, enabled, position, and the plain-text script source.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:   "databricks_create_global_init_script",
		Method: "InitScriptsCreate",
		Title:  "Create Global Init Script",
		Group:  "global_init_scripts",
		Description: `Register a global init script to run on every new cluster.

USE WHEN: User says "install this agent on all clusters", "add a startup script workspace-wide".

RETURNS: JSON with the new script_id. Pass the script body as plain text; encoding is handled for you.`,
		OpenWorld: true,
	},
	{
		Name:   "databricks_delete_global_init_script",
		Method: "InitScriptsDelete",
		Title:  "Delete Global Init Script",
		Group:  "global_init_scripts",
		Description: `Delete a global init script.

USE WHEN: User says "remove init script X". Running clusters are unaffected until restart.

RETURNS: JSON confirmation.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
}
