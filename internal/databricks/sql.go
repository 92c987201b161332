package databricks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/lakeware/databricks-mcp-server/internal/errors"
	"github.com/lakeware/databricks-mcp-server/internal/render"
)

// SQLAPI covers SQL warehouses, statement execution, saved queries,
// alerts, and query history.
type SQLAPI struct {
	c *Client
}

// Warehouse is a SQL warehouse as returned by sql/warehouses.
type Warehouse struct {
	ID              string `json:"id"`
	Name            string `json:"name,omitempty"`
	State           string `json:"state,omitempty"`
	ClusterSize     string `json:"cluster_size,omitempty"`
	MinNumClusters  int    `json:"min_num_clusters,omitempty"`
	MaxNumClusters  int    `json:"max_num_clusters,omitempty"`
	NumClusters     int    `json:"num_clusters,omitempty"`
	AutoStopMins    int    `json:"auto_stop_mins,omitempty"`
	CreatorName     string `json:"creator_name,omitempty"`
	JDBCURL         string `json:"jdbc_url,omitempty"`
	EnableServerless bool  `json:"enable_serverless_compute,omitempty"`
	Health          *struct {
		Status  string `json:"status,omitempty"`
		Summary string `json:"summary,omitempty"`
	} `json:"health,omitempty"`
}

type warehouseListResponse struct {
	Warehouses []Warehouse `json:"warehouses"`
}

// ListWarehousesArgs bounds a warehouse listing.
type ListWarehousesArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of warehouses to return (1-100, default 100)"`
}

// WarehouseListing is the rendered result of a warehouse listing.
type WarehouseListing struct {
	Warehouses []any `json:"warehouses"`
	Count      int   `json:"count"`
}

// ListWarehouses returns every SQL warehouse in the workspace.
func (a SQLAPI) ListWarehouses(ctx context.Context, args ListWarehousesArgs) (*WarehouseListing, error) {
	resp, err := apiGetCached[warehouseListResponse](ctx, a.c, "sql", "list_warehouses",
		"/api/2.0/sql/warehouses", listCacheTTL)
	if err != nil {
		return nil, err
	}
	warehouses, err := render.Collect(sliceSeq(resp.Warehouses), render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &WarehouseListing{Warehouses: warehouses, Count: len(warehouses)}, nil
}

// GetWarehouseArgs identifies a single warehouse.
type GetWarehouseArgs struct {
	ID string `json:"id" jsonschema:"required" jsonschema_description:"The unique identifier of the SQL warehouse"`
}

// GetWarehouse returns details for one warehouse, including health.
func (a SQLAPI) GetWarehouse(ctx context.Context, args GetWarehouseArgs) (*Warehouse, error) {
	return apiGet[Warehouse](ctx, a.c, "sql", "get_warehouse",
		"/api/2.0/sql/warehouses/"+url.PathEscape(args.ID))
}

// CreateWarehouseArgs describes a new SQL warehouse.
type CreateWarehouseArgs struct {
	Name           string `json:"name" jsonschema:"required" jsonschema_description:"Display name for the warehouse"`
	ClusterSize    string `json:"cluster_size,omitempty" jsonschema_description:"T-shirt size for the warehouse compute (2X-Small through 4X-Large, default 2X-Small)"`
	MaxNumClusters int    `json:"max_num_clusters,omitempty" jsonschema_description:"Maximum number of clusters for auto-scaling (1-100, default 1)"`
	AutoStopMins   int    `json:"auto_stop_mins,omitempty" jsonschema_description:"Minutes of inactivity before auto-stop (0 to disable, default 15)"`
}

// CreateWarehouse creates a SQL warehouse. The warehouse starts
// automatically after creation.
func (a SQLAPI) CreateWarehouse(ctx context.Context, args CreateWarehouseArgs) (*Warehouse, error) {
	clusterSize := args.ClusterSize
	if clusterSize == "" {
		clusterSize = "2X-Small"
	}
	maxClusters := args.MaxNumClusters
	if maxClusters <= 0 {
		maxClusters = 1
	}
	autoStop := args.AutoStopMins
	if autoStop <= 0 {
		autoStop = 15
	}

	created, err := apiPost[Warehouse](ctx, a.c, "sql", "create_warehouse", "/api/2.0/sql/warehouses",
		map[string]any{
			"name":             args.Name,
			"cluster_size":     clusterSize,
			"max_num_clusters": maxClusters,
			"auto_stop_mins":   autoStop,
		})
	if err != nil {
		return nil, err
	}
	a.c.invalidate("sql")
	return created, nil
}

// StartWarehouse initiates startup of a stopped warehouse and returns
// without waiting.
func (a SQLAPI) StartWarehouse(ctx context.Context, args GetWarehouseArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "sql", "start_warehouse",
		"/api/2.0/sql/warehouses/"+url.PathEscape(args.ID)+"/start", map[string]any{})
	if err != nil {
		return nil, err
	}
	a.c.invalidate("sql")
	return &ActionStatus{
		Status:  "starting",
		Message: fmt.Sprintf("Warehouse %q start initiated. It may take a few minutes to become running.", args.ID),
	}, nil
}

// StopWarehouse stops a running warehouse. Running queries are
// terminated.
func (a SQLAPI) StopWarehouse(ctx context.Context, args GetWarehouseArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "sql", "stop_warehouse",
		"/api/2.0/sql/warehouses/"+url.PathEscape(args.ID)+"/stop", map[string]any{})
	if err != nil {
		return nil, err
	}
	a.c.invalidate("sql")
	return &ActionStatus{
		Status:  "stopping",
		Message: fmt.Sprintf("Warehouse %q stop initiated.", args.ID),
	}, nil
}

// DeleteWarehouse permanently deletes a warehouse.
func (a SQLAPI) DeleteWarehouse(ctx context.Context, args GetWarehouseArgs) (*ActionStatus, error) {
	_, err := apiDelete[struct{}](ctx, a.c, "sql", "delete_warehouse",
		"/api/2.0/sql/warehouses/"+url.PathEscape(args.ID), nil)
	if err != nil {
		return nil, err
	}
	a.c.invalidate("sql")
	return &ActionStatus{
		Status:  "deleted",
		Message: fmt.Sprintf("Warehouse %q deleted successfully.", args.ID),
	}, nil
}

// StatementResult is the response of the statement execution API.
type StatementResult struct {
	StatementID string `json:"statement_id,omitempty"`
	Status      *struct {
		State string `json:"state,omitempty"`
		Error *struct {
			ErrorCode string `json:"error_code,omitempty"`
			Message   string `json:"message,omitempty"`
		} `json:"error,omitempty"`
	} `json:"status,omitempty"`
	Manifest *struct {
		Schema *struct {
			ColumnCount int `json:"column_count,omitempty"`
			Columns     []struct {
				Name     string `json:"name,omitempty"`
				TypeText string `json:"type_text,omitempty"`
				Position int    `json:"position,omitempty"`
			} `json:"columns,omitempty"`
		} `json:"schema,omitempty"`
		TotalRowCount int64 `json:"total_row_count,omitempty"`
		Truncated     bool  `json:"truncated,omitempty"`
	} `json:"manifest,omitempty"`
	Result *struct {
		DataArray [][]any `json:"data_array,omitempty"`
		RowCount  int64   `json:"row_count,omitempty"`
	} `json:"result,omitempty"`
}

// ExecuteStatementArgs describes a statement execution request.
type ExecuteStatementArgs struct {
	WarehouseID string `json:"warehouse_id" jsonschema:"required" jsonschema_description:"The ID of the SQL warehouse to execute on"`
	Statement   string `json:"statement" jsonschema:"required" jsonschema_description:"The SQL statement to execute (max 16 MiB)"`
	Catalog     string `json:"catalog,omitempty" jsonschema_description:"Optional default catalog for the statement (like USE CATALOG)"`
	Schema      string `json:"schema,omitempty" jsonschema_description:"Optional default schema for the statement (like USE SCHEMA)"`
}

// ExecuteStatement runs a SQL statement synchronously with a 50-second
// wait and inline JSON results. Long-running statements keep executing;
// poll GetStatement for completion.
func (a SQLAPI) ExecuteStatement(ctx context.Context, args ExecuteStatementArgs) (*StatementResult, error) {
	payload := map[string]any{
		"warehouse_id": args.WarehouseID,
		"statement":    args.Statement,
		"wait_timeout": "50s",
		"disposition":  "INLINE",
		"format":       "JSON_ARRAY",
	}
	if args.Catalog != "" {
		payload["catalog"] = args.Catalog
	}
	if args.Schema != "" {
		payload["schema"] = args.Schema
	}
	return apiPost[StatementResult](ctx, a.c, "sql", "execute_statement", "/api/2.0/sql/statements", payload)
}

// GetStatementArgs identifies a previously executed statement.
type GetStatementArgs struct {
	StatementID string `json:"statement_id" jsonschema:"required" jsonschema_description:"The statement ID returned by databricks_execute_sql"`
}

// GetStatement returns the status and, once complete, results of a
// statement.
func (a SQLAPI) GetStatement(ctx context.Context, args GetStatementArgs) (*StatementResult, error) {
	return apiGet[StatementResult](ctx, a.c, "sql", "get_statement",
		"/api/2.0/sql/statements/"+url.PathEscape(args.StatementID))
}

// CancelStatement requests cancellation of a running statement.
// Cancellation may not be immediate.
func (a SQLAPI) CancelStatement(ctx context.Context, args GetStatementArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "sql", "cancel_statement",
		"/api/2.0/sql/statements/"+url.PathEscape(args.StatementID)+"/cancel", map[string]any{})
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "cancelling",
		Message: fmt.Sprintf("Cancellation requested for statement %q. Poll status to confirm.", args.StatementID),
	}, nil
}

// Query is a saved SQL query.
type Query struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	QueryText   string `json:"query_text,omitempty"`
	WarehouseID string `json:"warehouse_id,omitempty"`
	Description string `json:"description,omitempty"`
	OwnerName   string `json:"owner_user_name,omitempty"`
	CreateTime  string `json:"create_time,omitempty"`
	UpdateTime  string `json:"update_time,omitempty"`
}

type queryListResponse struct {
	Results       []Query `json:"results"`
	NextPageToken string  `json:"next_page_token"`
}

// ListQueriesArgs bounds a saved query listing.
type ListQueriesArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of queries to return (1-100, default 100)"`
}

// QueryListing is the rendered result of a saved query listing.
type QueryListing struct {
	Queries []any `json:"queries"`
	Count   int   `json:"count"`
}

// ListQueries returns saved queries accessible to the current user,
// ordered by creation time.
func (a SQLAPI) ListQueries(ctx context.Context, args ListQueriesArgs) (*QueryListing, error) {
	seq := pages(ctx, func(ctx context.Context, token string) ([]Query, string, error) {
		resp, err := apiGet[queryListResponse](ctx, a.c, "sql", "list_queries",
			pathWithQuery("/api/2.0/sql/queries", withToken(url.Values{}, token)))
		if err != nil {
			return nil, "", err
		}
		return resp.Results, resp.NextPageToken, nil
	})
	queries, err := render.Collect(seq, render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &QueryListing{Queries: queries, Count: len(queries)}, nil
}

// CreateQueryArgs describes a new saved query.
type CreateQueryArgs struct {
	Name        string `json:"name" jsonschema:"required" jsonschema_description:"Display name for the query"`
	QueryText   string `json:"query_text" jsonschema:"required" jsonschema_description:"The SQL statement body"`
	WarehouseID string `json:"warehouse_id" jsonschema:"required" jsonschema_description:"The ID of the SQL warehouse to target"`
	Description string `json:"description,omitempty" jsonschema_description:"Optional human-readable description"`
}

// CreateQuery creates a reusable saved query that can be shared,
// scheduled, and used as the basis for alerts.
func (a SQLAPI) CreateQuery(ctx context.Context, args CreateQueryArgs) (*Query, error) {
	created, err := apiPost[Query](ctx, a.c, "sql", "create_query", "/api/2.0/sql/queries",
		map[string]any{
			"query": map[string]any{
				"display_name": args.Name,
				"query_text":   args.QueryText,
				"warehouse_id": args.WarehouseID,
				"description":  args.Description,
			},
		})
	if err != nil {
		return nil, err
	}
	a.c.invalidate("sql")
	return created, nil
}

// Alert triggers notifications when a query result meets a condition.
type Alert struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"display_name,omitempty"`
	QueryID     string          `json:"query_id,omitempty"`
	State       string          `json:"state,omitempty"`
	Condition   *AlertCondition `json:"condition,omitempty"`
	OwnerName   string          `json:"owner_user_name,omitempty"`
	CreateTime  string          `json:"create_time,omitempty"`
}

// AlertCondition compares a result column against a threshold.
type AlertCondition struct {
	Op      string `json:"op"`
	Operand struct {
		Column struct {
			Name string `json:"name"`
		} `json:"column"`
	} `json:"operand"`
	Threshold struct {
		Value struct {
			DoubleValue *float64 `json:"double_value,omitempty"`
			StringValue *string  `json:"string_value,omitempty"`
		} `json:"value"`
	} `json:"threshold"`
}

type alertListResponse struct {
	Results       []Alert `json:"results"`
	NextPageToken string  `json:"next_page_token"`
}

// ListAlertsArgs bounds an alert listing.
type ListAlertsArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of alerts to return (1-100, default 100)"`
}

// AlertListing is the rendered result of an alert listing.
type AlertListing struct {
	Alerts []any `json:"alerts"`
	Count  int   `json:"count"`
}

// ListAlerts returns SQL alerts accessible to the current user.
func (a SQLAPI) ListAlerts(ctx context.Context, args ListAlertsArgs) (*AlertListing, error) {
	seq := pages(ctx, func(ctx context.Context, token string) ([]Alert, string, error) {
		resp, err := apiGet[alertListResponse](ctx, a.c, "sql", "list_alerts",
			pathWithQuery("/api/2.0/sql/alerts", withToken(url.Values{}, token)))
		if err != nil {
			return nil, "", err
		}
		return resp.Results, resp.NextPageToken, nil
	})
	alerts, err := render.Collect(seq, render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &AlertListing{Alerts: alerts, Count: len(alerts)}, nil
}

// alertOperators are the comparison operators the alerts API accepts.
var alertOperators = map[string]bool{
	"EQUAL":                 true,
	"NOT_EQUAL":             true,
	"GREATER_THAN":          true,
	"GREATER_THAN_OR_EQUAL": true,
	"LESS_THAN":             true,
	"LESS_THAN_OR_EQUAL":    true,
	"IS_NULL":               true,
}

// CreateAlertArgs describes a new alert on a saved query.
type CreateAlertArgs struct {
	Name      string `json:"name" jsonschema:"required" jsonschema_description:"Display name for the alert"`
	QueryID   string `json:"query_id" jsonschema:"required" jsonschema_description:"The ID of the saved query to monitor"`
	Column    string `json:"column" jsonschema:"required" jsonschema_description:"Name of the result column the condition evaluates"`
	Operator  string `json:"operator" jsonschema:"required" jsonschema_description:"Comparison operator: EQUAL, NOT_EQUAL, GREATER_THAN, GREATER_THAN_OR_EQUAL, LESS_THAN, LESS_THAN_OR_EQUAL, IS_NULL"`
	Threshold string `json:"threshold,omitempty" jsonschema_description:"Threshold value to compare against. Numeric strings are sent as numbers. Not required for IS_NULL"`
}

// CreateAlert creates an alert that evaluates a query result column
// against a threshold and notifies when the condition is met.
func (a SQLAPI) CreateAlert(ctx context.Context, args CreateAlertArgs) (*Alert, error) {
	op := strings.ToUpper(strings.TrimSpace(args.Operator))
	if !alertOperators[op] {
		return nil, errors.NewValidationError("operator", args.Operator,
			"must be one of EQUAL, NOT_EQUAL, GREATER_THAN, GREATER_THAN_OR_EQUAL, LESS_THAN, LESS_THAN_OR_EQUAL, IS_NULL")
	}
	if strings.TrimSpace(args.Column) == "" {
		return nil, errors.NewValidationError("column", "", "alert condition column is required")
	}
	if op != "IS_NULL" && strings.TrimSpace(args.Threshold) == "" {
		return nil, errors.NewValidationError("threshold", "",
			fmt.Sprintf("a threshold value is required for operator %s", op))
	}

	var cond AlertCondition
	cond.Op = op
	cond.Operand.Column.Name = args.Column
	if op != "IS_NULL" {
		if v, err := strconv.ParseFloat(args.Threshold, 64); err == nil {
			cond.Threshold.Value.DoubleValue = &v
		} else {
			s := args.Threshold
			cond.Threshold.Value.StringValue = &s
		}
	}

	created, err := apiPost[Alert](ctx, a.c, "sql", "create_alert", "/api/2.0/sql/alerts",
		map[string]any{
			"alert": map[string]any{
				"display_name": args.Name,
				"query_id":     args.QueryID,
				"condition":    cond,
			},
		})
	if err != nil {
		return nil, err
	}
	a.c.invalidate("sql")
	return created, nil
}

// QueryHistoryEntry is one executed query in the history API.
type QueryHistoryEntry struct {
	QueryID     string `json:"query_id,omitempty"`
	Status      string `json:"status,omitempty"`
	QueryText   string `json:"query_text,omitempty"`
	WarehouseID string `json:"warehouse_id,omitempty"`
	UserName    string `json:"user_name,omitempty"`
	DurationMS  int64  `json:"duration,omitempty"`
	StartTimeMS int64  `json:"query_start_time_ms,omitempty"`
	EndTimeMS   int64  `json:"query_end_time_ms,omitempty"`
}

type queryHistoryResponse struct {
	Res           []QueryHistoryEntry `json:"res"`
	NextPageToken string              `json:"next_page_token"`
}

// ListQueryHistoryArgs filters query execution history.
type ListQueryHistoryArgs struct {
	WarehouseID string `json:"warehouse_id,omitempty" jsonschema_description:"Optional warehouse ID to filter history. Omit for all warehouses"`
	MaxResults  int    `json:"max_results,omitempty" jsonschema_description:"Maximum number of history entries to return (1-100, default 25)"`
}

// QueryHistoryListing is the rendered result of a history listing.
type QueryHistoryListing struct {
	Queries []any `json:"queries"`
	Count   int   `json:"count"`
}

// ListQueryHistory returns recently executed queries with status,
// duration, and warehouse information.
func (a SQLAPI) ListQueryHistory(ctx context.Context, args ListQueryHistoryArgs) (*QueryHistoryListing, error) {
	limit := args.MaxResults
	if limit <= 0 {
		limit = 25
	}
	seq := pages(ctx, func(ctx context.Context, token string) ([]QueryHistoryEntry, string, error) {
		q := url.Values{}
		q.Set("max_results", strconv.Itoa(render.Clamp(limit)))
		if args.WarehouseID != "" {
			q.Set("filter_by.warehouse_ids", args.WarehouseID)
		}
		resp, err := apiGet[queryHistoryResponse](ctx, a.c, "sql", "list_query_history",
			pathWithQuery("/api/2.0/sql/history/queries", withToken(q, token)))
		if err != nil {
			return nil, "", err
		}
		return resp.Res, resp.NextPageToken, nil
	})
	entries, err := render.Collect(seq, render.Clamp(limit))
	if err != nil {
		return nil, err
	}
	return &QueryHistoryListing{Queries: entries, Count: len(entries)}, nil
}
