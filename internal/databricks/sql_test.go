package databricks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakeware/databricks-mcp-server/internal/errors"
)

func TestListWarehousesCachesSecondCall(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/sql/warehouses", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(warehouseListResponse{
			Warehouses: []Warehouse{{ID: "w1", Name: "main", State: "RUNNING"}},
		})
	})
	c := newTestWorkspace(t, mux)

	first, err := c.SQL.ListWarehouses(context.Background(), ListWarehousesArgs{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Count)

	second, err := c.SQL.ListWarehouses(context.Background(), ListWarehousesArgs{})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Count)
	assert.Equal(t, int32(1), hits.Load(), "second listing should come from cache")
}

func TestCreateWarehouseAppliesDefaults(t *testing.T) {
	var payload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/sql/warehouses", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		json.NewEncoder(w).Encode(Warehouse{ID: "w2", Name: "analytics"})
	})
	c := newTestWorkspace(t, mux)

	created, err := c.SQL.CreateWarehouse(context.Background(), CreateWarehouseArgs{Name: "analytics"})
	require.NoError(t, err)
	assert.Equal(t, "w2", created.ID)
	assert.Equal(t, "2X-Small", payload["cluster_size"])
	assert.Equal(t, float64(1), payload["max_num_clusters"])
	assert.Equal(t, float64(15), payload["auto_stop_mins"])
}

func TestExecuteStatementPayload(t *testing.T) {
	var payload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/sql/statements", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		json.NewEncoder(w).Encode(StatementResult{StatementID: "stmt-1"})
	})
	c := newTestWorkspace(t, mux)

	result, err := c.SQL.ExecuteStatement(context.Background(), ExecuteStatementArgs{
		WarehouseID: "w1",
		Statement:   "SELECT 1",
		Catalog:     "main",
	})
	require.NoError(t, err)
	assert.Equal(t, "stmt-1", result.StatementID)
	assert.Equal(t, "50s", payload["wait_timeout"])
	assert.Equal(t, "INLINE", payload["disposition"])
	assert.Equal(t, "JSON_ARRAY", payload["format"])
	assert.Equal(t, "main", payload["catalog"])
	assert.NotContains(t, payload, "schema")
}

func TestCreateAlertValidatesCondition(t *testing.T) {
	c := newTestWorkspace(t, http.NewServeMux())

	_, err := c.SQL.CreateAlert(context.Background(), CreateAlertArgs{
		Name: "a", QueryID: "q", Column: "value", Operator: "ABOVE",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = c.SQL.CreateAlert(context.Background(), CreateAlertArgs{
		Name: "a", QueryID: "q", Column: "value", Operator: "GREATER_THAN",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, err.Error(), "threshold")
}

func TestCreateAlertSendsStructuredCondition(t *testing.T) {
	var payload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/sql/alerts", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		json.NewEncoder(w).Encode(Alert{ID: "alert-1"})
	})
	c := newTestWorkspace(t, mux)

	created, err := c.SQL.CreateAlert(context.Background(), CreateAlertArgs{
		Name:      "failures",
		QueryID:   "q-1",
		Column:    "error_count",
		Operator:  "greater_than",
		Threshold: "100",
	})
	require.NoError(t, err)
	assert.Equal(t, "alert-1", created.ID)

	alert := payload["alert"].(map[string]any)
	assert.Equal(t, "failures", alert["display_name"])
	assert.Equal(t, "q-1", alert["query_id"])

	cond := alert["condition"].(map[string]any)
	assert.Equal(t, "GREATER_THAN", cond["op"])
	operand := cond["operand"].(map[string]any)
	assert.Equal(t, "error_count", operand["column"].(map[string]any)["name"])
	threshold := cond["threshold"].(map[string]any)
	assert.Equal(t, float64(100), threshold["value"].(map[string]any)["double_value"])
}

func TestListQueriesPaginates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/sql/queries", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page_token") == "" {
			json.NewEncoder(w).Encode(queryListResponse{
				Results:       []Query{{ID: "q1"}, {ID: "q2"}},
				NextPageToken: "t2",
			})
			return
		}
		json.NewEncoder(w).Encode(queryListResponse{Results: []Query{{ID: "q3"}}})
	})
	c := newTestWorkspace(t, mux)

	listing, err := c.SQL.ListQueries(context.Background(), ListQueriesArgs{})
	require.NoError(t, err)
	assert.Equal(t, 3, listing.Count)
}

func TestListAlertsEmptyWorkspace(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/sql/alerts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	c := newTestWorkspace(t, mux)

	listing, err := c.SQL.ListAlerts(context.Background(), ListAlertsArgs{})
	require.NoError(t, err)
	assert.Equal(t, 0, listing.Count)
	assert.NotNil(t, listing.Alerts, "empty listing should render as [] not null")
}
