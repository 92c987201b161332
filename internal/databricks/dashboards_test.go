package databricks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakeware/databricks-mcp-server/internal/errors"
)

func TestDashboardsListPaginates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/lakeview/dashboards", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page_token") {
		case "":
			json.NewEncoder(w).Encode(dashboardListResponse{
				Dashboards: []Dashboard{
					{DashboardID: "d1", DisplayName: "Sales", LifecycleState: "ACTIVE"},
				},
				NextPageToken: "page2",
			})
		case "page2":
			json.NewEncoder(w).Encode(dashboardListResponse{
				Dashboards: []Dashboard{{DashboardID: "d2", DisplayName: "Ops"}},
			})
		default:
			t.Errorf("unexpected page token %q", r.URL.Query().Get("page_token"))
		}
	})
	c := newTestWorkspace(t, mux)

	listing, err := c.Dashboards.List(context.Background(), ListDashboardsArgs{})
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Count)

	first, ok := listing.Dashboards[0].(map[string]any)
	require.True(t, ok, "items should be normalized maps")
	assert.Equal(t, "d1", first["dashboard_id"])
	assert.Equal(t, "ACTIVE", first["lifecycle_state"])
}

func TestDashboardsCreateSendsOnlyProvidedFields(t *testing.T) {
	var payload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/lakeview/dashboards", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &payload)
		w.Write([]byte(`{"dashboard_id":"new-1","display_name":"Sales Q4"}`))
	})
	c := newTestWorkspace(t, mux)

	created, err := c.Dashboards.Create(context.Background(), CreateDashboardArgs{
		DisplayName: "Sales Q4",
		WarehouseID: "wh-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-1", created.DashboardID)
	assert.Equal(t, "Sales Q4", payload["display_name"])
	assert.Equal(t, "wh-1", payload["warehouse_id"])
	assert.NotContains(t, payload, "serialized_dashboard")
	assert.NotContains(t, payload, "parent_path")
}

func TestDashboardsCreateRequiresDisplayName(t *testing.T) {
	c := newTestWorkspace(t, http.NewServeMux())

	_, err := c.Dashboards.Create(context.Background(), CreateDashboardArgs{WarehouseID: "wh-1"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestDashboardsUpdateRejectsEmptyChange(t *testing.T) {
	c := newTestWorkspace(t, http.NewServeMux())

	_, err := c.Dashboards.Update(context.Background(), UpdateDashboardArgs{DashboardID: "d1"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestDashboardsPublishTargetsPublishedPath(t *testing.T) {
	var gotPath string
	var payload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/lakeview/dashboards/d1/published", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &payload)
		w.Write([]byte(`{"display_name":"Sales","embed_credentials":true}`))
	})
	c := newTestWorkspace(t, mux)

	published, err := c.Dashboards.Publish(context.Background(), PublishDashboardArgs{
		DashboardID:      "d1",
		EmbedCredentials: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/2.0/lakeview/dashboards/d1/published", gotPath)
	assert.Equal(t, true, payload["embed_credentials"])
	assert.True(t, published.EmbedCredentials)
}

func TestDashboardsTrashUsesDelete(t *testing.T) {
	var gotMethod string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/lakeview/dashboards/d1", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Write([]byte(`{}`))
	})
	c := newTestWorkspace(t, mux)

	status, err := c.Dashboards.Trash(context.Background(), GetDashboardArgs{DashboardID: "d1"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "trashed", status.Status)
}
