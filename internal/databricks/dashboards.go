package databricks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/lakeware/databricks-mcp-server/internal/errors"
	"github.com/lakeware/databricks-mcp-server/internal/render"
)

// DashboardsAPI covers Lakeview (AI/BI) dashboards: drafts, publishing,
// and migration of classic SQL dashboards.
type DashboardsAPI struct {
	c *Client
}

// Dashboard is a Lakeview dashboard. SerializedDashboard holds the
// layout as a JSON string and is only populated on single-dashboard
// reads.
type Dashboard struct {
	DashboardID         string `json:"dashboard_id"`
	DisplayName         string `json:"display_name,omitempty"`
	Path                string `json:"path,omitempty"`
	WarehouseID         string `json:"warehouse_id,omitempty"`
	SerializedDashboard string `json:"serialized_dashboard,omitempty"`
	LifecycleState      string `json:"lifecycle_state,omitempty"`
	CreateTime          string `json:"create_time,omitempty"`
	UpdateTime          string `json:"update_time,omitempty"`
}

type dashboardListResponse struct {
	Dashboards    []Dashboard `json:"dashboards"`
	NextPageToken string      `json:"next_page_token"`
}

// ListDashboardsArgs bounds a dashboard listing.
type ListDashboardsArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of dashboards to return (1-100, default 100)"`
}

// DashboardListing is the rendered result of a dashboard listing.
type DashboardListing struct {
	Dashboards []any `json:"dashboards"`
	Count      int   `json:"count"`
}

// List returns active (non-trashed) Lakeview dashboards.
func (a DashboardsAPI) List(ctx context.Context, args ListDashboardsArgs) (*DashboardListing, error) {
	seq := pages(ctx, func(ctx context.Context, token string) ([]Dashboard, string, error) {
		resp, err := apiGetCached[dashboardListResponse](ctx, a.c, "dashboards", "list",
			pathWithQuery("/api/2.0/lakeview/dashboards", withToken(url.Values{}, token)), listCacheTTL)
		if err != nil {
			return nil, "", err
		}
		return resp.Dashboards, resp.NextPageToken, nil
	})
	dashboards, err := render.Collect(seq, render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &DashboardListing{Dashboards: dashboards, Count: len(dashboards)}, nil
}

// GetDashboardArgs identifies a single dashboard.
type GetDashboardArgs struct {
	DashboardID string `json:"dashboard_id" jsonschema:"required" jsonschema_description:"The UUID identifying the dashboard"`
}

// Get returns one dashboard including its serialized layout.
func (a DashboardsAPI) Get(ctx context.Context, args GetDashboardArgs) (*Dashboard, error) {
	return apiGet[Dashboard](ctx, a.c, "dashboards", "get",
		"/api/2.0/lakeview/dashboards/"+url.PathEscape(args.DashboardID))
}

// CreateDashboardArgs describes a new draft dashboard.
type CreateDashboardArgs struct {
	DisplayName         string `json:"display_name" jsonschema:"required" jsonschema_description:"Human-readable name for the dashboard"`
	WarehouseID         string `json:"warehouse_id" jsonschema:"required" jsonschema_description:"SQL warehouse that executes the dashboard queries"`
	SerializedDashboard string `json:"serialized_dashboard,omitempty" jsonschema_description:"Optional JSON layout definition; empty creates a blank dashboard"`
	ParentPath          string `json:"parent_path,omitempty" jsonschema_description:"Optional workspace folder to create the dashboard in, e.g. /Workspace/Dashboards"`
}

// Create creates a draft Lakeview dashboard.
func (a DashboardsAPI) Create(ctx context.Context, args CreateDashboardArgs) (*Dashboard, error) {
	if strings.TrimSpace(args.DisplayName) == "" {
		return nil, errors.NewValidationError("display_name", "", "display name is required")
	}
	payload := map[string]any{
		"display_name": args.DisplayName,
		"warehouse_id": args.WarehouseID,
	}
	if args.SerializedDashboard != "" {
		payload["serialized_dashboard"] = args.SerializedDashboard
	}
	if args.ParentPath != "" {
		payload["parent_path"] = args.ParentPath
	}
	created, err := apiPost[Dashboard](ctx, a.c, "dashboards", "create",
		"/api/2.0/lakeview/dashboards", payload)
	if err != nil {
		return nil, err
	}
	a.c.invalidate("dashboards")
	return created, nil
}

// UpdateDashboardArgs carries the draft fields to change. At least one
// of the optional fields must be set.
type UpdateDashboardArgs struct {
	DashboardID         string `json:"dashboard_id" jsonschema:"required" jsonschema_description:"The UUID identifying the dashboard to update"`
	DisplayName         string `json:"display_name,omitempty" jsonschema_description:"New display name; empty leaves the name unchanged"`
	SerializedDashboard string `json:"serialized_dashboard,omitempty" jsonschema_description:"New JSON layout definition; empty leaves the layout unchanged"`
}

// Update patches a draft dashboard with the provided non-empty fields.
func (a DashboardsAPI) Update(ctx context.Context, args UpdateDashboardArgs) (*Dashboard, error) {
	payload := map[string]any{}
	if args.DisplayName != "" {
		payload["display_name"] = args.DisplayName
	}
	if args.SerializedDashboard != "" {
		payload["serialized_dashboard"] = args.SerializedDashboard
	}
	if len(payload) == 0 {
		return nil, errors.NewValidationError("display_name", "",
			"provide display_name and/or serialized_dashboard to update")
	}
	updated, err := apiCall[Dashboard](ctx, a.c, "dashboards", "update", http.MethodPatch,
		"/api/2.0/lakeview/dashboards/"+url.PathEscape(args.DashboardID), payload)
	if err != nil {
		return nil, err
	}
	a.c.invalidate("dashboards")
	return updated, nil
}

// PublishDashboardArgs publishes a draft.
type PublishDashboardArgs struct {
	DashboardID      string `json:"dashboard_id" jsonschema:"required" jsonschema_description:"The UUID identifying the dashboard to publish"`
	WarehouseID      string `json:"warehouse_id,omitempty" jsonschema_description:"Optional warehouse override; empty uses the draft's warehouse"`
	EmbedCredentials bool   `json:"embed_credentials,omitempty" jsonschema_description:"Embed the publisher's credentials so viewers can run queries without their own warehouse access"`
}

// PublishedDashboard is the published view of a dashboard.
type PublishedDashboard struct {
	DisplayName        string `json:"display_name,omitempty"`
	WarehouseID        string `json:"warehouse_id,omitempty"`
	EmbedCredentials   bool   `json:"embed_credentials,omitempty"`
	RevisionCreateTime string `json:"revision_create_time,omitempty"`
}

// Publish makes the current draft version viewable in the workspace.
func (a DashboardsAPI) Publish(ctx context.Context, args PublishDashboardArgs) (*PublishedDashboard, error) {
	payload := map[string]any{"embed_credentials": args.EmbedCredentials}
	if args.WarehouseID != "" {
		payload["warehouse_id"] = args.WarehouseID
	}
	return apiPost[PublishedDashboard](ctx, a.c, "dashboards", "publish",
		"/api/2.0/lakeview/dashboards/"+url.PathEscape(args.DashboardID)+"/published", payload)
}

// Unpublish removes the published version; the draft is retained.
func (a DashboardsAPI) Unpublish(ctx context.Context, args GetDashboardArgs) (*ActionStatus, error) {
	_, err := apiDelete[struct{}](ctx, a.c, "dashboards", "unpublish",
		"/api/2.0/lakeview/dashboards/"+url.PathEscape(args.DashboardID)+"/published", nil)
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "unpublished",
		Message: fmt.Sprintf("Dashboard %q has been unpublished.", args.DashboardID),
	}, nil
}

// Trash soft-deletes a dashboard. Trashed dashboards can be recovered
// from the workspace trash.
func (a DashboardsAPI) Trash(ctx context.Context, args GetDashboardArgs) (*ActionStatus, error) {
	_, err := apiDelete[struct{}](ctx, a.c, "dashboards", "trash",
		"/api/2.0/lakeview/dashboards/"+url.PathEscape(args.DashboardID), nil)
	if err != nil {
		return nil, err
	}
	a.c.invalidate("dashboards")
	return &ActionStatus{
		Status:  "trashed",
		Message: fmt.Sprintf("Dashboard %q has been moved to the trash.", args.DashboardID),
	}, nil
}

// MigrateDashboardArgs converts a classic SQL dashboard to Lakeview.
type MigrateDashboardArgs struct {
	SourceDashboardID string `json:"source_dashboard_id" jsonschema:"required" jsonschema_description:"UUID of the classic SQL dashboard to migrate"`
	DisplayName       string `json:"display_name,omitempty" jsonschema_description:"Optional name for the new Lakeview dashboard; empty keeps the original's name"`
	ParentPath        string `json:"parent_path,omitempty" jsonschema_description:"Optional workspace folder for the new dashboard"`
}

// Migrate creates a Lakeview dashboard from a classic SQL dashboard.
// The source dashboard is not modified.
func (a DashboardsAPI) Migrate(ctx context.Context, args MigrateDashboardArgs) (*Dashboard, error) {
	payload := map[string]any{"source_dashboard_id": args.SourceDashboardID}
	if args.DisplayName != "" {
		payload["display_name"] = args.DisplayName
	}
	if args.ParentPath != "" {
		payload["parent_path"] = args.ParentPath
	}
	created, err := apiPost[Dashboard](ctx, a.c, "dashboards", "migrate",
		"/api/2.0/lakeview/dashboards/migrate", payload)
	if err != nil {
		return nil, err
	}
	a.c.invalidate("dashboards")
	return created, nil
}
