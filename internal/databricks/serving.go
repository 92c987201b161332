package databricks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/lakeware/databricks-mcp-server/internal/errors"
	"github.com/lakeware/databricks-mcp-server/internal/render"
)

// ServingAPI covers model serving endpoints.
type ServingAPI struct {
	c *Client
}

// ServingEndpoint is a model serving endpoint.
type ServingEndpoint struct {
	Name        string `json:"name"`
	ID          string `json:"id,omitempty"`
	Creator     string `json:"creator,omitempty"`
	CreationTS  int64  `json:"creation_timestamp,omitempty"`
	LastUpdated int64  `json:"last_updated_timestamp,omitempty"`
	State       *struct {
		Ready         string `json:"ready,omitempty"`
		ConfigUpdate  string `json:"config_update,omitempty"`
	} `json:"state,omitempty"`
	Config *struct {
		ServedEntities []struct {
			Name          string `json:"name,omitempty"`
			EntityName    string `json:"entity_name,omitempty"`
			EntityVersion string `json:"entity_version,omitempty"`
			WorkloadSize  string `json:"workload_size,omitempty"`
			ScaleToZero   bool   `json:"scale_to_zero_enabled,omitempty"`
		} `json:"served_entities,omitempty"`
	} `json:"config,omitempty"`
}

type servingListResponse struct {
	Endpoints []ServingEndpoint `json:"endpoints"`
}

// ListServingArgs bounds a serving endpoint listing.
type ListServingArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of endpoints to return (1-100, default 100)"`
}

// ServingListing is the rendered result of an endpoint listing.
type ServingListing struct {
	Endpoints []any `json:"endpoints"`
	Count     int   `json:"count"`
}

// List returns every model serving endpoint in the workspace.
func (a ServingAPI) List(ctx context.Context, args ListServingArgs) (*ServingListing, error) {
	resp, err := apiGetCached[servingListResponse](ctx, a.c, "serving", "list",
		"/api/2.0/serving-endpoints", listCacheTTL)
	if err != nil {
		return nil, err
	}
	endpoints, err := render.Collect(sliceSeq(resp.Endpoints), render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &ServingListing{Endpoints: endpoints, Count: len(endpoints)}, nil
}

// GetServingArgs identifies a serving endpoint by name.
type GetServingArgs struct {
	Name string `json:"name" jsonschema:"required" jsonschema_description:"The name of the serving endpoint"`
}

// Get returns details for one serving endpoint, including its served
// entities and readiness state.
func (a ServingAPI) Get(ctx context.Context, args GetServingArgs) (*ServingEndpoint, error) {
	return apiGet[ServingEndpoint](ctx, a.c, "serving", "get",
		"/api/2.0/serving-endpoints/"+url.PathEscape(args.Name))
}

// Delete removes a serving endpoint and releases its compute.
func (a ServingAPI) Delete(ctx context.Context, args GetServingArgs) (*ActionStatus, error) {
	_, err := apiDelete[struct{}](ctx, a.c, "serving", "delete",
		"/api/2.0/serving-endpoints/"+url.PathEscape(args.Name), nil)
	if err != nil {
		return nil, err
	}
	a.c.invalidate("serving")
	return &ActionStatus{
		Status:  "deleted",
		Message: fmt.Sprintf("Serving endpoint %q deleted successfully.", args.Name),
	}, nil
}

// QueryServingArgs carries an inference request for an endpoint.
type QueryServingArgs struct {
	Name   string `json:"name" jsonschema:"required" jsonschema_description:"The name of the serving endpoint to query"`
	Inputs string `json:"inputs" jsonschema:"required" jsonschema_description:"JSON-encoded model inputs, e.g. [{\"feature\": 1.0}] or a dataframe_records payload"`
}

// QueryResult is the raw inference response from an endpoint.
type QueryResult struct {
	Predictions any `json:"predictions,omitempty"`
	Choices     any `json:"choices,omitempty"`
	Usage       any `json:"usage,omitempty"`
}

// Query sends inputs to a serving endpoint's invocation URL and
// returns the model's predictions.
func (a ServingAPI) Query(ctx context.Context, args QueryServingArgs) (*QueryResult, error) {
	var inputs any
	if err := json.Unmarshal([]byte(args.Inputs), &inputs); err != nil {
		return nil, errors.NewValidationError("inputs", "", "must be valid JSON: "+err.Error())
	}
	return apiPost[QueryResult](ctx, a.c, "serving", "query",
		"/serving-endpoints/"+url.PathEscape(args.Name)+"/invocations",
		map[string]any{"inputs": inputs})
}

// BuildLogsArgs identifies a served model whose build logs to fetch.
type BuildLogsArgs struct {
	Name            string `json:"name" jsonschema:"required" jsonschema_description:"The name of the serving endpoint"`
	ServedModelName string `json:"served_model_name" jsonschema:"required" jsonschema_description:"The name of the served model within the endpoint"`
}

// BuildLogs is the container build log output of a served model.
type BuildLogs struct {
	Logs string `json:"logs,omitempty"`
}

// GetBuildLogs returns the build logs of a served model, useful when
// an endpoint fails to become ready.
func (a ServingAPI) GetBuildLogs(ctx context.Context, args BuildLogsArgs) (*BuildLogs, error) {
	return apiGet[BuildLogs](ctx, a.c, "serving", "build_logs",
		"/api/2.0/serving-endpoints/"+url.PathEscape(args.Name)+
			"/served-models/"+url.PathEscape(args.ServedModelName)+"/build-logs")
}
