package databricks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/lakeware/databricks-mcp-server/internal/render"
)

// PipelinesAPI covers Delta Live Tables pipelines.
type PipelinesAPI struct {
	c *Client
}

// Pipeline is a DLT pipeline definition and its latest state.
type Pipeline struct {
	PipelineID   string        `json:"pipeline_id"`
	Name         string        `json:"name,omitempty"`
	State        string        `json:"state,omitempty"`
	CreatorName  string        `json:"creator_user_name,omitempty"`
	Spec         *PipelineSpec `json:"spec,omitempty"`
	LatestUpdate *struct {
		UpdateID     string `json:"update_id,omitempty"`
		State        string `json:"state,omitempty"`
		CreationTime int64  `json:"creation_time,omitempty"`
	} `json:"latest_updates,omitempty"`
	Health string `json:"health,omitempty"`
}

// PipelineSpec is the declared configuration of a pipeline.
type PipelineSpec struct {
	Name          string              `json:"name,omitempty"`
	Catalog       string              `json:"catalog,omitempty"`
	Target        string              `json:"target,omitempty"`
	Continuous    bool                `json:"continuous,omitempty"`
	Development   bool                `json:"development,omitempty"`
	Serverless    bool                `json:"serverless,omitempty"`
	Libraries     []PipelineLibrary   `json:"libraries,omitempty"`
	Configuration map[string]string   `json:"configuration,omitempty"`
}

// PipelineLibrary points a pipeline at a notebook or file.
type PipelineLibrary struct {
	Notebook *struct {
		Path string `json:"path"`
	} `json:"notebook,omitempty"`
	File *struct {
		Path string `json:"path"`
	} `json:"file,omitempty"`
}

type pipelineListResponse struct {
	Statuses      []Pipeline `json:"statuses"`
	NextPageToken string     `json:"next_page_token"`
}

// ListPipelinesArgs bounds a pipeline listing.
type ListPipelinesArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of pipelines to return (1-100, default 100)"`
}

// PipelineListing is the rendered result of a pipeline listing.
type PipelineListing struct {
	Pipelines []any `json:"pipelines"`
	Count     int   `json:"count"`
}

// List returns pipelines in the workspace with their latest state.
func (a PipelinesAPI) List(ctx context.Context, args ListPipelinesArgs) (*PipelineListing, error) {
	seq := pages(ctx, func(ctx context.Context, token string) ([]Pipeline, string, error) {
		resp, err := apiGet[pipelineListResponse](ctx, a.c, "pipelines", "list",
			pathWithQuery("/api/2.0/pipelines", withToken(url.Values{}, token)))
		if err != nil {
			return nil, "", err
		}
		return resp.Statuses, resp.NextPageToken, nil
	})
	pipelines, err := render.Collect(seq, render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &PipelineListing{Pipelines: pipelines, Count: len(pipelines)}, nil
}

// GetPipelineArgs identifies a single pipeline.
type GetPipelineArgs struct {
	PipelineID string `json:"pipeline_id" jsonschema:"required" jsonschema_description:"The unique identifier of the pipeline"`
}

// Get returns full details of one pipeline, including its spec and
// latest update state.
func (a PipelinesAPI) Get(ctx context.Context, args GetPipelineArgs) (*Pipeline, error) {
	return apiGet[Pipeline](ctx, a.c, "pipelines", "get",
		"/api/2.0/pipelines/"+url.PathEscape(args.PipelineID))
}

// CreatePipelineArgs describes a new notebook-backed pipeline.
type CreatePipelineArgs struct {
	Name         string `json:"name" jsonschema:"required" jsonschema_description:"Display name for the pipeline"`
	NotebookPath string `json:"notebook_path" jsonschema:"required" jsonschema_description:"Workspace path of the notebook that defines the pipeline"`
	Catalog      string `json:"catalog,omitempty" jsonschema_description:"Unity Catalog catalog to publish tables into"`
	Target       string `json:"target,omitempty" jsonschema_description:"Schema (database) to publish tables into"`
	Continuous   bool   `json:"continuous,omitempty" jsonschema_description:"Run the pipeline continuously instead of in triggered mode"`
	Serverless   bool   `json:"serverless,omitempty" jsonschema_description:"Run on serverless compute"`
}

// CreatePipelineResult confirms pipeline creation.
type CreatePipelineResult struct {
	PipelineID string `json:"pipeline_id"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// Create creates a DLT pipeline defined by a notebook.
func (a PipelinesAPI) Create(ctx context.Context, args CreatePipelineArgs) (*CreatePipelineResult, error) {
	payload := map[string]any{
		"name": args.Name,
		"libraries": []map[string]any{
			{"notebook": map[string]string{"path": args.NotebookPath}},
		},
	}
	if args.Catalog != "" {
		payload["catalog"] = args.Catalog
	}
	if args.Target != "" {
		payload["target"] = args.Target
	}
	if args.Continuous {
		payload["continuous"] = true
	}
	if args.Serverless {
		payload["serverless"] = true
	}

	created, err := apiPost[Pipeline](ctx, a.c, "pipelines", "create", "/api/2.0/pipelines", payload)
	if err != nil {
		return nil, err
	}
	a.c.invalidate("pipelines")
	return &CreatePipelineResult{
		PipelineID: created.PipelineID,
		Name:       args.Name,
		Message:    fmt.Sprintf("Pipeline %q created successfully with ID %s.", args.Name, created.PipelineID),
	}, nil
}

// Delete permanently removes a pipeline. Published tables are not
// dropped.
func (a PipelinesAPI) Delete(ctx context.Context, args GetPipelineArgs) (*ActionStatus, error) {
	_, err := apiDelete[struct{}](ctx, a.c, "pipelines", "delete",
		"/api/2.0/pipelines/"+url.PathEscape(args.PipelineID), nil)
	if err != nil {
		return nil, err
	}
	a.c.invalidate("pipelines")
	return &ActionStatus{
		Status:  "deleted",
		Message: fmt.Sprintf("Pipeline %q deleted successfully.", args.PipelineID),
	}, nil
}

// StartPipelineArgs describes a pipeline update request.
type StartPipelineArgs struct {
	PipelineID  string `json:"pipeline_id" jsonschema:"required" jsonschema_description:"The unique identifier of the pipeline to start"`
	FullRefresh bool   `json:"full_refresh,omitempty" jsonschema_description:"Recompute all tables from scratch instead of incrementally"`
}

// StartUpdateResult confirms a triggered pipeline update.
type StartUpdateResult struct {
	Status   string `json:"status"`
	UpdateID string `json:"update_id"`
	Message  string `json:"message"`
}

// StartUpdate triggers a pipeline update and returns without waiting
// for completion.
func (a PipelinesAPI) StartUpdate(ctx context.Context, args StartPipelineArgs) (*StartUpdateResult, error) {
	resp, err := apiPost[struct {
		UpdateID string `json:"update_id"`
	}](ctx, a.c, "pipelines", "start_update",
		"/api/2.0/pipelines/"+url.PathEscape(args.PipelineID)+"/updates",
		map[string]any{"full_refresh": args.FullRefresh})
	if err != nil {
		return nil, err
	}
	return &StartUpdateResult{
		Status:   "started",
		UpdateID: resp.UpdateID,
		Message:  fmt.Sprintf("Pipeline %q update started. Update ID: %s.", args.PipelineID, resp.UpdateID),
	}, nil
}

// Stop stops the pipeline's current update and, for continuous
// pipelines, pauses execution.
func (a PipelinesAPI) Stop(ctx context.Context, args GetPipelineArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "pipelines", "stop",
		"/api/2.0/pipelines/"+url.PathEscape(args.PipelineID)+"/stop", map[string]any{})
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "stopping",
		Message: fmt.Sprintf("Pipeline %q stop requested.", args.PipelineID),
	}, nil
}

// PipelineEvent is one event in a pipeline's event log.
type PipelineEvent struct {
	ID        string `json:"id,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Level     string `json:"level,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

type pipelineEventsResponse struct {
	Events        []PipelineEvent `json:"events"`
	NextPageToken string          `json:"next_page_token"`
}

// ListPipelineEventsArgs scopes an event listing to one pipeline.
type ListPipelineEventsArgs struct {
	PipelineID string `json:"pipeline_id" jsonschema:"required" jsonschema_description:"The unique identifier of the pipeline"`
	MaxResults int    `json:"max_results,omitempty" jsonschema_description:"Maximum number of events to return (1-100, default 25)"`
}

// PipelineEventListing is the rendered result of an event listing.
type PipelineEventListing struct {
	Events []any `json:"events"`
	Count  int   `json:"count"`
}

// ListEvents returns recent entries from a pipeline's event log, useful
// for diagnosing failed updates.
func (a PipelinesAPI) ListEvents(ctx context.Context, args ListPipelineEventsArgs) (*PipelineEventListing, error) {
	limit := args.MaxResults
	if limit <= 0 {
		limit = 25
	}
	seq := pages(ctx, func(ctx context.Context, token string) ([]PipelineEvent, string, error) {
		q := url.Values{}
		q.Set("max_results", strconv.Itoa(render.Clamp(limit)))
		resp, err := apiGet[pipelineEventsResponse](ctx, a.c, "pipelines", "list_events",
			pathWithQuery("/api/2.0/pipelines/"+url.PathEscape(args.PipelineID)+"/events", withToken(q, token)))
		if err != nil {
			return nil, "", err
		}
		return resp.Events, resp.NextPageToken, nil
	})
	events, err := render.Collect(seq, render.Clamp(limit))
	if err != nil {
		return nil, err
	}
	return &PipelineEventListing{Events: events, Count: len(events)}, nil
}
