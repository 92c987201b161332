package databricks

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/lakeware/databricks-mcp-server/internal/errors"
	"github.com/lakeware/databricks-mcp-server/internal/render"
)

// InitScriptsAPI covers global init scripts, which run on every cluster
// in the workspace at startup.
type InitScriptsAPI struct {
	c *Client
}

// InitScript is a global init script. Script holds the base64-encoded
// body and is only populated on single-script reads.
type InitScript struct {
	ScriptID  string `json:"script_id"`
	Name      string `json:"name,omitempty"`
	Enabled   bool   `json:"enabled,omitempty"`
	Position  int    `json:"position,omitempty"`
	Script    string `json:"script,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
	UpdatedAt int64  `json:"updated_at,omitempty"`
}

type initScriptListResponse struct {
	Scripts []InitScript `json:"scripts"`
}

// ListInitScriptsArgs bounds an init script listing.
type ListInitScriptsArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of scripts to return (1-100, default 100)"`
}

// InitScriptListing is the rendered result of an init script listing.
type InitScriptListing struct {
	Scripts []any `json:"scripts"`
	Count   int   `json:"count"`
}

// List returns every global init script, without script bodies.
func (a InitScriptsAPI) List(ctx context.Context, args ListInitScriptsArgs) (*InitScriptListing, error) {
	resp, err := apiGet[initScriptListResponse](ctx, a.c, "global_init_scripts", "list",
		"/api/2.0/global-init-scripts")
	if err != nil {
		return nil, err
	}
	scripts, err := render.Collect(sliceSeq(resp.Scripts), render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &InitScriptListing{Scripts: scripts, Count: len(scripts)}, nil
}

// GetInitScriptArgs identifies a single script.
type GetInitScriptArgs struct {
	ScriptID string `json:"script_id" jsonschema:"required" jsonschema_description:"The ID of the global init script"`
}

// InitScriptDetail is one script with its decoded body.
type InitScriptDetail struct {
	ScriptID string `json:"script_id"`
	Name     string `json:"name,omitempty"`
	Enabled  bool   `json:"enabled,omitempty"`
	Position int    `json:"position,omitempty"`
	Source   string `json:"source"`
}

// Get returns one script with its body decoded to plain text.
func (a InitScriptsAPI) Get(ctx context.Context, args GetInitScriptArgs) (*InitScriptDetail, error) {
	script, err := apiGet[InitScript](ctx, a.c, "global_init_scripts", "get",
		"/api/2.0/global-init-scripts/"+url.PathEscape(args.ScriptID))
	if err != nil {
		return nil, err
	}
	source, err := base64.StdEncoding.DecodeString(script.Script)
	if err != nil {
		return nil, fmt.Errorf("failed to decode script body: %w", err)
	}
	return &InitScriptDetail{
		ScriptID: script.ScriptID,
		Name:     script.Name,
		Enabled:  script.Enabled,
		Position: script.Position,
		Source:   string(source),
	}, nil
}

// CreateInitScriptArgs describes a new global init script.
type CreateInitScriptArgs struct {
	Name    string `json:"name" jsonschema:"required" jsonschema_description:"Human-readable name for the script"`
	Source  string `json:"source" jsonschema:"required" jsonschema_description:"Plain-text shell script body to run at cluster startup"`
	Enabled bool   `json:"enabled,omitempty" jsonschema_description:"Whether the script runs on new clusters immediately"`
}

// CreatedInitScript carries the new script's ID.
type CreatedInitScript struct {
	ScriptID string `json:"script_id"`
}

// Create registers a global init script. The body is uploaded
// base64-encoded, matching what the API expects.
func (a InitScriptsAPI) Create(ctx context.Context, args CreateInitScriptArgs) (*CreatedInitScript, error) {
	if strings.TrimSpace(args.Source) == "" {
		return nil, errors.NewValidationError("source", "", "script body must not be empty")
	}
	payload := map[string]any{
		"name":    args.Name,
		"script":  base64.StdEncoding.EncodeToString([]byte(args.Source)),
		"enabled": args.Enabled,
	}
	return apiPost[CreatedInitScript](ctx, a.c, "global_init_scripts", "create",
		"/api/2.0/global-init-scripts", payload)
}

// Delete removes a global init script. Running clusters are not
// affected.
func (a InitScriptsAPI) Delete(ctx context.Context, args GetInitScriptArgs) (*ActionStatus, error) {
	_, err := apiDelete[struct{}](ctx, a.c, "global_init_scripts", "delete",
		"/api/2.0/global-init-scripts/"+url.PathEscape(args.ScriptID), nil)
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "deleted",
		Message: fmt.Sprintf("Global init script %q deleted.", args.ScriptID),
	}, nil
}
