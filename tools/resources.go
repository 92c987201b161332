package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lakeware/databricks-mcp-server/internal/databricks"
	"github.com/lakeware/databricks-mcp-server/internal/render"
)

// workspaceInfoURI identifies the read-only workspace context resource.
const workspaceInfoURI = "databricks://workspace/info"

// RegisterResources registers read-only workspace context resources
// with the MCP server.
func RegisterResources(server *mcp.Server, client *databricks.Client) {
	server.AddResource(&mcp.Resource{
		URI:         workspaceInfoURI,
		Name:        "workspace_info",
		Description: "Databricks workspace information: URL and current user",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      workspaceInfoURI,
				MIMEType: "application/json",
				Text:     workspaceInfoText(ctx, client),
			}},
		}, nil
	})
}

// workspaceInfoText renders host and caller identity as JSON. Auth
// failures render like tool errors so the reader still gets text.
func workspaceInfoText(ctx context.Context, client *databricks.Client) string {
	me, err := client.IAM.Me(ctx, databricks.MeArgs{})
	if err != nil {
		return render.FormatError(err)
	}
	return render.ToJSON(map[string]any{
		"host": client.Host(),
		"user": map[string]any{
			"id":           me.ID,
			"user_name":    me.UserName,
			"display_name": me.DisplayName,
		},
	})
}
