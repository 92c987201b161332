package databricks

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakeware/databricks-mcp-server/internal/errors"
)

func TestExportNotebookDecodesContent(t *testing.T) {
	source := "print('hello')\n"
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/workspace/export", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Users/a@example.com/nb", r.URL.Query().Get("path"))
		assert.Equal(t, "SOURCE", r.URL.Query().Get("format"))
		json.NewEncoder(w).Encode(map[string]string{
			"content":   base64.StdEncoding.EncodeToString([]byte(source)),
			"file_type": "py",
		})
	})
	c := newTestWorkspace(t, mux)

	export, err := c.Workspace.ExportNotebook(context.Background(), WorkspacePathArgs{
		Path: "/Users/a@example.com/nb",
	})
	require.NoError(t, err)
	assert.Equal(t, source, export.Content)
	assert.Equal(t, "py", export.FileType)
}

func TestImportNotebookEncodesAndValidates(t *testing.T) {
	var payload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/workspace/import", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.Write([]byte(`{}`))
	})
	c := newTestWorkspace(t, mux)

	_, err := c.Workspace.ImportNotebook(context.Background(), ImportNotebookArgs{
		Path: "/x", Content: "SELECT 1", Language: "cobol",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	result, err := c.Workspace.ImportNotebook(context.Background(), ImportNotebookArgs{
		Path: "/x", Content: "SELECT 1", Language: "sql", Overwrite: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "imported", result.Status)
	assert.Equal(t, "SQL", payload["language"])
	assert.Equal(t, true, payload["overwrite"])

	decoded, decErr := base64.StdEncoding.DecodeString(payload["content"].(string))
	require.NoError(t, decErr)
	assert.Equal(t, "SELECT 1", string(decoded))
}

func TestWorkspaceListDefaultsToRoot(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/workspace/list", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Query().Get("path"))
		json.NewEncoder(w).Encode(workspaceListResponse{
			Objects: []ObjectInfo{
				{ObjectType: "DIRECTORY", Path: "/Users"},
				{ObjectType: "NOTEBOOK", Path: "/intro", Language: "PYTHON"},
			},
		})
	})
	c := newTestWorkspace(t, mux)

	listing, err := c.Workspace.List(context.Background(), ListWorkspaceArgs{})
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Count)

	nb := listing.Objects[1].(map[string]any)
	assert.Equal(t, "NOTEBOOK", nb["object_type"])
}

func TestCreateRepoValidatesProvider(t *testing.T) {
	c := newTestWorkspace(t, http.NewServeMux())

	_, err := c.Workspace.CreateRepo(context.Background(), CreateRepoArgs{
		URL: "https://github.com/acme/etl", Provider: "sourceforge",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
