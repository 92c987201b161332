package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lakeware/databricks-mcp-server/internal/base"
	"github.com/lakeware/databricks-mcp-server/internal/databricks"
)

func TestWorkspaceInfoText(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/preview/scim/v2/Me", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"123","userName":"alice@example.com","displayName":"Alice"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := databricks.NewWithBase(base.NewClient(srv.URL, "dapi-test"), quietLogger())

	text := workspaceInfoText(context.Background(), client)

	for _, want := range []string{srv.URL, "alice@example.com", "Alice", `"id": "123"`} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in workspace info:\n%s", want, text)
		}
	}
}

func TestWorkspaceInfoTextRendersAuthFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/preview/scim/v2/Me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error_code":"PERMISSION_DENIED","message":"Invalid access token."}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := databricks.NewWithBase(base.NewClient(srv.URL, "bad-token"), quietLogger())

	text := workspaceInfoText(context.Background(), client)

	if text != "APIError: [PERMISSION_DENIED] Invalid access token." {
		t.Errorf("Unexpected error rendering: %q", text)
	}
}

func TestRegisterResourcesDoesNotPanic(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0.0.0"}, nil)
	RegisterResources(server, databricks.NewWithBase(base.NewClient("http://unused", "x"), quietLogger()))
}
