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

func TestTokensCreateReturnsValueOnce(t *testing.T) {
	var payload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/token/create", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &payload)
		w.Write([]byte(`{"token_value":"dapi-secret","token_info":{"token_id":"t1","comment":"ci"}}`))
	})
	c := newTestWorkspace(t, mux)

	created, err := c.Tokens.Create(context.Background(), CreateTokenArgs{
		Comment:         "ci",
		LifetimeSeconds: 3600,
	})
	require.NoError(t, err)
	assert.Equal(t, "dapi-secret", created.TokenValue)
	assert.Equal(t, "t1", created.TokenInfo.TokenID)
	assert.Equal(t, float64(3600), payload["lifetime_seconds"])
}

func TestTokensRevoke(t *testing.T) {
	var payload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/token/delete", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &payload)
		w.Write([]byte(`{}`))
	})
	c := newTestWorkspace(t, mux)

	status, err := c.Tokens.Revoke(context.Background(), RevokeTokenArgs{TokenID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, "revoked", status.Status)
	assert.Equal(t, "t1", payload["token_id"])
}

func TestGitCredentialsCreateValidatesProvider(t *testing.T) {
	c := newTestWorkspace(t, http.NewServeMux())

	_, err := c.GitCreds.Create(context.Background(), CreateGitCredentialArgs{
		GitProvider:         "sourceforge",
		PersonalAccessToken: "tok",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestGitCredentialsUpdateUsesPatch(t *testing.T) {
	var gotMethod string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/git-credentials/7", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Write([]byte(`{}`))
	})
	c := newTestWorkspace(t, mux)

	status, err := c.GitCreds.Update(context.Background(), UpdateGitCredentialArgs{
		CredentialID:        7,
		GitProvider:         "gitHub",
		PersonalAccessToken: "new-tok",
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "updated", status.Status)
}

func TestInitScriptsGetDecodesBody(t *testing.T) {
	script := "#!/bin/bash\necho hello"
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/global-init-scripts/s1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(InitScript{
			ScriptID: "s1",
			Name:     "agent-install",
			Enabled:  true,
			Script:   base64.StdEncoding.EncodeToString([]byte(script)),
		})
	})
	c := newTestWorkspace(t, mux)

	detail, err := c.InitScripts.Get(context.Background(), GetInitScriptArgs{ScriptID: "s1"})
	require.NoError(t, err)
	assert.Equal(t, script, detail.Source)
	assert.True(t, detail.Enabled)
}

func TestInitScriptsCreateEncodesBody(t *testing.T) {
	var payload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/global-init-scripts", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &payload)
		w.Write([]byte(`{"script_id":"s2"}`))
	})
	c := newTestWorkspace(t, mux)

	created, err := c.InitScripts.Create(context.Background(), CreateInitScriptArgs{
		Name:   "agent-install",
		Source: "echo hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "s2", created.ScriptID)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("echo hi")), payload["script"])
}

func TestInitScriptsCreateRequiresBody(t *testing.T) {
	c := newTestWorkspace(t, http.NewServeMux())

	_, err := c.InitScripts.Create(context.Background(), CreateInitScriptArgs{Name: "empty"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestGetGrantsValidatesSecurableType(t *testing.T) {
	c := newTestWorkspace(t, http.NewServeMux())

	_, err := c.Catalog.GetGrants(context.Background(), GetGrantsArgs{
		SecurableType: "spreadsheet",
		FullName:      "main",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestUpdateGrantsSendsChangeSet(t *testing.T) {
	var gotMethod string
	var payload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.1/unity-catalog/permissions/table/main.sales.orders", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &payload)
		w.Write([]byte(`{"privilege_assignments":[{"principal":"data-team","privileges":["SELECT"]}]}`))
	})
	c := newTestWorkspace(t, mux)

	result, err := c.Catalog.UpdateGrants(context.Background(), UpdateGrantsArgs{
		SecurableType: "table",
		FullName:      "main.sales.orders",
		Principal:     "data-team",
		Add:           []string{"SELECT"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)

	changes, ok := payload["changes"].([]any)
	require.True(t, ok)
	change := changes[0].(map[string]any)
	assert.Equal(t, "data-team", change["principal"])
	assert.Equal(t, []any{"SELECT"}, change["add"])
	assert.NotContains(t, change, "remove")
	assert.Equal(t, "data-team", result.PrivilegeAssignments[0].Principal)
}

func TestUpdateGrantsRequiresChange(t *testing.T) {
	c := newTestWorkspace(t, http.NewServeMux())

	_, err := c.Catalog.UpdateGrants(context.Background(), UpdateGrantsArgs{
		SecurableType: "table",
		FullName:      "main.sales.orders",
		Principal:     "bob",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestMetastoreSummary(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.1/unity-catalog/metastore_summary", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"metastore_id":"ms-1","name":"primary","cloud":"azure","region":"westeurope"}`))
	})
	c := newTestWorkspace(t, mux)

	summary, err := c.Catalog.MetastoreSummary(context.Background(), MetastoreSummaryArgs{})
	require.NoError(t, err)
	assert.Equal(t, "ms-1", summary.MetastoreID)
	assert.Equal(t, "azure", summary.Cloud)
}
