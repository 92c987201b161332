package databricks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakeware/databricks-mcp-server/internal/base"
	"github.com/lakeware/databricks-mcp-server/internal/errors"
)

func newTestWorkspace(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithBase(base.NewClient(srv.URL, "dapi-test"), nil)
}

func TestJobsListPaginates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.1/jobs/list", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page_token") {
		case "":
			json.NewEncoder(w).Encode(jobListResponse{
				Jobs: []Job{
					{JobID: 1, Settings: &JobSettings{Name: "etl_daily"}},
					{JobID: 2, Settings: &JobSettings{Name: "etl_hourly"}},
				},
				NextPageToken: "page2",
			})
		case "page2":
			json.NewEncoder(w).Encode(jobListResponse{
				Jobs: []Job{{JobID: 3, Settings: &JobSettings{Name: "cleanup"}}},
			})
		default:
			t.Errorf("unexpected page token %q", r.URL.Query().Get("page_token"))
		}
	})
	c := newTestWorkspace(t, mux)

	listing, err := c.Jobs.List(context.Background(), ListJobsArgs{})
	require.NoError(t, err)
	assert.Equal(t, 3, listing.Count)
	assert.Len(t, listing.Jobs, 3)

	first, ok := listing.Jobs[0].(map[string]any)
	require.True(t, ok, "items should be normalized maps")
	assert.Equal(t, int64(1), first["job_id"])
}

func TestJobsListHonorsLimit(t *testing.T) {
	var fetches int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.1/jobs/list", func(w http.ResponseWriter, r *http.Request) {
		fetches++
		json.NewEncoder(w).Encode(jobListResponse{
			Jobs:          []Job{{JobID: 1}, {JobID: 2}, {JobID: 3}},
			NextPageToken: "more",
		})
	})
	c := newTestWorkspace(t, mux)

	listing, err := c.Jobs.List(context.Background(), ListJobsArgs{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Count)
	assert.Equal(t, 1, fetches, "stopping at the limit should not fetch the next page")
}

func TestJobsCreateRequiresExactlyOneTaskSource(t *testing.T) {
	c := newTestWorkspace(t, http.NewServeMux())

	_, err := c.Jobs.Create(context.Background(), CreateJobArgs{
		Name:    "j",
		TaskKey: "main",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = c.Jobs.Create(context.Background(), CreateJobArgs{
		Name:         "j",
		TaskKey:      "main",
		NotebookPath: "/nb",
		PythonFile:   "dbfs:/x.py",
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, err.Error(), "not both")
}

func TestJobsCreateBuildsNotebookTask(t *testing.T) {
	var payload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.1/jobs/create", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		json.NewEncoder(w).Encode(Job{JobID: 99})
	})
	c := newTestWorkspace(t, mux)

	result, err := c.Jobs.Create(context.Background(), CreateJobArgs{
		Name:         "nightly",
		TaskKey:      "main",
		NotebookPath: "/Users/a@example.com/etl",
		ClusterID:    "c-1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), result.JobID)
	assert.Contains(t, result.Message, "99")

	tasks := payload["tasks"].([]any)
	require.Len(t, tasks, 1)
	task := tasks[0].(map[string]any)
	assert.Equal(t, "main", task["task_key"])
	assert.Equal(t, "c-1", task["existing_cluster_id"])
	nb := task["notebook_task"].(map[string]any)
	assert.Equal(t, "/Users/a@example.com/etl", nb["notebook_path"])
	assert.NotContains(t, task, "spark_python_task")
}

func TestJobsGetSurfacesAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.1/jobs/get", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error_code":"RESOURCE_DOES_NOT_EXIST","message":"Job 42 does not exist."}`))
	})
	c := newTestWorkspace(t, mux)

	_, err := c.Jobs.Get(context.Background(), GetJobArgs{JobID: 42})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "RESOURCE_DOES_NOT_EXIST", apiErr.Code)
	assert.True(t, apiErr.IsNotFound())
}

func TestJobsRunNow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.1/jobs/run-now", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Run{RunID: 777})
	})
	c := newTestWorkspace(t, mux)

	result, err := c.Jobs.RunNow(context.Background(), RunNowArgs{JobID: 5})
	require.NoError(t, err)
	assert.Equal(t, "triggered", result.Status)
	assert.Equal(t, int64(777), result.RunID)
}

func TestJobsCancelRun(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.1/jobs/runs/cancel", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	c := newTestWorkspace(t, mux)

	result, err := c.Jobs.CancelRun(context.Background(), CancelRunArgs{RunID: 777})
	require.NoError(t, err)
	assert.Equal(t, "cancelling", result.Status)
	assert.Contains(t, result.Message, "777")
}
