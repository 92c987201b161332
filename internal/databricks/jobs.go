package databricks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/lakeware/databricks-mcp-server/internal/errors"
	"github.com/lakeware/databricks-mcp-server/internal/render"
)

// JobsAPI covers job definitions and their runs (Jobs API 2.1).
type JobsAPI struct {
	c *Client
}

// Job is a job definition as returned by jobs/get.
type Job struct {
	JobID           int64        `json:"job_id"`
	CreatorUserName string       `json:"creator_user_name,omitempty"`
	CreatedTime     int64        `json:"created_time,omitempty"`
	Settings        *JobSettings `json:"settings,omitempty"`
}

// JobSettings holds the mutable portion of a job definition.
type JobSettings struct {
	Name              string            `json:"name,omitempty"`
	Tasks             []JobTask         `json:"tasks,omitempty"`
	MaxConcurrentRuns int               `json:"max_concurrent_runs,omitempty"`
	Tags              map[string]string `json:"tags,omitempty"`
	Schedule          *CronSchedule     `json:"schedule,omitempty"`
}

// JobTask is a single task within a job.
type JobTask struct {
	TaskKey           string           `json:"task_key"`
	ExistingClusterID string           `json:"existing_cluster_id,omitempty"`
	NotebookTask      *NotebookTask    `json:"notebook_task,omitempty"`
	SparkPythonTask   *SparkPythonTask `json:"spark_python_task,omitempty"`
}

// NotebookTask runs a workspace notebook.
type NotebookTask struct {
	NotebookPath   string            `json:"notebook_path"`
	BaseParameters map[string]string `json:"base_parameters,omitempty"`
}

// SparkPythonTask runs a Python file on a Spark cluster.
type SparkPythonTask struct {
	PythonFile string   `json:"python_file"`
	Parameters []string `json:"parameters,omitempty"`
}

// CronSchedule is a job's quartz cron schedule.
type CronSchedule struct {
	QuartzCronExpression string `json:"quartz_cron_expression"`
	TimezoneID           string `json:"timezone_id"`
	PauseStatus          string `json:"pause_status,omitempty"`
}

// Run is one execution of a job.
type Run struct {
	RunID       int64     `json:"run_id"`
	JobID       int64     `json:"job_id,omitempty"`
	RunName     string    `json:"run_name,omitempty"`
	State       *RunState `json:"state,omitempty"`
	StartTime   int64     `json:"start_time,omitempty"`
	EndTime     int64     `json:"end_time,omitempty"`
	RunPageURL  string    `json:"run_page_url,omitempty"`
	RunDuration int64     `json:"run_duration,omitempty"`
}

// RunState is the lifecycle state of a run.
type RunState struct {
	LifeCycleState string `json:"life_cycle_state,omitempty"`
	ResultState    string `json:"result_state,omitempty"`
	StateMessage   string `json:"state_message,omitempty"`
}

type jobListResponse struct {
	Jobs          []Job  `json:"jobs"`
	NextPageToken string `json:"next_page_token"`
}

type runListResponse struct {
	Runs          []Run  `json:"runs"`
	NextPageToken string `json:"next_page_token"`
}

// ListJobsArgs filters a job listing.
type ListJobsArgs struct {
	Limit int    `json:"limit,omitempty" jsonschema_description:"Maximum number of jobs to return (1-100, default 100)"`
	Name  string `json:"name,omitempty" jsonschema_description:"Return only jobs whose name contains this string"`
}

// JobListing is the rendered result of a job listing.
type JobListing struct {
	Jobs  []any `json:"jobs"`
	Count int   `json:"count"`
}

// List returns job definitions, newest first, capped at args.Limit.
func (a JobsAPI) List(ctx context.Context, args ListJobsArgs) (*JobListing, error) {
	seq := pages(ctx, func(ctx context.Context, token string) ([]Job, string, error) {
		q := url.Values{}
		if args.Name != "" {
			q.Set("name", args.Name)
		}
		resp, err := apiGet[jobListResponse](ctx, a.c, "jobs", "list",
			pathWithQuery("/api/2.1/jobs/list", withToken(q, token)))
		if err != nil {
			return nil, "", err
		}
		return resp.Jobs, resp.NextPageToken, nil
	})
	jobs, err := render.Collect(seq, render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &JobListing{Jobs: jobs, Count: len(jobs)}, nil
}

// GetJobArgs identifies a single job.
type GetJobArgs struct {
	JobID int64 `json:"job_id" jsonschema:"required" jsonschema_description:"The unique numeric identifier of the job"`
}

// Get returns the full definition of one job.
func (a JobsAPI) Get(ctx context.Context, args GetJobArgs) (*Job, error) {
	return apiGet[Job](ctx, a.c, "jobs", "get",
		"/api/2.1/jobs/get?job_id="+strconv.FormatInt(args.JobID, 10))
}

// CreateJobArgs describes a single-task job. Exactly one of
// NotebookPath or PythonFile must be set.
type CreateJobArgs struct {
	Name         string `json:"name" jsonschema:"required" jsonschema_description:"Human-readable name for the job"`
	TaskKey      string `json:"task_key" jsonschema:"required" jsonschema_description:"Unique key for the task within this job (alphanumeric, dashes, underscores)"`
	NotebookPath string `json:"notebook_path,omitempty" jsonschema_description:"Workspace path of the notebook to run. Mutually exclusive with python_file"`
	PythonFile   string `json:"python_file,omitempty" jsonschema_description:"Path of a Python file to run (e.g. dbfs:/scripts/etl.py). Mutually exclusive with notebook_path"`
	ClusterID    string `json:"cluster_id,omitempty" jsonschema_description:"ID of an existing all-purpose cluster to run the task on"`
}

// CreateJobResult confirms job creation.
type CreateJobResult struct {
	JobID   int64  `json:"job_id"`
	Name    string `json:"name"`
	TaskKey string `json:"task_key"`
	Message string `json:"message"`
}

// Create creates a single-task job running either a notebook or a
// Python file.
func (a JobsAPI) Create(ctx context.Context, args CreateJobArgs) (*CreateJobResult, error) {
	if args.NotebookPath != "" && args.PythonFile != "" {
		return nil, errors.NewValidationError("notebook_path", "",
			"provide either notebook_path or python_file, not both")
	}
	if args.NotebookPath == "" && args.PythonFile == "" {
		return nil, errors.NewValidationError("notebook_path", "",
			"provide either notebook_path or python_file")
	}

	task := JobTask{
		TaskKey:           args.TaskKey,
		ExistingClusterID: args.ClusterID,
	}
	if args.NotebookPath != "" {
		task.NotebookTask = &NotebookTask{NotebookPath: args.NotebookPath}
	} else {
		task.SparkPythonTask = &SparkPythonTask{PythonFile: args.PythonFile}
	}

	created, err := apiPost[Job](ctx, a.c, "jobs", "create", "/api/2.1/jobs/create", map[string]any{
		"name":  args.Name,
		"tasks": []JobTask{task},
	})
	if err != nil {
		return nil, err
	}
	a.c.invalidate("jobs")
	return &CreateJobResult{
		JobID:   created.JobID,
		Name:    args.Name,
		TaskKey: args.TaskKey,
		Message: fmt.Sprintf("Job %q created successfully with ID %d.", args.Name, created.JobID),
	}, nil
}

// DeleteJobArgs identifies the job to delete.
type DeleteJobArgs struct {
	JobID int64 `json:"job_id" jsonschema:"required" jsonschema_description:"The unique numeric identifier of the job to delete"`
}

// Delete permanently removes a job definition. Active runs are
// cancelled.
func (a JobsAPI) Delete(ctx context.Context, args DeleteJobArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "jobs", "delete", "/api/2.1/jobs/delete",
		map[string]any{"job_id": args.JobID})
	if err != nil {
		return nil, err
	}
	a.c.invalidate("jobs")
	return &ActionStatus{
		Status:  "deleted",
		Message: fmt.Sprintf("Job %d has been deleted.", args.JobID),
	}, nil
}

// RunNowArgs identifies the job to trigger.
type RunNowArgs struct {
	JobID int64 `json:"job_id" jsonschema:"required" jsonschema_description:"The unique numeric identifier of the job to run"`
}

// RunNowResult confirms a triggered run.
type RunNowResult struct {
	Status  string `json:"status"`
	RunID   int64  `json:"run_id"`
	JobID   int64  `json:"job_id"`
	Message string `json:"message"`
}

// RunNow triggers a run with the job's default parameters and returns
// without waiting for completion.
func (a JobsAPI) RunNow(ctx context.Context, args RunNowArgs) (*RunNowResult, error) {
	resp, err := apiPost[Run](ctx, a.c, "jobs", "run_now", "/api/2.1/jobs/run-now",
		map[string]any{"job_id": args.JobID})
	if err != nil {
		return nil, err
	}
	return &RunNowResult{
		Status:  "triggered",
		RunID:   resp.RunID,
		JobID:   args.JobID,
		Message: fmt.Sprintf("Job %d triggered. Run ID: %d. Use databricks_get_run to check status.", args.JobID, resp.RunID),
	}, nil
}

// ListRunsArgs filters a run listing.
type ListRunsArgs struct {
	JobID int64 `json:"job_id,omitempty" jsonschema_description:"Filter runs to this specific job. Omit to list runs across all jobs"`
	Limit int   `json:"limit,omitempty" jsonschema_description:"Maximum number of runs to return (1-100, default 100)"`
}

// RunListing is the rendered result of a run listing.
type RunListing struct {
	Runs  []any `json:"runs"`
	Count int   `json:"count"`
}

// ListRuns returns runs in descending order by start time.
func (a JobsAPI) ListRuns(ctx context.Context, args ListRunsArgs) (*RunListing, error) {
	seq := pages(ctx, func(ctx context.Context, token string) ([]Run, string, error) {
		q := url.Values{}
		if args.JobID > 0 {
			q.Set("job_id", strconv.FormatInt(args.JobID, 10))
		}
		resp, err := apiGet[runListResponse](ctx, a.c, "jobs", "list_runs",
			pathWithQuery("/api/2.1/jobs/runs/list", withToken(q, token)))
		if err != nil {
			return nil, "", err
		}
		return resp.Runs, resp.NextPageToken, nil
	})
	runs, err := render.Collect(seq, render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &RunListing{Runs: runs, Count: len(runs)}, nil
}

// GetRunArgs identifies a single run.
type GetRunArgs struct {
	RunID int64 `json:"run_id" jsonschema:"required" jsonschema_description:"The unique numeric identifier of the run"`
}

// GetRun returns the full details of one run, including state and any
// error messages.
func (a JobsAPI) GetRun(ctx context.Context, args GetRunArgs) (*Run, error) {
	return apiGet[Run](ctx, a.c, "jobs", "get_run",
		"/api/2.1/jobs/runs/get?run_id="+strconv.FormatInt(args.RunID, 10))
}

// CancelRunArgs identifies the run to cancel.
type CancelRunArgs struct {
	RunID int64 `json:"run_id" jsonschema:"required" jsonschema_description:"The unique numeric identifier of the run to cancel"`
}

// CancelRun requests cancellation of an active run. Cancellation is
// asynchronous; the run may still appear RUNNING briefly.
func (a JobsAPI) CancelRun(ctx context.Context, args CancelRunArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "jobs", "cancel_run", "/api/2.1/jobs/runs/cancel",
		map[string]any{"run_id": args.RunID})
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "cancelling",
		Message: fmt.Sprintf("Cancellation requested for run %d. Use databricks_get_run to verify termination.", args.RunID),
	}, nil
}

// RunOutput is the output of a completed run.
type RunOutput struct {
	NotebookOutput *struct {
		Result    string `json:"result,omitempty"`
		Truncated bool   `json:"truncated,omitempty"`
	} `json:"notebook_output,omitempty"`
	Logs          string `json:"logs,omitempty"`
	LogsTruncated bool   `json:"logs_truncated,omitempty"`
	Error         string `json:"error,omitempty"`
	ErrorTrace    string `json:"error_trace,omitempty"`
	Metadata      *Run   `json:"metadata,omitempty"`
}

// GetRunOutput returns the output of a completed run: notebook exit
// values, stdout/stderr logs, or SQL results depending on task type.
func (a JobsAPI) GetRunOutput(ctx context.Context, args GetRunArgs) (*RunOutput, error) {
	return apiGet[RunOutput](ctx, a.c, "jobs", "get_run_output",
		"/api/2.1/jobs/runs/get-output?run_id="+strconv.FormatInt(args.RunID, 10))
}

// RunExport is the exported content of a run.
type RunExport struct {
	Views []struct {
		Content string `json:"content,omitempty"`
		Name    string `json:"name,omitempty"`
		Type    string `json:"type,omitempty"`
	} `json:"views,omitempty"`
}

// ExportRun exports a run's notebook content in HTML form, including
// cell outputs and visualizations.
func (a JobsAPI) ExportRun(ctx context.Context, args GetRunArgs) (*RunExport, error) {
	return apiGet[RunExport](ctx, a.c, "jobs", "export_run",
		"/api/2.1/jobs/runs/export?run_id="+strconv.FormatInt(args.RunID, 10))
}
