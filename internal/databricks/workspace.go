package databricks

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lakeware/databricks-mcp-server/internal/errors"
	"github.com/lakeware/databricks-mcp-server/internal/render"
)

// WorkspaceAPI covers the workspace file tree (notebooks, directories,
// files) and Git folders (repos).
type WorkspaceAPI struct {
	c *Client
}

// ObjectInfo describes one workspace object.
type ObjectInfo struct {
	ObjectType string `json:"object_type,omitempty"` // NOTEBOOK, DIRECTORY, FILE, REPO
	ObjectID   int64  `json:"object_id,omitempty"`
	Path       string `json:"path,omitempty"`
	Language   string `json:"language,omitempty"`
	CreatedAt  int64  `json:"created_at,omitempty"`
	ModifiedAt int64  `json:"modified_at,omitempty"`
	Size       int64  `json:"size,omitempty"`
}

type workspaceListResponse struct {
	Objects []ObjectInfo `json:"objects"`
}

// ListWorkspaceArgs scopes a listing to one directory.
type ListWorkspaceArgs struct {
	Path  string `json:"path,omitempty" jsonschema_description:"Workspace directory to list (default /)"`
	Limit int    `json:"limit,omitempty" jsonschema_description:"Maximum number of objects to return (1-100, default 100)"`
}

// WorkspaceListing is the rendered result of a directory listing.
type WorkspaceListing struct {
	Objects []any `json:"objects"`
	Count   int   `json:"count"`
}

// List returns the notebooks, directories, and files under a path.
func (a WorkspaceAPI) List(ctx context.Context, args ListWorkspaceArgs) (*WorkspaceListing, error) {
	path := args.Path
	if path == "" {
		path = "/"
	}
	resp, err := apiGet[workspaceListResponse](ctx, a.c, "workspace", "list",
		"/api/2.0/workspace/list?path="+url.QueryEscape(path))
	if err != nil {
		return nil, err
	}
	objects, err := render.Collect(sliceSeq(resp.Objects), render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &WorkspaceListing{Objects: objects, Count: len(objects)}, nil
}

// WorkspacePathArgs identifies one workspace object by path.
type WorkspacePathArgs struct {
	Path string `json:"path" jsonschema:"required" jsonschema_description:"Absolute workspace path, e.g. /Users/alice@example.com/etl"`
}

// GetStatus returns type and metadata for one workspace object.
func (a WorkspaceAPI) GetStatus(ctx context.Context, args WorkspacePathArgs) (*ObjectInfo, error) {
	return apiGet[ObjectInfo](ctx, a.c, "workspace", "get_status",
		"/api/2.0/workspace/get-status?path="+url.QueryEscape(args.Path))
}

// Mkdirs creates a directory and any missing parents.
func (a WorkspaceAPI) Mkdirs(ctx context.Context, args WorkspacePathArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "workspace", "mkdirs", "/api/2.0/workspace/mkdirs",
		map[string]any{"path": args.Path})
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "created",
		Message: fmt.Sprintf("Directory %q created.", args.Path),
	}, nil
}

// DeleteWorkspaceArgs identifies the object to delete.
type DeleteWorkspaceArgs struct {
	Path      string `json:"path" jsonschema:"required" jsonschema_description:"Absolute workspace path of the object to delete"`
	Recursive bool   `json:"recursive,omitempty" jsonschema_description:"Delete directories and their contents recursively"`
}

// Delete removes a notebook, file, or directory.
func (a WorkspaceAPI) Delete(ctx context.Context, args DeleteWorkspaceArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "workspace", "delete", "/api/2.0/workspace/delete",
		map[string]any{"path": args.Path, "recursive": args.Recursive})
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "deleted",
		Message: fmt.Sprintf("Workspace object %q deleted.", args.Path),
	}, nil
}

// NotebookExport is exported notebook content.
type NotebookExport struct {
	Path     string `json:"path,omitempty"`
	Content  string `json:"content,omitempty"`
	FileType string `json:"file_type,omitempty"`
}

// ExportNotebook exports a notebook in SOURCE format, decoding the
// API's base64 payload into readable text.
func (a WorkspaceAPI) ExportNotebook(ctx context.Context, args WorkspacePathArgs) (*NotebookExport, error) {
	resp, err := apiGet[struct {
		Content  string `json:"content"`
		FileType string `json:"file_type"`
	}](ctx, a.c, "workspace", "export",
		"/api/2.0/workspace/export?format=SOURCE&path="+url.QueryEscape(args.Path))
	if err != nil {
		return nil, err
	}
	decoded, err := base64.StdEncoding.DecodeString(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exported content: %w", err)
	}
	return &NotebookExport{
		Path:     args.Path,
		Content:  string(decoded),
		FileType: resp.FileType,
	}, nil
}

// notebookLanguages are the languages the import API accepts.
var notebookLanguages = map[string]bool{
	"PYTHON": true,
	"SQL":    true,
	"SCALA":  true,
	"R":      true,
}

// ImportNotebookArgs carries notebook source to import.
type ImportNotebookArgs struct {
	Path      string `json:"path" jsonschema:"required" jsonschema_description:"Absolute workspace path to import the notebook to"`
	Content   string `json:"content" jsonschema:"required" jsonschema_description:"Notebook source code as plain text"`
	Language  string `json:"language,omitempty" jsonschema_description:"Notebook language: PYTHON, SQL, SCALA, or R (default PYTHON)"`
	Overwrite bool   `json:"overwrite,omitempty" jsonschema_description:"Overwrite an existing object at the path"`
}

// ImportNotebook imports source text as a notebook at the given path.
func (a WorkspaceAPI) ImportNotebook(ctx context.Context, args ImportNotebookArgs) (*ActionStatus, error) {
	lang := strings.ToUpper(strings.TrimSpace(args.Language))
	if lang == "" {
		lang = "PYTHON"
	}
	if !notebookLanguages[lang] {
		return nil, errors.NewValidationError("language", args.Language,
			"must be one of PYTHON, SQL, SCALA, R")
	}
	_, err := apiPost[struct{}](ctx, a.c, "workspace", "import", "/api/2.0/workspace/import",
		map[string]any{
			"path":      args.Path,
			"content":   base64.StdEncoding.EncodeToString([]byte(args.Content)),
			"format":    "SOURCE",
			"language":  lang,
			"overwrite": args.Overwrite,
		})
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "imported",
		Message: fmt.Sprintf("Notebook imported to %q.", args.Path),
	}, nil
}

// Repo is a Git folder checked out in the workspace.
type Repo struct {
	ID           int64  `json:"id,omitempty"`
	URL          string `json:"url,omitempty"`
	Provider     string `json:"provider,omitempty"`
	Path         string `json:"path,omitempty"`
	Branch       string `json:"branch,omitempty"`
	HeadCommitID string `json:"head_commit_id,omitempty"`
}

type repoListResponse struct {
	Repos         []Repo `json:"repos"`
	NextPageToken string `json:"next_page_token"`
}

// ListReposArgs bounds a repo listing.
type ListReposArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of repos to return (1-100, default 100)"`
}

// RepoListing is the rendered result of a repo listing.
type RepoListing struct {
	Repos []any `json:"repos"`
	Count int   `json:"count"`
}

// ListRepos returns Git folders checked out in the workspace.
func (a WorkspaceAPI) ListRepos(ctx context.Context, args ListReposArgs) (*RepoListing, error) {
	seq := pages(ctx, func(ctx context.Context, token string) ([]Repo, string, error) {
		q := url.Values{}
		if token != "" {
			q.Set("next_page_token", token)
		}
		resp, err := apiGet[repoListResponse](ctx, a.c, "workspace", "list_repos",
			pathWithQuery("/api/2.0/repos", q))
		if err != nil {
			return nil, "", err
		}
		return resp.Repos, resp.NextPageToken, nil
	})
	repos, err := render.Collect(seq, render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &RepoListing{Repos: repos, Count: len(repos)}, nil
}

// GetRepoArgs identifies a single repo.
type GetRepoArgs struct {
	RepoID int64 `json:"repo_id" jsonschema:"required" jsonschema_description:"The unique numeric identifier of the repo"`
}

// GetRepo returns details for one Git folder.
func (a WorkspaceAPI) GetRepo(ctx context.Context, args GetRepoArgs) (*Repo, error) {
	return apiGet[Repo](ctx, a.c, "workspace", "get_repo",
		"/api/2.0/repos/"+strconv.FormatInt(args.RepoID, 10))
}

// repoProviders are the Git providers the repos API accepts.
var repoProviders = map[string]bool{
	"gitHub":              true,
	"gitLab":              true,
	"bitbucketCloud":      true,
	"azureDevOpsServices": true,
}

// CreateRepoArgs describes a Git folder to check out.
type CreateRepoArgs struct {
	URL      string `json:"url" jsonschema:"required" jsonschema_description:"HTTPS URL of the Git repository"`
	Provider string `json:"provider" jsonschema:"required" jsonschema_description:"Git provider: gitHub, gitLab, bitbucketCloud, or azureDevOpsServices"`
	Path     string `json:"path,omitempty" jsonschema_description:"Workspace path to check the repo out at, e.g. /Repos/alice@example.com/etl"`
}

// CreateRepo checks a Git repository out into the workspace.
func (a WorkspaceAPI) CreateRepo(ctx context.Context, args CreateRepoArgs) (*Repo, error) {
	if !repoProviders[args.Provider] {
		return nil, errors.NewValidationError("provider", args.Provider,
			"must be one of gitHub, gitLab, bitbucketCloud, azureDevOpsServices")
	}
	payload := map[string]any{
		"url":      args.URL,
		"provider": args.Provider,
	}
	if args.Path != "" {
		payload["path"] = args.Path
	}
	return apiPost[Repo](ctx, a.c, "workspace", "create_repo", "/api/2.0/repos", payload)
}

// UpdateRepoArgs checks out a different branch.
type UpdateRepoArgs struct {
	RepoID int64  `json:"repo_id" jsonschema:"required" jsonschema_description:"The unique numeric identifier of the repo"`
	Branch string `json:"branch" jsonschema:"required" jsonschema_description:"The branch to check out"`
}

// UpdateRepo switches a repo to a different branch, pulling the latest
// commit.
func (a WorkspaceAPI) UpdateRepo(ctx context.Context, args UpdateRepoArgs) (*Repo, error) {
	return apiCall[Repo](ctx, a.c, "workspace", "update_repo", http.MethodPatch,
		"/api/2.0/repos/"+strconv.FormatInt(args.RepoID, 10),
		map[string]any{"branch": args.Branch})
}
