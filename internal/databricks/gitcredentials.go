package databricks

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lakeware/databricks-mcp-server/internal/errors"
	"github.com/lakeware/databricks-mcp-server/internal/render"
)

// GitCredentialsAPI covers the Git credentials the workspace uses when
// syncing repos. Personal access tokens are write-only here, like
// secret values.
type GitCredentialsAPI struct {
	c *Client
}

// GitCredential is a stored Git provider credential. The token itself
// is never returned.
type GitCredential struct {
	CredentialID int64  `json:"credential_id"`
	GitProvider  string `json:"git_provider,omitempty"`
	GitUsername  string `json:"git_username,omitempty"`
}

type gitCredentialListResponse struct {
	Credentials []GitCredential `json:"credentials"`
}

// ListGitCredentialsArgs bounds a credential listing.
type ListGitCredentialsArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of credentials to return (1-100, default 100)"`
}

// GitCredentialListing is the rendered result of a credential listing.
type GitCredentialListing struct {
	Credentials []any `json:"credentials"`
	Count       int   `json:"count"`
}

// List returns the calling user's Git credentials.
func (a GitCredentialsAPI) List(ctx context.Context, args ListGitCredentialsArgs) (*GitCredentialListing, error) {
	resp, err := apiGet[gitCredentialListResponse](ctx, a.c, "git_credentials", "list",
		"/api/2.0/git-credentials")
	if err != nil {
		return nil, err
	}
	creds, err := render.Collect(sliceSeq(resp.Credentials), render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &GitCredentialListing{Credentials: creds, Count: len(creds)}, nil
}

// CreateGitCredentialArgs stores a credential for one Git provider.
type CreateGitCredentialArgs struct {
	GitProvider         string `json:"git_provider" jsonschema:"required" jsonschema_description:"Git provider: gitHub, gitLab, bitbucketCloud, or azureDevOpsServices"`
	GitUsername         string `json:"git_username,omitempty" jsonschema_description:"Username associated with the credential"`
	PersonalAccessToken string `json:"personal_access_token" jsonschema:"required" jsonschema_description:"The provider personal access token to store"`
}

// Create stores a Git credential. One credential per provider is
// allowed.
func (a GitCredentialsAPI) Create(ctx context.Context, args CreateGitCredentialArgs) (*GitCredential, error) {
	if !repoProviders[args.GitProvider] {
		return nil, errors.NewValidationError("git_provider", args.GitProvider,
			"must be one of gitHub, gitLab, bitbucketCloud, azureDevOpsServices")
	}
	if args.PersonalAccessToken == "" {
		return nil, errors.NewValidationError("personal_access_token", "", "token must not be empty")
	}
	payload := map[string]any{
		"git_provider":          args.GitProvider,
		"personal_access_token": args.PersonalAccessToken,
	}
	if args.GitUsername != "" {
		payload["git_username"] = args.GitUsername
	}
	return apiPost[GitCredential](ctx, a.c, "git_credentials", "create",
		"/api/2.0/git-credentials", payload)
}

// UpdateGitCredentialArgs replaces an existing credential.
type UpdateGitCredentialArgs struct {
	CredentialID        int64  `json:"credential_id" jsonschema:"required" jsonschema_description:"The ID of the credential to update"`
	GitProvider         string `json:"git_provider" jsonschema:"required" jsonschema_description:"Git provider: gitHub, gitLab, bitbucketCloud, or azureDevOpsServices"`
	GitUsername         string `json:"git_username,omitempty" jsonschema_description:"Username associated with the credential"`
	PersonalAccessToken string `json:"personal_access_token" jsonschema:"required" jsonschema_description:"The new provider personal access token"`
}

// Update replaces the token stored under a credential ID.
func (a GitCredentialsAPI) Update(ctx context.Context, args UpdateGitCredentialArgs) (*ActionStatus, error) {
	if !repoProviders[args.GitProvider] {
		return nil, errors.NewValidationError("git_provider", args.GitProvider,
			"must be one of gitHub, gitLab, bitbucketCloud, azureDevOpsServices")
	}
	payload := map[string]any{
		"git_provider":          args.GitProvider,
		"personal_access_token": args.PersonalAccessToken,
	}
	if args.GitUsername != "" {
		payload["git_username"] = args.GitUsername
	}
	_, err := apiCall[struct{}](ctx, a.c, "git_credentials", "update", http.MethodPatch,
		"/api/2.0/git-credentials/"+strconv.FormatInt(args.CredentialID, 10), payload)
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "updated",
		Message: fmt.Sprintf("Git credential %d updated.", args.CredentialID),
	}, nil
}

// DeleteGitCredentialArgs identifies the credential to delete.
type DeleteGitCredentialArgs struct {
	CredentialID int64 `json:"credential_id" jsonschema:"required" jsonschema_description:"The ID of the credential to delete"`
}

// Delete removes a stored Git credential.
func (a GitCredentialsAPI) Delete(ctx context.Context, args DeleteGitCredentialArgs) (*ActionStatus, error) {
	_, err := apiDelete[struct{}](ctx, a.c, "git_credentials", "delete",
		"/api/2.0/git-credentials/"+strconv.FormatInt(args.CredentialID, 10), nil)
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "deleted",
		Message: fmt.Sprintf("Git credential %d deleted.", args.CredentialID),
	}, nil
}
