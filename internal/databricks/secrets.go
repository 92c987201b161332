package databricks

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/lakeware/databricks-mcp-server/internal/errors"
	"github.com/lakeware/databricks-mcp-server/internal/render"
)

// SecretsAPI covers secret scopes, secrets, and secret ACLs. Secret
// values are write-only through this API; nothing here can read one
// back.
type SecretsAPI struct {
	c *Client
}

// SecretScope is a container for secrets.
type SecretScope struct {
	Name        string `json:"name"`
	BackendType string `json:"backend_type,omitempty"`
}

type scopeListResponse struct {
	Scopes []SecretScope `json:"scopes"`
}

// ListScopesArgs bounds a scope listing.
type ListScopesArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of scopes to return (1-100, default 100)"`
}

// ScopeListing is the rendered result of a scope listing.
type ScopeListing struct {
	Scopes []any `json:"scopes"`
	Count  int   `json:"count"`
}

// ListScopes returns every secret scope in the workspace.
func (a SecretsAPI) ListScopes(ctx context.Context, args ListScopesArgs) (*ScopeListing, error) {
	resp, err := apiGet[scopeListResponse](ctx, a.c, "secrets", "list_scopes", "/api/2.0/secrets/scopes/list")
	if err != nil {
		return nil, err
	}
	scopes, err := render.Collect(sliceSeq(resp.Scopes), render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &ScopeListing{Scopes: scopes, Count: len(scopes)}, nil
}

// ScopeArgs identifies a secret scope.
type ScopeArgs struct {
	Scope string `json:"scope" jsonschema:"required" jsonschema_description:"The name of the secret scope"`
}

// CreateScope creates a Databricks-backed secret scope.
func (a SecretsAPI) CreateScope(ctx context.Context, args ScopeArgs) (*ActionStatus, error) {
	if strings.TrimSpace(args.Scope) == "" {
		return nil, errors.NewValidationError("scope", "", "scope name is required")
	}
	_, err := apiPost[struct{}](ctx, a.c, "secrets", "create_scope", "/api/2.0/secrets/scopes/create",
		map[string]any{"scope": args.Scope})
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "created",
		Message: fmt.Sprintf("Secret scope %q created successfully.", args.Scope),
	}, nil
}

// DeleteScope deletes a scope and every secret in it.
func (a SecretsAPI) DeleteScope(ctx context.Context, args ScopeArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "secrets", "delete_scope", "/api/2.0/secrets/scopes/delete",
		map[string]any{"scope": args.Scope})
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "deleted",
		Message: fmt.Sprintf("Secret scope %q deleted.", args.Scope),
	}, nil
}

// SecretMetadata describes a secret without its value.
type SecretMetadata struct {
	Key                  string `json:"key"`
	LastUpdatedTimestamp int64  `json:"last_updated_timestamp,omitempty"`
}

type secretListResponse struct {
	Secrets []SecretMetadata `json:"secrets"`
}

// SecretListing is the rendered result of a secret listing.
type SecretListing struct {
	Secrets []any `json:"secrets"`
	Count   int   `json:"count"`
}

// ListSecrets returns the keys (never values) in a scope.
func (a SecretsAPI) ListSecrets(ctx context.Context, args ScopeArgs) (*SecretListing, error) {
	resp, err := apiGet[secretListResponse](ctx, a.c, "secrets", "list_secrets",
		"/api/2.0/secrets/list?scope="+url.QueryEscape(args.Scope))
	if err != nil {
		return nil, err
	}
	secrets, err := render.Collect(sliceSeq(resp.Secrets), render.DefaultMaxItems)
	if err != nil {
		return nil, err
	}
	return &SecretListing{Secrets: secrets, Count: len(secrets)}, nil
}

// PutSecretArgs writes one secret value.
type PutSecretArgs struct {
	Scope       string `json:"scope" jsonschema:"required" jsonschema_description:"The scope to store the secret in"`
	Key         string `json:"key" jsonschema:"required" jsonschema_description:"The key under which to store the secret"`
	StringValue string `json:"string_value" jsonschema:"required" jsonschema_description:"The secret value to store"`
}

// PutSecret stores a secret, overwriting any existing value for the
// key. The value is never echoed back.
func (a SecretsAPI) PutSecret(ctx context.Context, args PutSecretArgs) (*ActionStatus, error) {
	if args.StringValue == "" {
		return nil, errors.NewValidationError("string_value", "", "secret value must not be empty")
	}
	_, err := apiPost[struct{}](ctx, a.c, "secrets", "put_secret", "/api/2.0/secrets/put",
		map[string]any{
			"scope":        args.Scope,
			"key":          args.Key,
			"string_value": args.StringValue,
		})
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "stored",
		Message: fmt.Sprintf("Secret %q stored in scope %q.", args.Key, args.Scope),
	}, nil
}

// DeleteSecretArgs identifies the secret to delete.
type DeleteSecretArgs struct {
	Scope string `json:"scope" jsonschema:"required" jsonschema_description:"The scope containing the secret"`
	Key   string `json:"key" jsonschema:"required" jsonschema_description:"The key of the secret to delete"`
}

// DeleteSecret removes a secret from a scope.
func (a SecretsAPI) DeleteSecret(ctx context.Context, args DeleteSecretArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "secrets", "delete_secret", "/api/2.0/secrets/delete",
		map[string]any{"scope": args.Scope, "key": args.Key})
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "deleted",
		Message: fmt.Sprintf("Secret %q deleted from scope %q.", args.Key, args.Scope),
	}, nil
}

// SecretACL grants a principal access to a scope.
type SecretACL struct {
	Principal  string `json:"principal"`
	Permission string `json:"permission"`
}

type aclListResponse struct {
	Items []SecretACL `json:"items"`
}

// ACLListing is the rendered result of an ACL listing.
type ACLListing struct {
	ACLs  []any `json:"acls"`
	Count int   `json:"count"`
}

// ListACLs returns the access control list of a scope.
func (a SecretsAPI) ListACLs(ctx context.Context, args ScopeArgs) (*ACLListing, error) {
	resp, err := apiGet[aclListResponse](ctx, a.c, "secrets", "list_acls",
		"/api/2.0/secrets/acls/list?scope="+url.QueryEscape(args.Scope))
	if err != nil {
		return nil, err
	}
	acls, err := render.Collect(sliceSeq(resp.Items), render.DefaultMaxItems)
	if err != nil {
		return nil, err
	}
	return &ACLListing{ACLs: acls, Count: len(acls)}, nil
}

// secretPermissions are the grants the secrets API accepts.
var secretPermissions = map[string]bool{
	"READ":   true,
	"WRITE":  true,
	"MANAGE": true,
}

// PutACLArgs grants a principal access to a scope.
type PutACLArgs struct {
	Scope      string `json:"scope" jsonschema:"required" jsonschema_description:"The scope to grant access to"`
	Principal  string `json:"principal" jsonschema:"required" jsonschema_description:"User email, group name, or service principal application ID"`
	Permission string `json:"permission" jsonschema:"required" jsonschema_description:"Permission level: READ, WRITE, or MANAGE"`
}

// PutACL grants or updates a principal's permission on a scope.
func (a SecretsAPI) PutACL(ctx context.Context, args PutACLArgs) (*ActionStatus, error) {
	perm := strings.ToUpper(strings.TrimSpace(args.Permission))
	if !secretPermissions[perm] {
		return nil, errors.NewValidationError("permission", args.Permission,
			"must be one of READ, WRITE, MANAGE")
	}
	_, err := apiPost[struct{}](ctx, a.c, "secrets", "put_acl", "/api/2.0/secrets/acls/put",
		map[string]any{
			"scope":      args.Scope,
			"principal":  args.Principal,
			"permission": perm,
		})
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "granted",
		Message: fmt.Sprintf("Granted %s on scope %q to %q.", perm, args.Scope, args.Principal),
	}, nil
}
