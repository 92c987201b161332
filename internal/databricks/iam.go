package databricks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/lakeware/databricks-mcp-server/internal/render"
)

// IAMAPI covers workspace identities through the SCIM API: users,
// groups, service principals, and the calling principal itself.
type IAMAPI struct {
	c *Client
}

// User is a SCIM user.
type User struct {
	ID          string `json:"id,omitempty"`
	UserName    string `json:"userName,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Active      bool   `json:"active,omitempty"`
	Emails      []struct {
		Value   string `json:"value,omitempty"`
		Primary bool   `json:"primary,omitempty"`
	} `json:"emails,omitempty"`
	Groups []struct {
		Display string `json:"display,omitempty"`
		Value   string `json:"value,omitempty"`
	} `json:"groups,omitempty"`
}

// scimListResponse is the SCIM index-paginated envelope.
type scimListResponse[T any] struct {
	Resources    []T `json:"Resources"`
	TotalResults int `json:"totalResults"`
	StartIndex   int `json:"startIndex"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// scimPages adapts SCIM's 1-based index pagination to the shared lazy
// sequence shape.
func scimPages[T any](ctx context.Context, c *Client, service, action, basePath, filter string) func(yield func(T, error) bool) {
	return func(yield func(T, error) bool) {
		start := 1
		for {
			q := url.Values{}
			q.Set("startIndex", strconv.Itoa(start))
			q.Set("count", strconv.Itoa(render.DefaultMaxItems))
			if filter != "" {
				q.Set("filter", filter)
			}
			resp, err := apiGet[scimListResponse[T]](ctx, c, service, action, pathWithQuery(basePath, q))
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range resp.Resources {
				if !yield(item, nil) {
					return
				}
			}
			start += len(resp.Resources)
			if len(resp.Resources) == 0 || start > resp.TotalResults {
				return
			}
		}
	}
}

// ListUsersArgs filters a user listing.
type ListUsersArgs struct {
	Filter string `json:"filter,omitempty" jsonschema_description:"SCIM filter expression, e.g. userName co \"alice\""`
	Count  int    `json:"count,omitempty" jsonschema_description:"Maximum number of users to return (1-100, default 100)"`
}

// UserListing is the rendered result of a user listing.
type UserListing struct {
	Users []any `json:"users"`
	Count int   `json:"count"`
}

// ListUsers returns workspace users, optionally filtered.
func (a IAMAPI) ListUsers(ctx context.Context, args ListUsersArgs) (*UserListing, error) {
	users, err := render.Collect(
		scimPages[User](ctx, a.c, "iam", "list_users", "/api/2.0/preview/scim/v2/Users", args.Filter),
		render.Clamp(args.Count))
	if err != nil {
		return nil, err
	}
	return &UserListing{Users: users, Count: len(users)}, nil
}

// GetUserArgs identifies a single user.
type GetUserArgs struct {
	UserID string `json:"user_id" jsonschema:"required" jsonschema_description:"The SCIM ID of the user"`
}

// GetUser returns details for one user, including group memberships.
func (a IAMAPI) GetUser(ctx context.Context, args GetUserArgs) (*User, error) {
	return apiGet[User](ctx, a.c, "iam", "get_user",
		"/api/2.0/preview/scim/v2/Users/"+url.PathEscape(args.UserID))
}

// CreateUserArgs describes a new user.
type CreateUserArgs struct {
	UserName    string `json:"user_name" jsonschema:"required" jsonschema_description:"The user's email address, used as the login name"`
	DisplayName string `json:"display_name,omitempty" jsonschema_description:"Optional human-readable display name"`
}

// CreateUser adds a user to the workspace.
func (a IAMAPI) CreateUser(ctx context.Context, args CreateUserArgs) (*User, error) {
	payload := map[string]any{"userName": args.UserName}
	if args.DisplayName != "" {
		payload["displayName"] = args.DisplayName
	}
	return apiPost[User](ctx, a.c, "iam", "create_user", "/api/2.0/preview/scim/v2/Users", payload)
}

// DeleteUser removes a user from the workspace.
func (a IAMAPI) DeleteUser(ctx context.Context, args GetUserArgs) (*ActionStatus, error) {
	_, err := apiDelete[struct{}](ctx, a.c, "iam", "delete_user",
		"/api/2.0/preview/scim/v2/Users/"+url.PathEscape(args.UserID), nil)
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "deleted",
		Message: fmt.Sprintf("User %s has been removed from the workspace.", args.UserID),
	}, nil
}

// Group is a SCIM group.
type Group struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Members     []struct {
		Display string `json:"display,omitempty"`
		Value   string `json:"value,omitempty"`
	} `json:"members,omitempty"`
}

// ListGroupsArgs filters a group listing.
type ListGroupsArgs struct {
	Filter string `json:"filter,omitempty" jsonschema_description:"SCIM filter expression, e.g. displayName co \"admins\""`
	Count  int    `json:"count,omitempty" jsonschema_description:"Maximum number of groups to return (1-100, default 100)"`
}

// GroupListing is the rendered result of a group listing.
type GroupListing struct {
	Groups []any `json:"groups"`
	Count  int   `json:"count"`
}

// ListGroups returns workspace groups, optionally filtered.
func (a IAMAPI) ListGroups(ctx context.Context, args ListGroupsArgs) (*GroupListing, error) {
	groups, err := render.Collect(
		scimPages[Group](ctx, a.c, "iam", "list_groups", "/api/2.0/preview/scim/v2/Groups", args.Filter),
		render.Clamp(args.Count))
	if err != nil {
		return nil, err
	}
	return &GroupListing{Groups: groups, Count: len(groups)}, nil
}

// CreateGroupArgs describes a new group.
type CreateGroupArgs struct {
	DisplayName string `json:"display_name" jsonschema:"required" jsonschema_description:"Display name for the group"`
}

// CreateGroup creates an empty workspace group.
func (a IAMAPI) CreateGroup(ctx context.Context, args CreateGroupArgs) (*Group, error) {
	return apiPost[Group](ctx, a.c, "iam", "create_group", "/api/2.0/preview/scim/v2/Groups",
		map[string]any{"displayName": args.DisplayName})
}

// DeleteGroupArgs identifies the group to delete.
type DeleteGroupArgs struct {
	GroupID string `json:"group_id" jsonschema:"required" jsonschema_description:"The SCIM ID of the group to delete"`
}

// DeleteGroup removes a group. Members are not deleted.
func (a IAMAPI) DeleteGroup(ctx context.Context, args DeleteGroupArgs) (*ActionStatus, error) {
	_, err := apiDelete[struct{}](ctx, a.c, "iam", "delete_group",
		"/api/2.0/preview/scim/v2/Groups/"+url.PathEscape(args.GroupID), nil)
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "deleted",
		Message: fmt.Sprintf("Group %s has been deleted.", args.GroupID),
	}, nil
}

// MeArgs has no parameters; the current principal is implied by the
// token.
type MeArgs struct{}

// Me returns the identity the server is authenticated as. Useful for
// verifying credentials and permissions.
func (a IAMAPI) Me(ctx context.Context, _ MeArgs) (*User, error) {
	return apiGet[User](ctx, a.c, "iam", "me", "/api/2.0/preview/scim/v2/Me")
}

// ServicePrincipal is a SCIM service principal.
type ServicePrincipal struct {
	ID            string `json:"id,omitempty"`
	ApplicationID string `json:"applicationId,omitempty"`
	DisplayName   string `json:"displayName,omitempty"`
	Active        bool   `json:"active,omitempty"`
}

// ListServicePrincipalsArgs filters a service principal listing.
type ListServicePrincipalsArgs struct {
	Filter string `json:"filter,omitempty" jsonschema_description:"SCIM filter expression"`
	Count  int    `json:"count,omitempty" jsonschema_description:"Maximum number of service principals to return (1-100, default 100)"`
}

// ServicePrincipalListing is the rendered result of a listing.
type ServicePrincipalListing struct {
	ServicePrincipals []any `json:"service_principals"`
	Count             int   `json:"count"`
}

// ListServicePrincipals returns workspace service principals.
func (a IAMAPI) ListServicePrincipals(ctx context.Context, args ListServicePrincipalsArgs) (*ServicePrincipalListing, error) {
	sps, err := render.Collect(
		scimPages[ServicePrincipal](ctx, a.c, "iam", "list_service_principals",
			"/api/2.0/preview/scim/v2/ServicePrincipals", args.Filter),
		render.Clamp(args.Count))
	if err != nil {
		return nil, err
	}
	return &ServicePrincipalListing{ServicePrincipals: sps, Count: len(sps)}, nil
}
