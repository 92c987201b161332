package databricks

import (
	"context"
	"fmt"

	"github.com/lakeware/databricks-mcp-server/internal/render"
)

// TokensAPI covers personal access tokens for the calling user. The
// token value is returned exactly once, at creation.
type TokensAPI struct {
	c *Client
}

// TokenInfo describes a token without its value.
type TokenInfo struct {
	TokenID      string `json:"token_id"`
	Comment      string `json:"comment,omitempty"`
	CreationTime int64  `json:"creation_time,omitempty"`
	ExpiryTime   int64  `json:"expiry_time,omitempty"`
}

type tokenListResponse struct {
	TokenInfos []TokenInfo `json:"token_infos"`
}

// ListTokensArgs bounds a token listing.
type ListTokensArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of tokens to return (1-100, default 100)"`
}

// TokenListing is the rendered result of a token listing.
type TokenListing struct {
	Tokens []any `json:"tokens"`
	Count  int   `json:"count"`
}

// List returns the calling user's personal access tokens.
func (a TokensAPI) List(ctx context.Context, args ListTokensArgs) (*TokenListing, error) {
	resp, err := apiGet[tokenListResponse](ctx, a.c, "tokens", "list", "/api/2.0/token/list")
	if err != nil {
		return nil, err
	}
	tokens, err := render.Collect(sliceSeq(resp.TokenInfos), render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &TokenListing{Tokens: tokens, Count: len(tokens)}, nil
}

// CreateTokenArgs describes a new personal access token.
type CreateTokenArgs struct {
	Comment         string `json:"comment,omitempty" jsonschema_description:"Optional description of what the token is for"`
	LifetimeSeconds int64  `json:"lifetime_seconds,omitempty" jsonschema_description:"Token lifetime in seconds; omit for a non-expiring token"`
}

// CreatedToken carries the one-time token value plus its metadata.
type CreatedToken struct {
	TokenValue string     `json:"token_value"`
	TokenInfo  *TokenInfo `json:"token_info,omitempty"`
}

// Create issues a new token. The value in the response is the only
// copy; it cannot be retrieved again.
func (a TokensAPI) Create(ctx context.Context, args CreateTokenArgs) (*CreatedToken, error) {
	payload := map[string]any{}
	if args.Comment != "" {
		payload["comment"] = args.Comment
	}
	if args.LifetimeSeconds > 0 {
		payload["lifetime_seconds"] = args.LifetimeSeconds
	}
	return apiPost[CreatedToken](ctx, a.c, "tokens", "create", "/api/2.0/token/create", payload)
}

// RevokeTokenArgs identifies the token to revoke.
type RevokeTokenArgs struct {
	TokenID string `json:"token_id" jsonschema:"required" jsonschema_description:"The ID of the token to revoke"`
}

// Revoke invalidates a token immediately.
func (a TokensAPI) Revoke(ctx context.Context, args RevokeTokenArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "tokens", "revoke", "/api/2.0/token/delete",
		map[string]any{"token_id": args.TokenID})
	if err != nil {
		return nil, err
	}
	return &ActionStatus{
		Status:  "revoked",
		Message: fmt.Sprintf("Token %q revoked.", args.TokenID),
	}, nil
}
