package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
)

// Auth applies authentication to an outgoing request.
// The header name and scheme are connector-specific and fixed per connector.
type Auth interface {
	Apply(ctx context.Context, req *http.Request) error
}

// HeaderAuth carries a token in a fixed request header, e.g.
// X-Redmine-API-Key for Redmine or PRIVATE-TOKEN for GitLab PATs.
type HeaderAuth struct {
	Header string
	Tokens driven.TokenProvider
}

// Apply sets the auth header from the token provider.
func (a *HeaderAuth) Apply(ctx context.Context, req *http.Request) error {
	token, err := a.Tokens.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}
	if token == "" {
		return domain.ErrAuthRequired
	}
	req.Header.Set(a.Header, token)
	return nil
}

// BearerAuth carries a bearer token in the Authorization header.
// Used for OAuth-style connectors whose tokens are refreshed by the
// provider.
type BearerAuth struct {
	Tokens driven.TokenProvider
}

// Apply sets the Authorization header from the token provider.
func (a *BearerAuth) Apply(ctx context.Context, req *http.Request) error {
	token, err := a.Tokens.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}
	if token == "" {
		return domain.ErrAuthRequired
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
