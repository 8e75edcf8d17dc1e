package driven

import (
	"context"

	"github.com/tapestry-io/tapestry/internal/core/domain"
)

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle token refresh transparently, so a connector can
// ask for a token immediately before each request without caring whether
// the credential is a static key or a refreshed OAuth token.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// If the current token is expired, it is refreshed automatically.
	GetToken(ctx context.Context) (string, error)

	// AuthMethod returns the authentication method (apikey, pat, oauth).
	AuthMethod() domain.AuthMethod

	// IsAuthenticated returns true if valid authentication is available.
	IsAuthenticated() bool
}
