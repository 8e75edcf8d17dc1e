package auth

import (
	"context"

	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
)

// Ensure StaticProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticProvider)(nil)

// StaticProvider provides API keys and Personal Access Tokens from the
// config store. Static credentials never expire, so there is no refresh
// logic.
type StaticProvider struct {
	sourceID string
	method   domain.AuthMethod
	store    driven.ConfigStore
}

// NewStaticProvider creates a token provider for a source authenticating
// with a static credential.
func NewStaticProvider(sourceID string, method domain.AuthMethod, store driven.ConfigStore) *StaticProvider {
	return &StaticProvider{
		sourceID: sourceID,
		method:   method,
		store:    store,
	}
}

// GetToken returns the stored credential.
func (p *StaticProvider) GetToken(ctx context.Context) (string, error) {
	token := p.store.GetString(credentialKey(p.sourceID, "token"))
	if token == "" {
		return "", domain.ErrAuthRequired
	}
	return token, nil
}

// AuthMethod returns the method the credential is presented with.
func (p *StaticProvider) AuthMethod() domain.AuthMethod {
	return p.method
}

// IsAuthenticated returns true if a credential is stored.
func (p *StaticProvider) IsAuthenticated() bool {
	return p.store.GetString(credentialKey(p.sourceID, "token")) != ""
}
