package auth

import (
	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
)

// Factory creates TokenProviders for sources with stored credentials.
type Factory struct {
	store driven.ConfigStore
}

// NewFactory creates a token provider factory over the credential store.
func NewFactory(store driven.ConfigStore) *Factory {
	return &Factory{store: store}
}

// ForSource creates the appropriate TokenProvider for a source based on
// its auth method.
func (f *Factory) ForSource(source *domain.Source) driven.TokenProvider {
	switch source.AuthMethod {
	case domain.AuthMethodOAuth:
		return NewOAuthProvider(source.ID, f.store)
	case domain.AuthMethodAPIKey, domain.AuthMethodPAT:
		return NewStaticProvider(source.ID, source.AuthMethod, f.store)
	default:
		return NewNullProvider()
	}
}

// SaveToken stores a static credential for a source.
func (f *Factory) SaveToken(sourceID, token string) error {
	return SaveToken(f.store, sourceID, token)
}

// DeleteCredentials removes all credential material for a source.
func (f *Factory) DeleteCredentials(sourceID string) error {
	return DeleteCredentials(f.store, sourceID)
}
