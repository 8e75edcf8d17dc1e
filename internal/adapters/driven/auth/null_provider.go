package auth

import (
	"context"

	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
)

// Ensure NullProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*NullProvider)(nil)

// NullProvider is the provider for sources without credentials. Every
// token request fails with domain.ErrAuthRequired.
type NullProvider struct{}

// NewNullProvider creates a provider that never authenticates.
func NewNullProvider() *NullProvider {
	return &NullProvider{}
}

func (p *NullProvider) GetToken(ctx context.Context) (string, error) {
	return "", domain.ErrAuthRequired
}

func (p *NullProvider) AuthMethod() domain.AuthMethod {
	return ""
}

func (p *NullProvider) IsAuthenticated() bool {
	return false
}
