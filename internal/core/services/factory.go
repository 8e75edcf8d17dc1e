package services

import (
	"fmt"

	"github.com/tapestry-io/tapestry/internal/connectors/gitlab"
	"github.com/tapestry-io/tapestry/internal/connectors/redmine"
	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
)

// TokenProviders hands out token providers for stored sources and manages
// their credential material.
type TokenProviders interface {
	// ForSource returns the token provider matching the source's auth
	// method.
	ForSource(source *domain.Source) driven.TokenProvider

	// SaveToken stores a static credential for a source.
	SaveToken(sourceID, token string) error

	// DeleteCredentials removes all credential material for a source.
	DeleteCredentials(sourceID string) error
}

// Connectors builds connectors from stored source definitions.
type Connectors interface {
	Create(source *domain.Source) (driven.Connector, error)
}

// ConnectorFactory is the Connectors implementation over the built-in
// connector types.
type ConnectorFactory struct {
	tokens TokenProviders
}

var _ Connectors = (*ConnectorFactory)(nil)

// NewConnectorFactory creates a connector factory.
func NewConnectorFactory(tokens TokenProviders) *ConnectorFactory {
	return &ConnectorFactory{tokens: tokens}
}

// Create builds the connector for a source. Configuration errors surface
// here, before any network traffic.
func (f *ConnectorFactory) Create(source *domain.Source) (driven.Connector, error) {
	provider := f.tokens.ForSource(source)

	switch source.Type {
	case redmine.Type:
		return redmine.New(*source, provider)
	case gitlab.Type:
		return gitlab.New(*source, provider)
	default:
		return nil, fmt.Errorf("connector type %q: %w", source.Type, domain.ErrUnsupportedType)
	}
}
