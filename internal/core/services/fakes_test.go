package services

import (
	"context"

	"github.com/tapestry-io/tapestry/internal/connectors"
	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
)

// fakeConnector yields a fixed entity list, or fails validation, or ends
// the stream with a fatal error.
type fakeConnector struct {
	sourceID  string
	entities  []domain.Entity
	streamErr error
	invalid   bool
	closed    bool
}

var _ driven.Connector = (*fakeConnector)(nil)

func (c *fakeConnector) Type() string     { return "fake" }
func (c *fakeConnector) SourceID() string { return c.sourceID }

func (c *fakeConnector) Capabilities() driven.ConnectorCapabilities {
	return driven.ConnectorCapabilities{SupportsValidation: true}
}

func (c *fakeConnector) Validate(context.Context) bool { return !c.invalid }

func (c *fakeConnector) GenerateEntities(ctx context.Context) driven.EntityStream {
	return connectors.NewStream(ctx, func(ctx context.Context, emit func(domain.Entity) error) error {
		for _, entity := range c.entities {
			if err := emit(entity); err != nil {
				return err
			}
		}
		return c.streamErr
	})
}

func (c *fakeConnector) Close() error {
	c.closed = true
	return nil
}

// fakeFactory hands out one prepared connector regardless of source type.
type fakeFactory struct {
	connector *fakeConnector
	err       error
}

var _ Connectors = (*fakeFactory)(nil)

func (f *fakeFactory) Create(source *domain.Source) (driven.Connector, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.connector.sourceID = source.ID
	return f.connector, nil
}

// fakeTokens records credential writes without storing anything real.
type fakeTokens struct {
	saved   map[string]string
	deleted []string
}

var _ TokenProviders = (*fakeTokens)(nil)

func newFakeTokens() *fakeTokens {
	return &fakeTokens{saved: make(map[string]string)}
}

func (f *fakeTokens) ForSource(*domain.Source) driven.TokenProvider { return nil }

func (f *fakeTokens) SaveToken(sourceID, token string) error {
	f.saved[sourceID] = token
	return nil
}

func (f *fakeTokens) DeleteCredentials(sourceID string) error {
	f.deleted = append(f.deleted, sourceID)
	return nil
}

// testEntity is a minimal domain.Entity for runner tests.
func testEntity(id, kind string) domain.Entity {
	return &domain.EntityMeta{EntityID: id, Kind: kind, Name: id}
}
