package redmine

import (
	"context"
	"sync"

	"github.com/tapestry-io/tapestry/internal/connectors"
	"github.com/tapestry-io/tapestry/internal/connectors/rest"
	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
	"github.com/tapestry-io/tapestry/internal/logger"
)

// Type is the connector type string for Redmine sources.
const Type = "redmine"

// Connector syncs a Redmine instance over its REST API.
type Connector struct {
	sourceID string
	cfg      *Config
	client   *Client

	mu     sync.Mutex
	closed bool
}

var _ driven.Connector = (*Connector)(nil)

// New builds a Redmine connector for a configured source.
func New(source domain.Source, tokens driven.TokenProvider) (*Connector, error) {
	cfg, err := ParseConfig(source)
	if err != nil {
		return nil, err
	}

	return &Connector{
		sourceID: source.ID,
		cfg:      cfg,
		client:   NewClient(cfg.BaseURL, tokens),
	}, nil
}

func (c *Connector) Type() string { return Type }

func (c *Connector) SourceID() string { return c.sourceID }

func (c *Connector) Capabilities() driven.ConnectorCapabilities {
	return driven.ConnectorCapabilities{
		SupportsHierarchy:    true,
		RequiresAuth:         true,
		SupportsValidation:   true,
		SupportsRateLimiting: true,
		SupportsPagination:   true,
	}
}

// Validate checks that the configured credentials can authenticate against
// the instance by fetching the current user. Any failure, auth or
// otherwise, is a false; the distinction is logged.
func (c *Connector) Validate(ctx context.Context) bool {
	_, err := c.client.Get(ctx, "/users/current.json", nil)
	if err == nil {
		return true
	}

	if rest.IsUnauthorized(err) {
		logger.Warn("redmine: credentials rejected by %s: %v", c.cfg.BaseURL, err)
	} else {
		logger.Warn("redmine: validation against %s failed: %v", c.cfg.BaseURL, err)
	}
	return false
}

// GenerateEntities starts the depth-first walk of the instance and returns
// a pull stream over it. The walk only advances while the caller pulls.
func (c *Connector) GenerateEntities(ctx context.Context) driven.EntityStream {
	g := &generator{client: c.client, cfg: c.cfg}
	return connectors.NewStream(ctx, g.run)
}

// Close marks the connector closed. The HTTP client holds no connections
// that outlive its requests.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
