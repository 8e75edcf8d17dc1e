package driven

import (
	"context"

	"github.com/tapestry-io/tapestry/internal/core/domain"
)

// Connector fetches entities from a data source.
// Each connector type (redmine, gitlab, etc.) implements this interface.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// SourceID returns the configured source ID.
	SourceID() string

	// Capabilities returns what this connector supports.
	Capabilities() ConnectorCapabilities

	// Validate checks whether the configured credentials are usable by
	// issuing one authenticated request to the source's identity endpoint.
	// It returns exactly true on success and exactly false on any HTTP or
	// transport failure; it never panics past this boundary. The
	// distinguishing reason (invalid key vs. other failure) is logged for
	// operator diagnosis.
	Validate(ctx context.Context) bool

	// GenerateEntities produces the lazy, finite, ordered entity stream
	// for one run. The stream is restartable only by calling
	// GenerateEntities again from the beginning.
	GenerateEntities(ctx context.Context) EntityStream

	// Close releases resources.
	Close() error
}

// EntityStream is a pull-based stream of entities.
//
// Next returns the next entity, or domain.ErrEndOfStream once the run is
// complete, or a fatal error that terminates the stream. Entities arrive in
// depth-first order: a parent is always produced before any entity that
// breadcrumbs to it.
//
// Close stops the producer; no further network calls are made after it
// returns. Closing an exhausted stream is a no-op. Callers must call Close
// on every exit path.
type EntityStream interface {
	Next(ctx context.Context) (domain.Entity, error)
	Close() error
}

// ConnectorCapabilities describes what a connector supports.
type ConnectorCapabilities struct {
	// SupportsHierarchy indicates entities carry breadcrumbs to parents.
	SupportsHierarchy bool

	// RequiresAuth indicates the connector needs authentication.
	RequiresAuth bool

	// SupportsValidation indicates Validate() performs a real API check.
	SupportsValidation bool

	// SupportsRateLimiting indicates the connector throttles and retries
	// rate-limited requests internally.
	SupportsRateLimiting bool

	// SupportsPagination indicates the connector pages through listing
	// endpoints internally.
	SupportsPagination bool
}
