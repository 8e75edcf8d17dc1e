package driven

import (
	"context"

	"github.com/tapestry-io/tapestry/internal/core/domain"
)

// SourceStore persists source definitions.
type SourceStore interface {
	// Save creates or updates a source.
	Save(ctx context.Context, source domain.Source) error

	// Get retrieves a source by ID.
	// Returns domain.ErrNotFound if the source does not exist.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// List returns all sources.
	List(ctx context.Context) ([]domain.Source, error)

	// Delete removes a source.
	// Returns domain.ErrNotFound if the source does not exist.
	Delete(ctx context.Context, id string) error
}

// SyncRunStore persists the per-run ledger.
type SyncRunStore interface {
	// Record appends a completed run.
	Record(ctx context.Context, run domain.SyncRun) error

	// ListBySource returns runs for a source, newest first.
	ListBySource(ctx context.Context, sourceID string) ([]domain.SyncRun, error)
}

// ConfigStore provides persistent key-value configuration storage.
// Used for application settings and per-source credentials.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" if absent.
	GetString(key string) string

	// GetBool retrieves a boolean value, or false if absent.
	GetBool(key string) bool

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Delete removes a key and persists immediately.
	Delete(key string) error
}
