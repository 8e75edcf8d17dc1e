package driving

import (
	"context"

	"github.com/tapestry-io/tapestry/internal/core/domain"
)

// SourceManager handles source lifecycle operations for the CLI surface.
type SourceManager interface {
	// Add creates a new source of the given connector type.
	// Credentials are stored separately from the source definition.
	Add(ctx context.Context, req AddSourceRequest) (*domain.Source, error)

	// List returns all configured sources.
	List(ctx context.Context) ([]domain.Source, error)

	// Remove deletes a source and its stored credentials.
	Remove(ctx context.Context, id string) error

	// Validate checks whether the source's credentials are usable.
	Validate(ctx context.Context, id string) (bool, error)
}

// AddSourceRequest carries the inputs for creating a source.
type AddSourceRequest struct {
	// Type is the connector type identifier (e.g., "redmine").
	Type string

	// Name is the human-readable source name.
	Name string

	// Config is connector-specific configuration.
	Config map[string]string

	// Credential is the API key or personal access token.
	Credential string

	// AuthMethod selects how the credential is presented to the API.
	// Defaults to the connector type's native method when empty.
	AuthMethod domain.AuthMethod
}

// ConnectorRegistry provides information about available connector types.
type ConnectorRegistry interface {
	// List returns all available connector types.
	List() []ConnectorTypeInfo

	// Get returns a specific connector type by ID.
	Get(id string) (*ConnectorTypeInfo, error)

	// ValidateConfig validates configuration for a connector type.
	ValidateConfig(connectorID string, config map[string]string) error
}

// ConnectorTypeInfo describes a supported connector type.
type ConnectorTypeInfo struct {
	// ID is the unique identifier (e.g., "redmine", "gitlab").
	ID string

	// Name is the human-readable display name.
	Name string

	// Description provides a brief explanation of the connector.
	Description string

	// AuthMethods lists the supported authentication methods.
	AuthMethods []domain.AuthMethod

	// ConfigKeys lists the configuration fields recognised by this type.
	ConfigKeys []ConfigKey
}

// ConfigKey describes a configuration field for a connector.
type ConfigKey struct {
	// Key is the configuration key name.
	Key string

	// Label is the human-readable label for display.
	Label string

	// Description explains what this field is for.
	Description string

	// Default is the default value for this field.
	Default string

	// Required indicates whether this field must be provided.
	Required bool
}
