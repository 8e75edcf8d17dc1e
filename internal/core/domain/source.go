package domain

import (
	"fmt"
	"strings"
	"time"
)

// Source represents a configured data source.
// Each source produces entities via a connector of the given type.
type Source struct {
	// ID is the unique identifier for the source.
	ID string

	// Type identifies the connector type (e.g., "redmine", "gitlab").
	Type string

	// Name is the human-readable name for this source.
	Name string

	// Config contains connector-specific configuration.
	Config map[string]string

	// AuthMethod is how this source authenticates (apikey, pat, oauth).
	AuthMethod AuthMethod

	// CreatedAt is when the source was created.
	CreatedAt time.Time

	// UpdatedAt is when the source was last updated.
	UpdatedAt time.Time
}

// DisplayName returns the source name with the account identifier appended
// when it is known and not already part of the name.
func (s *Source) DisplayName(accountIdentifier string) string {
	if accountIdentifier != "" && !strings.Contains(s.Name, accountIdentifier) {
		return fmt.Sprintf("%s - %s", s.Name, accountIdentifier)
	}
	return s.Name
}

// AuthMethod defines how a connector authenticates.
type AuthMethod string

const (
	// AuthMethodAPIKey uses a static API key carried in a fixed header.
	AuthMethodAPIKey AuthMethod = "apikey"
	// AuthMethodPAT uses a Personal Access Token.
	AuthMethodPAT AuthMethod = "pat"
	// AuthMethodOAuth uses a bearer token refreshed by a token manager.
	AuthMethodOAuth AuthMethod = "oauth"
)

// SyncRun records one completed (or failed) connector run.
// This is operational bookkeeping only; entities themselves are handed to
// the consuming pipeline and never stored here.
type SyncRun struct {
	// ID is the unique identifier for the run.
	ID string

	// SourceID links to the Source that was synced.
	SourceID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run completed or failed.
	FinishedAt time.Time

	// EntityCounts maps entity kind to the number emitted.
	EntityCounts map[string]int

	// Error is the fatal error message, empty on success.
	Error string
}

// Total returns the total number of entities emitted in the run.
func (r *SyncRun) Total() int {
	total := 0
	for _, n := range r.EntityCounts {
		total += n
	}
	return total
}
