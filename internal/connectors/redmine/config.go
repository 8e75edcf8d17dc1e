package redmine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tapestry-io/tapestry/internal/core/domain"
)

// DefaultPageSize is the fixed page size for Redmine listing endpoints.
const DefaultPageSize = 100

// Config holds the parsed configuration for a Redmine source.
type Config struct {
	// BaseURL is the Redmine instance URL, without a trailing slash.
	BaseURL string

	// ProjectIdentifiers restricts the sync to the listed project slugs.
	// Matching is case-insensitive. Empty means all visible projects.
	ProjectIdentifiers []string

	// IncludeClosedIssues widens the issue status filter from open-only
	// to all. Default: false.
	IncludeClosedIssues bool

	// IncludeAttachments enables per-issue attachment enrichment.
	// Default: false.
	IncludeAttachments bool

	// IncludeWikiPages enables per-project wiki syncing. Default: true.
	IncludeWikiPages bool
}

// ParseConfig parses a source's config map into a Config struct.
// base_url is required; everything else is optional.
func ParseConfig(source domain.Source) (*Config, error) {
	cfg := &Config{
		IncludeWikiPages: true,
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(source.Config["base_url"]), "/")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("redmine: %w", domain.ErrConfigMissingURL)
	}

	if identifiers, ok := source.Config["project_identifiers"]; ok {
		cfg.ProjectIdentifiers = parseIdentifiers(identifiers)
	}

	cfg.IncludeClosedIssues = parseBool(source.Config["include_closed_issues"], false)
	cfg.IncludeAttachments = parseBool(source.Config["include_attachments"], false)
	cfg.IncludeWikiPages = parseBool(source.Config["include_wiki_pages"], true)

	return cfg, nil
}

// parseIdentifiers parses a comma-separated identifier list, lowercasing
// each entry for case-insensitive matching.
func parseIdentifiers(s string) []string {
	parts := strings.Split(s, ",")
	identifiers := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			identifiers = append(identifiers, part)
		}
	}
	return identifiers
}

// parseBool parses a config boolean, falling back to def when the value is
// absent or malformed.
func parseBool(s string, def bool) bool {
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}

// HasProjectFilter reports whether a project allow-list is configured.
func (c *Config) HasProjectFilter() bool {
	return len(c.ProjectIdentifiers) > 0
}

// MatchesProject reports whether the identifier passes the configured
// filter. An empty filter matches everything.
func (c *Config) MatchesProject(identifier string) bool {
	if !c.HasProjectFilter() {
		return true
	}
	identifier = strings.ToLower(identifier)
	for _, want := range c.ProjectIdentifiers {
		if want == identifier {
			return true
		}
	}
	return false
}
