package gitlab

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tapestry-io/tapestry/internal/core/domain"
)

// DefaultPageSize is the per_page value sent to GitLab listing endpoints.
const DefaultPageSize = 100

// Config holds the parsed configuration for a GitLab self-hosted source.
type Config struct {
	// InstanceURL is the normalized GitLab instance URL: https scheme when
	// none was given, no trailing slash.
	InstanceURL string

	// ProjectIdentifiers restricts the sync to the listed projects, matched
	// case-insensitively against path_with_namespace. Empty means every
	// project the token can see.
	ProjectIdentifiers []string

	// Branch pins repository file syncing to one branch. Empty falls back
	// to each project's default branch.
	Branch string

	// IncludeClosedIssues widens the issue state filter from opened-only to
	// all. Default: false.
	IncludeClosedIssues bool

	// IncludeWikiPages enables per-project wiki syncing. Default: true.
	IncludeWikiPages bool

	// IncludeFiles enables repository tree syncing. Default: false.
	IncludeFiles bool
}

// ParseConfig parses a source's config map into a Config struct.
// instance_url is required; everything else is optional.
func ParseConfig(source domain.Source) (*Config, error) {
	cfg := &Config{
		IncludeWikiPages: true,
	}

	cfg.InstanceURL = NormalizeInstanceURL(source.Config["instance_url"])
	if cfg.InstanceURL == "" {
		return nil, fmt.Errorf("gitlab: %w", domain.ErrConfigMissingURL)
	}

	if identifiers, ok := source.Config["project_identifiers"]; ok {
		cfg.ProjectIdentifiers = parseIdentifiers(identifiers)
	}

	cfg.Branch = strings.TrimSpace(source.Config["branch"])
	cfg.IncludeClosedIssues = parseBool(source.Config["include_closed_issues"], false)
	cfg.IncludeWikiPages = parseBool(source.Config["include_wiki_pages"], true)
	cfg.IncludeFiles = parseBool(source.Config["include_files"], false)

	return cfg, nil
}

// NormalizeInstanceURL trims whitespace and the trailing slash and defaults
// the scheme to https when the operator gave a bare host.
func NormalizeInstanceURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if u == "" {
		return ""
	}
	if !strings.Contains(u, "://") {
		u = "https://" + u
	}
	return u
}

// APIBaseURL returns the v4 REST API root for the instance.
func (c *Config) APIBaseURL() string {
	return c.InstanceURL + "/api/v4"
}

// BlobURL builds the browser URL of one repository file at a branch.
func (c *Config) BlobURL(projectPath, branch, filePath string) string {
	return fmt.Sprintf("%s/%s/-/blob/%s/%s", c.InstanceURL, projectPath, branch, filePath)
}

// HasProjectFilter reports whether a project allow-list is configured.
func (c *Config) HasProjectFilter() bool {
	return len(c.ProjectIdentifiers) > 0
}

// MatchesProject reports whether a path_with_namespace passes the
// configured filter. An empty filter matches everything.
func (c *Config) MatchesProject(pathWithNamespace string) bool {
	if !c.HasProjectFilter() {
		return true
	}
	pathWithNamespace = strings.ToLower(pathWithNamespace)
	for _, want := range c.ProjectIdentifiers {
		if want == pathWithNamespace {
			return true
		}
	}
	return false
}

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
