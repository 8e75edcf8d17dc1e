package services

import (
	"fmt"
	"sort"

	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driving"
)

// Ensure ConnectorRegistry implements the interface.
var _ driving.ConnectorRegistry = (*ConnectorRegistry)(nil)

// ConnectorRegistry describes the built-in connector types.
type ConnectorRegistry struct {
	types map[string]driving.ConnectorTypeInfo
}

// NewConnectorRegistry creates a registry with the built-in connectors.
func NewConnectorRegistry() *ConnectorRegistry {
	r := &ConnectorRegistry{
		types: make(map[string]driving.ConnectorTypeInfo),
	}
	r.registerRedmine()
	r.registerGitLab()
	return r
}

func (r *ConnectorRegistry) registerRedmine() {
	r.types["redmine"] = driving.ConnectorTypeInfo{
		ID:          "redmine",
		Name:        "Redmine",
		Description: "Sync projects, issues, journals, attachments and wikis from a Redmine instance",
		AuthMethods: []domain.AuthMethod{domain.AuthMethodAPIKey},
		ConfigKeys:  redmineConfigKeys(),
	}
}

func redmineConfigKeys() []driving.ConfigKey {
	return []driving.ConfigKey{
		{
			Key:         "base_url",
			Label:       "Base URL",
			Description: "Redmine instance URL",
			Required:    true,
		},
		{
			Key:         "project_identifiers",
			Label:       "Projects",
			Description: "Comma-separated project identifiers to sync (all when empty)",
		},
		{
			Key:         "include_closed_issues",
			Label:       "Include Closed Issues",
			Description: "Sync closed issues as well as open ones",
			Default:     "false",
		},
		{
			Key:         "include_attachments",
			Label:       "Include Attachments",
			Description: "Sync issue attachments",
			Default:     "false",
		},
		{
			Key:         "include_wiki_pages",
			Label:       "Include Wiki Pages",
			Description: "Sync project wikis",
			Default:     "true",
		},
	}
}

func (r *ConnectorRegistry) registerGitLab() {
	r.types["gitlab"] = driving.ConnectorTypeInfo{
		ID:          "gitlab",
		Name:        "GitLab (self-hosted)",
		Description: "Sync projects, issues, notes, wikis and repository files from a self-hosted GitLab instance",
		AuthMethods: []domain.AuthMethod{domain.AuthMethodPAT, domain.AuthMethodOAuth},
		ConfigKeys:  gitlabConfigKeys(),
	}
}

func gitlabConfigKeys() []driving.ConfigKey {
	return []driving.ConfigKey{
		{
			Key:         "instance_url",
			Label:       "Instance URL",
			Description: "GitLab instance URL (https assumed when no scheme is given)",
			Required:    true,
		},
		{
			Key:         "project_identifiers",
			Label:       "Projects",
			Description: "Comma-separated project paths to sync (all visible when empty)",
		},
		{
			Key:         "branch",
			Label:       "Branch",
			Description: "Branch for repository file syncing (project default when empty)",
		},
		{
			Key:         "include_closed_issues",
			Label:       "Include Closed Issues",
			Description: "Sync closed issues as well as open ones",
			Default:     "false",
		},
		{
			Key:         "include_wiki_pages",
			Label:       "Include Wiki Pages",
			Description: "Sync project wikis",
			Default:     "true",
		},
		{
			Key:         "include_files",
			Label:       "Include Repository Files",
			Description: "Sync the repository tree at the configured branch",
			Default:     "false",
		},
	}
}

// List returns all connector types, ordered by ID.
func (r *ConnectorRegistry) List() []driving.ConnectorTypeInfo {
	infos := make([]driving.ConnectorTypeInfo, 0, len(r.types))
	for _, info := range r.types {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Get returns a connector type by ID.
func (r *ConnectorRegistry) Get(id string) (*driving.ConnectorTypeInfo, error) {
	info, ok := r.types[id]
	if !ok {
		return nil, fmt.Errorf("connector type %q: %w", id, domain.ErrUnsupportedType)
	}
	return &info, nil
}

// ValidateConfig checks that every required key of the connector type is
// present and non-empty, and that no unknown keys are given.
func (r *ConnectorRegistry) ValidateConfig(connectorID string, config map[string]string) error {
	info, err := r.Get(connectorID)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(info.ConfigKeys))
	for _, key := range info.ConfigKeys {
		known[key.Key] = true
		if key.Required && config[key.Key] == "" {
			return fmt.Errorf("%s: missing required config key %q: %w",
				connectorID, key.Key, domain.ErrInvalidInput)
		}
	}

	for key := range config {
		if !known[key] {
			return fmt.Errorf("%s: unknown config key %q: %w",
				connectorID, key, domain.ErrInvalidInput)
		}
	}

	return nil
}
