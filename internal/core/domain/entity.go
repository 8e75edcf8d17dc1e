package domain

import "time"

// Breadcrumb references an ancestor entity in the resource hierarchy.
// It records lineage for display, not ownership: a breadcrumb always points
// at an entity that was emitted earlier in the same run.
type Breadcrumb struct {
	// EntityID is the ancestor's entity ID (e.g., "project-1").
	EntityID string `json:"entity_id"`

	// Name is the ancestor's display name.
	Name string `json:"name"`

	// Type is the ancestor's kind (e.g., "project", "issue").
	Type string `json:"type"`
}

// EntityMeta carries the fields common to every entity a connector emits.
// Connector-specific entity structs embed it and expose it via Entity.
type EntityMeta struct {
	// EntityID is derived deterministically from the source record:
	// "<kind>-<source-id>", or "<kind>-<project-id>-<title>" for
	// resources whose identity is only unique per project.
	EntityID string `json:"entity_id"`

	// Kind identifies the resource type (e.g., "issue", "wiki").
	Kind string `json:"kind"`

	// Name is the human-readable display name.
	Name string `json:"name"`

	// WebURL links to the resource in the source system's UI.
	WebURL string `json:"web_url,omitempty"`

	// CreatedAt is when the source record was created, if reported.
	CreatedAt *time.Time `json:"created_at,omitempty"`

	// UpdatedAt is when the source record was last updated, if reported.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Breadcrumbs is the containment path from root to immediate parent,
	// in order. Empty for top-level entities.
	Breadcrumbs []Breadcrumb `json:"breadcrumbs"`
}

// Entity is one typed record produced by a connector run.
// Entities are immutable once constructed and are rebuilt fresh on every
// run; nothing in this layer caches them.
type Entity interface {
	// Meta returns the common entity fields.
	Meta() *EntityMeta
}

// Meta implements Entity, so connector entity structs can embed EntityMeta.
func (m *EntityMeta) Meta() *EntityMeta { return m }

// AsBreadcrumb converts an entity's meta into a breadcrumb for its children.
func (m *EntityMeta) AsBreadcrumb() Breadcrumb {
	return Breadcrumb{
		EntityID: m.EntityID,
		Name:     m.Name,
		Type:     m.Kind,
	}
}
