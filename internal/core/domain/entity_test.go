package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityMetaAsBreadcrumb(t *testing.T) {
	meta := &EntityMeta{
		EntityID: "project-1",
		Kind:     "project",
		Name:     "Alpha",
		WebURL:   "https://redmine.example.com/projects/alpha",
	}

	crumb := meta.AsBreadcrumb()
	assert.Equal(t, Breadcrumb{
		EntityID: "project-1",
		Name:     "Alpha",
		Type:     "project",
	}, crumb)
}

func TestEntityMetaImplementsEntity(t *testing.T) {
	meta := &EntityMeta{EntityID: "issue-7", Kind: "issue"}
	var e Entity = meta
	assert.Same(t, meta, e.Meta())
}

func TestEntityMetaJSON(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	meta := &EntityMeta{
		EntityID:  "issue-7",
		Kind:      "issue",
		Name:      "Fix login",
		CreatedAt: &created,
		Breadcrumbs: []Breadcrumb{
			{EntityID: "project-1", Name: "Alpha", Type: "project"},
		},
	}

	data, err := json.Marshal(meta)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "issue-7", decoded["entity_id"])
	assert.Equal(t, "issue", decoded["kind"])
	assert.NotContains(t, decoded, "web_url", "empty optional fields are omitted")
	assert.Contains(t, decoded, "breadcrumbs")
}

func TestSourceDisplayName(t *testing.T) {
	source := &Source{Name: "Tracker"}

	assert.Equal(t, "Tracker - admin@example.com", source.DisplayName("admin@example.com"))
	assert.Equal(t, "Tracker", source.DisplayName(""))

	named := &Source{Name: "Tracker (admin@example.com)"}
	assert.Equal(t, "Tracker (admin@example.com)", named.DisplayName("admin@example.com"))
}

func TestSyncRunTotal(t *testing.T) {
	run := &SyncRun{EntityCounts: map[string]int{"project": 2, "issue": 5, "wiki": 1}}
	assert.Equal(t, 8, run.Total())

	empty := &SyncRun{}
	assert.Equal(t, 0, empty.Total())
}
