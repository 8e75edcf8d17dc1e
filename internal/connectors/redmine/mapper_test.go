package redmine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://redmine.example.com"

func testProject(t *testing.T) *ProjectEntity {
	t.Helper()
	project, err := mapProject(map[string]any{
		"id":         float64(1),
		"name":       "Alpha",
		"identifier": "alpha",
		"created_on": "2024-01-02T03:04:05Z",
	}, testBaseURL)
	require.NoError(t, err)
	return project
}

func TestMapProject(t *testing.T) {
	project := testProject(t)

	assert.Equal(t, "project-1", project.EntityID)
	assert.Equal(t, KindProject, project.Kind)
	assert.Equal(t, "Alpha", project.Name)
	assert.Equal(t, "alpha", project.Identifier)
	assert.Equal(t, testBaseURL+"/projects/alpha", project.WebURL)
	assert.Empty(t, project.Breadcrumbs)
	require.NotNil(t, project.CreatedAt)
	assert.Equal(t, 2024, project.CreatedAt.Year())
}

func TestMapProjectMissingFields(t *testing.T) {
	_, err := mapProject(map[string]any{"name": "Alpha", "identifier": "alpha"}, testBaseURL)
	assert.Error(t, err)

	_, err = mapProject(map[string]any{"id": float64(1), "identifier": "alpha"}, testBaseURL)
	assert.Error(t, err)

	_, err = mapProject(map[string]any{"id": float64(1), "name": "Alpha"}, testBaseURL)
	assert.Error(t, err)
}

func TestMapIssue(t *testing.T) {
	project := testProject(t)

	issue, err := mapIssue(map[string]any{
		"id":      float64(101),
		"subject": "Fix the flux capacitor",
		"project": map[string]any{"id": float64(1), "name": "Alpha"},
		"tracker": map[string]any{"name": "Bug"},
		"status":  map[string]any{"name": "Open"},
		"author":  map[string]any{"name": "Marty"},
	}, project, testBaseURL)
	require.NoError(t, err)

	assert.Equal(t, "issue-101", issue.EntityID)
	assert.Equal(t, "Fix the flux capacitor", issue.Name)
	assert.Equal(t, testBaseURL+"/issues/101", issue.WebURL)
	require.NotNil(t, issue.TrackerName)
	assert.Equal(t, "Bug", *issue.TrackerName)
	require.NotNil(t, issue.Author)
	assert.Equal(t, "Marty", *issue.Author)

	require.Len(t, issue.Breadcrumbs, 1)
	assert.Equal(t, "project-1", issue.Breadcrumbs[0].EntityID)
	assert.Equal(t, "Alpha", issue.Breadcrumbs[0].Name)
}

func TestMapIssueNameFallback(t *testing.T) {
	project := testProject(t)

	issue, err := mapIssue(map[string]any{"id": float64(7)}, project, testBaseURL)
	require.NoError(t, err)
	assert.Equal(t, "Issue #7", issue.Name)
}

func TestMapWikiPage(t *testing.T) {
	project := testProject(t)

	page, err := mapWikiPage(map[string]any{
		"title":   "Getting Started",
		"text":    "h1. Welcome",
		"version": float64(3),
	}, project, testBaseURL)
	require.NoError(t, err)

	assert.Equal(t, "wiki-1-Getting Started", page.EntityID)
	assert.Equal(t, "Getting Started", page.Name)
	assert.Equal(t, testBaseURL+"/projects/alpha/wiki/Getting%20Started", page.WebURL)
	assert.Equal(t, 3, page.Version)
	require.Len(t, page.Breadcrumbs, 1)
	assert.Equal(t, "project-1", page.Breadcrumbs[0].EntityID)
}

func TestMapJournal(t *testing.T) {
	project := testProject(t)
	issue, err := mapIssue(map[string]any{"id": float64(101), "subject": "Fix it"}, project, testBaseURL)
	require.NoError(t, err)

	journal, err := mapJournal(map[string]any{
		"id":    float64(201),
		"notes": "Looks good to me",
		"user":  map[string]any{"name": "Doc"},
	}, issue)
	require.NoError(t, err)

	assert.Equal(t, "journal-201", journal.EntityID)
	assert.Equal(t, "Looks good to me", journal.Name)
	assert.Equal(t, testBaseURL+"/issues/101#note-201", journal.WebURL)
	require.NotNil(t, journal.Author)
	assert.Equal(t, "Doc", *journal.Author)
	require.Len(t, journal.Breadcrumbs, 1)
	assert.Equal(t, "issue-101", journal.Breadcrumbs[0].EntityID)
}

func TestJournalName(t *testing.T) {
	assert.Equal(t, "Change log entry", journalName(""))
	assert.Equal(t, "short note", journalName("short note"))

	long := strings.Repeat("x", 60)
	got := journalName(long)
	assert.Equal(t, strings.Repeat("x", 50)+"...", got)

	// Truncation must not split multi-byte characters.
	accents := strings.Repeat("é", 60)
	assert.Equal(t, strings.Repeat("é", 50)+"...", journalName(accents))
}

func TestHasNotes(t *testing.T) {
	assert.True(t, hasNotes(map[string]any{"notes": "hello"}))
	assert.False(t, hasNotes(map[string]any{"notes": ""}))
	assert.False(t, hasNotes(map[string]any{}))
}

func TestMapAttachment(t *testing.T) {
	project := testProject(t)
	issue, err := mapIssue(map[string]any{"id": float64(101), "subject": "Fix it"}, project, testBaseURL)
	require.NoError(t, err)

	attachment, err := mapAttachment(map[string]any{
		"id":          float64(301),
		"filename":    "crash.log",
		"filesize":    float64(2048),
		"content_url": testBaseURL + "/attachments/download/301/crash.log",
	}, issue)
	require.NoError(t, err)

	assert.Equal(t, "attachment-301", attachment.EntityID)
	assert.Equal(t, "crash.log", attachment.Name)
	assert.Equal(t, 2048, attachment.Filesize)
	assert.Equal(t, testBaseURL+"/attachments/download/301/crash.log", attachment.WebURL)
	require.Len(t, attachment.Breadcrumbs, 1)
	assert.Equal(t, "issue-101", attachment.Breadcrumbs[0].EntityID)

	_, err = mapAttachment(map[string]any{"id": float64(301)}, issue)
	assert.Error(t, err)
}
