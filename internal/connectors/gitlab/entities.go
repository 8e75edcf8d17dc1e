package gitlab

import (
	"github.com/tapestry-io/tapestry/internal/core/domain"
)

// Entity kinds emitted by the GitLab connector. The kind doubles as the
// prefix of the derived entity ID.
const (
	KindProject  = "project"
	KindIssue    = "issue"
	KindNote     = "note"
	KindWikiPage = "wiki"
	KindFile     = "file"
)

// ProjectEntity is a GitLab project. Top level; no breadcrumb.
type ProjectEntity struct {
	domain.EntityMeta

	ProjectID         int     `json:"project_id"`
	PathWithNamespace string  `json:"path_with_namespace"`
	Description       *string `json:"description,omitempty"`
	Visibility        string  `json:"visibility"`
	DefaultBranch     string  `json:"default_branch"`
}

// IssueEntity is a GitLab issue. IID is the project-scoped number shown in
// the UI; IssueID is the instance-global ID the entity ID derives from.
type IssueEntity struct {
	domain.EntityMeta

	IssueID     int      `json:"issue_id"`
	IID         int      `json:"iid"`
	ProjectID   int      `json:"project_id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	State       string   `json:"state"`
	Labels      []string `json:"labels,omitempty"`
	Author      *string  `json:"author,omitempty"`
	Assignees   []string `json:"assignees,omitempty"`
}

// NoteEntity is a human comment on an issue. System notes (state changes,
// label edits and the like) are never emitted.
type NoteEntity struct {
	domain.EntityMeta

	NoteID  int     `json:"note_id"`
	IssueID int     `json:"issue_id"`
	Body    string  `json:"body"`
	Author  *string `json:"author,omitempty"`
}

// WikiPageEntity is one page of a project wiki. Slugs are unique per
// project only, so the entity ID also carries the project ID.
type WikiPageEntity struct {
	domain.EntityMeta

	ProjectID int    `json:"project_id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Format    string `json:"format"`
	Content   string `json:"content"`
}

// FileEntity is one blob of a project's repository tree at the synced
// branch. Paths are unique per project only, so the entity ID also carries
// the project ID.
type FileEntity struct {
	domain.EntityMeta

	ProjectID int    `json:"project_id"`
	Path      string `json:"path"`
	Branch    string `json:"branch"`
	BlobSHA   string `json:"blob_sha"`
}
