package gitlab

import (
	"fmt"

	"github.com/tapestry-io/tapestry/internal/connectors/rest"
	"github.com/tapestry-io/tapestry/internal/core/domain"
)

// Mapping from raw API records to typed entities. All functions here are
// pure. Entity IDs derive deterministically from the source record; the
// path-composite kinds (wiki, file) also carry the project ID because their
// natural keys are only unique per project.

// noteNameLimit is the display-name truncation length for note bodies.
const noteNameLimit = 50

// mapProject converts one raw project record into a ProjectEntity.
// id, name and path_with_namespace are required.
func mapProject(raw map[string]any, cfg *Config) (*ProjectEntity, error) {
	id, ok := rest.Int(raw, "id")
	if !ok {
		return nil, fmt.Errorf("project record missing id")
	}
	name, ok := rest.Str(raw, "name")
	if !ok || name == "" {
		return nil, fmt.Errorf("project %d missing name", id)
	}
	path, ok := rest.Str(raw, "path_with_namespace")
	if !ok || path == "" {
		return nil, fmt.Errorf("project %d missing path_with_namespace", id)
	}

	webURL := rest.StrOr(raw, "web_url", "")
	if webURL == "" {
		webURL = fmt.Sprintf("%s/%s", cfg.InstanceURL, path)
	}

	return &ProjectEntity{
		EntityMeta: domain.EntityMeta{
			EntityID:    fmt.Sprintf("%s-%d", KindProject, id),
			Kind:        KindProject,
			Name:        name,
			WebURL:      webURL,
			CreatedAt:   rest.TimePtr(rest.Time(raw, "created_at")),
			UpdatedAt:   rest.TimePtr(rest.Time(raw, "last_activity_at")),
			Breadcrumbs: []domain.Breadcrumb{},
		},
		ProjectID:         id,
		PathWithNamespace: path,
		Description:       rest.StrPtr(rest.Str(raw, "description")),
		Visibility:        rest.StrOr(raw, "visibility", ""),
		DefaultBranch:     rest.StrOr(raw, "default_branch", ""),
	}, nil
}

// mapIssue converts one raw issue record into an IssueEntity breadcrumbed
// to its project. The instance-global id keys the entity; the iid is what
// the UI shows and what the notes endpoint is addressed by.
func mapIssue(raw map[string]any, project *ProjectEntity) (*IssueEntity, error) {
	id, ok := rest.Int(raw, "id")
	if !ok {
		return nil, fmt.Errorf("issue record missing id")
	}
	iid, ok := rest.Int(raw, "iid")
	if !ok {
		return nil, fmt.Errorf("issue %d missing iid", id)
	}

	title := rest.StrOr(raw, "title", "")
	name := title
	if name == "" {
		name = fmt.Sprintf("Issue #%d", iid)
	}

	webURL := rest.StrOr(raw, "web_url", "")
	if webURL == "" {
		webURL = fmt.Sprintf("%s/-/issues/%d", project.WebURL, iid)
	}

	labels, _ := rest.StrList(raw, "labels")

	var assignees []string
	if rawAssignees, ok := rest.List(raw, "assignees"); ok {
		for _, a := range rawAssignees {
			if n, ok := rest.Str(a, "name"); ok && n != "" {
				assignees = append(assignees, n)
			}
		}
	}

	return &IssueEntity{
		EntityMeta: domain.EntityMeta{
			EntityID:    fmt.Sprintf("%s-%d", KindIssue, id),
			Kind:        KindIssue,
			Name:        name,
			WebURL:      webURL,
			CreatedAt:   rest.TimePtr(rest.Time(raw, "created_at")),
			UpdatedAt:   rest.TimePtr(rest.Time(raw, "updated_at")),
			Breadcrumbs: []domain.Breadcrumb{project.AsBreadcrumb()},
		},
		IssueID:     id,
		IID:         iid,
		ProjectID:   project.ProjectID,
		Title:       title,
		Description: rest.StrPtr(rest.Str(raw, "description")),
		State:       rest.StrOr(raw, "state", ""),
		Labels:      labels,
		Author:      rest.StrPtr(rest.NestedStr(raw, "author", "name")),
		Assignees:   assignees,
	}, nil
}

// isSystemNote reports whether a raw note record is machine-generated
// (state changes, label edits). System notes are filtered before mapping,
// the same rule as note-less journals elsewhere.
func isSystemNote(raw map[string]any) bool {
	system, _ := rest.Bool(raw, "system")
	return system
}

// mapNote converts one raw note record into a NoteEntity breadcrumbed to
// its issue.
func mapNote(raw map[string]any, issue *IssueEntity) (*NoteEntity, error) {
	id, ok := rest.Int(raw, "id")
	if !ok {
		return nil, fmt.Errorf("note record missing id")
	}

	body := rest.StrOr(raw, "body", "")

	return &NoteEntity{
		EntityMeta: domain.EntityMeta{
			EntityID:    fmt.Sprintf("%s-%d", KindNote, id),
			Kind:        KindNote,
			Name:        noteName(body),
			WebURL:      fmt.Sprintf("%s#note_%d", issue.WebURL, id),
			CreatedAt:   rest.TimePtr(rest.Time(raw, "created_at")),
			UpdatedAt:   rest.TimePtr(rest.Time(raw, "updated_at")),
			Breadcrumbs: []domain.Breadcrumb{issue.AsBreadcrumb()},
		},
		NoteID:  id,
		IssueID: issue.IssueID,
		Body:    body,
		Author:  rest.StrPtr(rest.NestedStr(raw, "author", "name")),
	}, nil
}

// noteName derives a display name from the note body: the first 50
// characters plus an ellipsis when truncated.
func noteName(body string) string {
	runes := []rune(body)
	if len(runes) <= noteNameLimit {
		return body
	}
	return string(runes[:noteNameLimit]) + "..."
}

// mapWikiPage converts one raw wiki page record into a WikiPageEntity.
func mapWikiPage(raw map[string]any, project *ProjectEntity) (*WikiPageEntity, error) {
	slug, ok := rest.Str(raw, "slug")
	if !ok || slug == "" {
		return nil, fmt.Errorf("wiki page record missing slug")
	}

	title := rest.StrOr(raw, "title", slug)

	return &WikiPageEntity{
		EntityMeta: domain.EntityMeta{
			EntityID:    fmt.Sprintf("%s-%d-%s", KindWikiPage, project.ProjectID, slug),
			Kind:        KindWikiPage,
			Name:        title,
			WebURL:      fmt.Sprintf("%s/-/wikis/%s", project.WebURL, slug),
			Breadcrumbs: []domain.Breadcrumb{project.AsBreadcrumb()},
		},
		ProjectID: project.ProjectID,
		Slug:      slug,
		Title:     title,
		Format:    rest.StrOr(raw, "format", ""),
		Content:   rest.StrOr(raw, "content", ""),
	}, nil
}

// mapFile converts one raw repository tree record into a FileEntity at the
// given branch. Only blobs map; tree (directory) records are skipped by the
// caller.
func mapFile(raw map[string]any, project *ProjectEntity, branch string, cfg *Config) (*FileEntity, error) {
	path, ok := rest.Str(raw, "path")
	if !ok || path == "" {
		return nil, fmt.Errorf("tree record missing path")
	}

	name := rest.StrOr(raw, "name", path)

	return &FileEntity{
		EntityMeta: domain.EntityMeta{
			EntityID:    fmt.Sprintf("%s-%d-%s", KindFile, project.ProjectID, path),
			Kind:        KindFile,
			Name:        name,
			WebURL:      cfg.BlobURL(project.PathWithNamespace, branch, path),
			Breadcrumbs: []domain.Breadcrumb{project.AsBreadcrumb()},
		},
		ProjectID: project.ProjectID,
		Path:      path,
		Branch:    branch,
		BlobSHA:   rest.StrOr(raw, "id", ""),
	}, nil
}

// isBlob reports whether a raw tree record is a file rather than a
// directory.
func isBlob(raw map[string]any) bool {
	return rest.StrOr(raw, "type", "") == "blob"
}
