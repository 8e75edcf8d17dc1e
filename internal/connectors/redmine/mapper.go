package redmine

import (
	"fmt"
	"net/url"

	"github.com/tapestry-io/tapestry/internal/connectors/rest"
	"github.com/tapestry-io/tapestry/internal/core/domain"
)

// Mapping from raw API records to typed entities. All functions here are
// pure: no I/O, no mutation of the input record. Entity IDs are derived
// deterministically from the source record so two fetches of the same
// record always produce the same ID.

// journalNameLimit is the display-name truncation length for journal notes.
const journalNameLimit = 50

// changeLogName names journals that carry no note text. Such journals are
// filtered before emission; the placeholder exists for the mapper contract.
const changeLogName = "Change log entry"

// mapProject converts one raw project record into a ProjectEntity.
// id, name and identifier are required; their absence is an input error.
func mapProject(raw map[string]any, baseURL string) (*ProjectEntity, error) {
	id, ok := rest.Int(raw, "id")
	if !ok {
		return nil, fmt.Errorf("project record missing id")
	}
	name, ok := rest.Str(raw, "name")
	if !ok || name == "" {
		return nil, fmt.Errorf("project %d missing name", id)
	}
	identifier, ok := rest.Str(raw, "identifier")
	if !ok || identifier == "" {
		return nil, fmt.Errorf("project %d missing identifier", id)
	}

	status, _ := rest.Int(raw, "status")
	isPublic, _ := rest.Bool(raw, "is_public")

	var parentID *int
	if parent, ok := rest.Obj(raw, "parent"); ok {
		parentID = rest.IntPtr(rest.Int(parent, "id"))
	}

	var homepage *string
	if h, ok := rest.Str(raw, "homepage"); ok && h != "" {
		homepage = &h
	}

	return &ProjectEntity{
		EntityMeta: domain.EntityMeta{
			EntityID:    fmt.Sprintf("%s-%d", KindProject, id),
			Kind:        KindProject,
			Name:        name,
			WebURL:      fmt.Sprintf("%s/projects/%s", baseURL, identifier),
			CreatedAt:   rest.TimePtr(rest.Time(raw, "created_on")),
			UpdatedAt:   rest.TimePtr(rest.Time(raw, "updated_on")),
			Breadcrumbs: []domain.Breadcrumb{},
		},
		ProjectID:   id,
		Identifier:  identifier,
		Description: rest.StrPtr(rest.Str(raw, "description")),
		Homepage:    homepage,
		IsPublic:    isPublic,
		ParentID:    parentID,
		Status:      status,
	}, nil
}

// mapIssue converts one raw issue record into an IssueEntity breadcrumbed
// to its already-constructed project.
func mapIssue(raw map[string]any, project *ProjectEntity, baseURL string) (*IssueEntity, error) {
	id, ok := rest.Int(raw, "id")
	if !ok {
		return nil, fmt.Errorf("issue record missing id")
	}

	subject := rest.StrOr(raw, "subject", "")
	name := subject
	if name == "" {
		name = fmt.Sprintf("Issue #%d", id)
	}

	// The embedded project sub-object is authoritative for id/name; fall
	// back to the listing project when it is absent or malformed.
	projectID := project.ProjectID
	projectName := project.Name
	if sub, ok := rest.Obj(raw, "project"); ok {
		if pid, ok := rest.Int(sub, "id"); ok {
			projectID = pid
		}
		if pname, ok := rest.Str(sub, "name"); ok && pname != "" {
			projectName = pname
		}
	}

	doneRatio, _ := rest.Int(raw, "done_ratio")

	return &IssueEntity{
		EntityMeta: domain.EntityMeta{
			EntityID:    fmt.Sprintf("%s-%d", KindIssue, id),
			Kind:        KindIssue,
			Name:        name,
			WebURL:      fmt.Sprintf("%s/issues/%d", baseURL, id),
			CreatedAt:   rest.TimePtr(rest.Time(raw, "created_on")),
			UpdatedAt:   rest.TimePtr(rest.Time(raw, "updated_on")),
			Breadcrumbs: []domain.Breadcrumb{project.AsBreadcrumb()},
		},
		IssueID:        id,
		Subject:        subject,
		Description:    rest.StrPtr(rest.Str(raw, "description")),
		ProjectID:      projectID,
		ProjectName:    projectName,
		TrackerName:    rest.StrPtr(rest.NestedStr(raw, "tracker", "name")),
		StatusName:     rest.StrPtr(rest.NestedStr(raw, "status", "name")),
		PriorityName:   rest.StrPtr(rest.NestedStr(raw, "priority", "name")),
		Author:         rest.StrPtr(rest.NestedStr(raw, "author", "name")),
		AssignedTo:     rest.StrPtr(rest.NestedStr(raw, "assigned_to", "name")),
		StartDate:      rest.TimePtr(rest.Date(raw, "start_date")),
		DueDate:        rest.TimePtr(rest.Date(raw, "due_date")),
		ClosedOn:       rest.TimePtr(rest.Time(raw, "closed_on")),
		DoneRatio:      doneRatio,
		EstimatedHours: rest.FloatPtr(rest.Float(raw, "estimated_hours")),
		SpentHours:     rest.FloatPtr(rest.Float(raw, "spent_hours")),
	}, nil
}

// mapWikiPage converts one raw wiki page record into a WikiPageEntity.
// Titles are unique per project only, so the derived ID carries the
// project ID: two pages with the same title in different projects map to
// different entities.
func mapWikiPage(raw map[string]any, project *ProjectEntity, baseURL string) (*WikiPageEntity, error) {
	title, ok := rest.Str(raw, "title")
	if !ok || title == "" {
		return nil, fmt.Errorf("wiki page record missing title")
	}

	version, _ := rest.Int(raw, "version")

	return &WikiPageEntity{
		EntityMeta: domain.EntityMeta{
			EntityID:    fmt.Sprintf("%s-%d-%s", KindWikiPage, project.ProjectID, title),
			Kind:        KindWikiPage,
			Name:        title,
			WebURL:      fmt.Sprintf("%s/projects/%s/wiki/%s", baseURL, project.Identifier, url.PathEscape(title)),
			CreatedAt:   rest.TimePtr(rest.Time(raw, "created_on")),
			UpdatedAt:   rest.TimePtr(rest.Time(raw, "updated_on")),
			Breadcrumbs: []domain.Breadcrumb{project.AsBreadcrumb()},
		},
		ProjectID:   project.ProjectID,
		ProjectName: project.Name,
		Title:       title,
		Text:        rest.StrOr(raw, "text", ""),
		Version:     version,
		Author:      rest.StrPtr(rest.NestedStr(raw, "author", "name")),
		Comments:    rest.StrPtr(rest.Str(raw, "comments")),
	}, nil
}

// mapJournal converts one raw journal record into a JournalEntity
// breadcrumbed to its issue. Callers filter note-less journals before
// mapping; the placeholder name covers the contract regardless.
func mapJournal(raw map[string]any, issue *IssueEntity) (*JournalEntity, error) {
	id, ok := rest.Int(raw, "id")
	if !ok {
		return nil, fmt.Errorf("journal record missing id")
	}

	notes := rest.StrOr(raw, "notes", "")

	return &JournalEntity{
		EntityMeta: domain.EntityMeta{
			EntityID:    fmt.Sprintf("%s-%d", KindJournal, id),
			Kind:        KindJournal,
			Name:        journalName(notes),
			WebURL:      fmt.Sprintf("%s#note-%d", issue.WebURL, id),
			CreatedAt:   rest.TimePtr(rest.Time(raw, "created_on")),
			Breadcrumbs: []domain.Breadcrumb{issue.AsBreadcrumb()},
		},
		JournalID: id,
		IssueID:   issue.IssueID,
		Notes:     notes,
		Author:    rest.StrPtr(rest.NestedStr(raw, "user", "name")),
	}, nil
}

// journalName derives a display name from note text: the first 50
// characters plus an ellipsis when truncated, or a fixed placeholder when
// there is no text.
func journalName(notes string) string {
	if notes == "" {
		return changeLogName
	}
	runes := []rune(notes)
	if len(runes) <= journalNameLimit {
		return notes
	}
	return string(runes[:journalNameLimit]) + "..."
}

// hasNotes reports whether a raw journal record carries human note text.
func hasNotes(raw map[string]any) bool {
	notes, ok := rest.Str(raw, "notes")
	return ok && notes != ""
}

// mapAttachment converts one raw attachment record into an
// AttachmentEntity breadcrumbed to its issue.
func mapAttachment(raw map[string]any, issue *IssueEntity) (*AttachmentEntity, error) {
	id, ok := rest.Int(raw, "id")
	if !ok {
		return nil, fmt.Errorf("attachment record missing id")
	}
	filename, ok := rest.Str(raw, "filename")
	if !ok || filename == "" {
		return nil, fmt.Errorf("attachment %d missing filename", id)
	}

	filesize, _ := rest.Int(raw, "filesize")
	contentURL := rest.StrOr(raw, "content_url", "")

	return &AttachmentEntity{
		EntityMeta: domain.EntityMeta{
			EntityID:    fmt.Sprintf("%s-%d", KindAttachment, id),
			Kind:        KindAttachment,
			Name:        filename,
			WebURL:      contentURL,
			CreatedAt:   rest.TimePtr(rest.Time(raw, "created_on")),
			Breadcrumbs: []domain.Breadcrumb{issue.AsBreadcrumb()},
		},
		AttachmentID: id,
		IssueID:      issue.IssueID,
		Filename:     filename,
		Filesize:     filesize,
		ContentType:  rest.StrOr(raw, "content_type", ""),
		Description:  rest.StrPtr(rest.Str(raw, "description")),
		ContentURL:   contentURL,
		Author:       rest.StrPtr(rest.NestedStr(raw, "author", "name")),
	}, nil
}
