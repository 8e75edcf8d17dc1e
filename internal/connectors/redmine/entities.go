package redmine

import (
	"time"

	"github.com/tapestry-io/tapestry/internal/core/domain"
)

// Entity kinds emitted by the Redmine connector. The kind doubles as the
// prefix of the derived entity ID.
const (
	KindProject    = "project"
	KindIssue      = "issue"
	KindWikiPage   = "wiki"
	KindJournal    = "journal"
	KindAttachment = "attachment"
)

// ProjectEntity is a Redmine project. Top level; no breadcrumb.
type ProjectEntity struct {
	domain.EntityMeta

	ProjectID   int     `json:"project_id"`
	Identifier  string  `json:"identifier"`
	Description *string `json:"description,omitempty"`
	Homepage    *string `json:"homepage,omitempty"`
	IsPublic    bool    `json:"is_public"`
	ParentID    *int    `json:"parent_id,omitempty"`
	Status      int     `json:"status"`
}

// IssueEntity is a Redmine issue. Breadcrumbs to its project.
type IssueEntity struct {
	domain.EntityMeta

	IssueID        int        `json:"issue_id"`
	Subject        string     `json:"subject"`
	Description    *string    `json:"description,omitempty"`
	ProjectID      int        `json:"project_id"`
	ProjectName    string     `json:"project_name"`
	TrackerName    *string    `json:"tracker_name,omitempty"`
	StatusName     *string    `json:"status_name,omitempty"`
	PriorityName   *string    `json:"priority_name,omitempty"`
	Author         *string    `json:"author,omitempty"`
	AssignedTo     *string    `json:"assigned_to,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	ClosedOn       *time.Time `json:"closed_on,omitempty"`
	DoneRatio      int        `json:"done_ratio"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	SpentHours     *float64   `json:"spent_hours,omitempty"`
}

// WikiPageEntity is one page of a project wiki. Page titles are unique per
// project, not globally, so the entity ID also carries the project ID.
type WikiPageEntity struct {
	domain.EntityMeta

	ProjectID   int     `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Title       string  `json:"title"`
	Text        string  `json:"text"`
	Version     int     `json:"version"`
	Author      *string `json:"author,omitempty"`
	Comments    *string `json:"comments,omitempty"`
}

// JournalEntity is a human comment on an issue. Journals that carry only
// field changes (no note text) are never emitted.
type JournalEntity struct {
	domain.EntityMeta

	JournalID int     `json:"journal_id"`
	IssueID   int     `json:"issue_id"`
	Notes     string  `json:"notes"`
	Author    *string `json:"author,omitempty"`
}

// AttachmentEntity is a file attached to an issue.
type AttachmentEntity struct {
	domain.EntityMeta

	AttachmentID int     `json:"attachment_id"`
	IssueID      int     `json:"issue_id"`
	Filename     string  `json:"filename"`
	Filesize     int     `json:"filesize"`
	ContentType  string  `json:"content_type"`
	Description  *string `json:"description,omitempty"`
	ContentURL   string  `json:"content_url"`
	Author       *string `json:"author,omitempty"`
}
