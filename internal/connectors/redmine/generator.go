package redmine

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/tapestry-io/tapestry/internal/connectors/rest"
	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/logger"
)

// generator walks a Redmine instance depth-first and hands every mapped
// entity to emit: each project, then that project's issues, each issue's
// journals and attachments, then the project's wiki pages.
type generator struct {
	client *Client
	cfg    *Config
}

func (g *generator) run(ctx context.Context, emit func(domain.Entity) error) error {
	projects, err := g.client.ListPaginated(ctx, "/projects.json", "projects", nil)
	if err != nil {
		return fmt.Errorf("fetch projects: %w", err)
	}

	matched := 0
	for _, raw := range projects {
		identifier, _ := rest.Str(raw, "identifier")
		if !g.cfg.MatchesProject(identifier) {
			continue
		}
		matched++

		project, err := mapProject(raw, g.cfg.BaseURL)
		if err != nil {
			logger.Warn("redmine: skipping malformed project record: %v", err)
			continue
		}

		if err := emit(project); err != nil {
			return err
		}

		if err := g.syncIssues(ctx, project, emit); err != nil {
			return err
		}

		if g.cfg.IncludeWikiPages {
			if err := g.syncWiki(ctx, project, emit); err != nil {
				return err
			}
		}
	}

	if g.cfg.HasProjectFilter() && matched == 0 {
		return fmt.Errorf("redmine: project_identifiers %v: %w",
			g.cfg.ProjectIdentifiers, domain.ErrProjectFilterNoMatch)
	}

	return nil
}

// syncIssues emits every issue of a project, enriching each with its
// journals and attachments when configured. Enrichment failures are logged
// and skipped; the issue itself has already been emitted.
func (g *generator) syncIssues(ctx context.Context, project *ProjectEntity, emit func(domain.Entity) error) error {
	params := url.Values{}
	params.Set("project_id", fmt.Sprint(project.ProjectID))
	if g.cfg.IncludeClosedIssues {
		params.Set("status_id", "*")
	} else {
		params.Set("status_id", "open")
	}

	records, err := g.client.ListPaginated(ctx, "/issues.json", "issues", params)
	if err != nil {
		return fmt.Errorf("fetch issues for project %s: %w", project.Identifier, err)
	}

	for _, raw := range records {
		issue, err := mapIssue(raw, project, g.cfg.BaseURL)
		if err != nil {
			logger.Warn("redmine: skipping malformed issue record in %s: %v", project.Identifier, err)
			continue
		}

		if err := emit(issue); err != nil {
			return err
		}

		if err := g.syncJournals(ctx, issue, emit); err != nil {
			return err
		}

		if g.cfg.IncludeAttachments {
			if err := g.syncAttachments(ctx, issue, emit); err != nil {
				return err
			}
		}
	}

	return nil
}

// syncJournals refetches one issue with its journals included and emits
// every journal that carries note text. Field-change-only journals are
// dropped.
func (g *generator) syncJournals(ctx context.Context, issue *IssueEntity, emit func(domain.Entity) error) error {
	detail, err := g.issueDetail(ctx, issue.IssueID, "journals")
	if err != nil {
		if isCancelled(err) {
			return err
		}
		logger.Warn("redmine: journals for issue %d unavailable: %v", issue.IssueID, err)
		return nil
	}

	journals, _ := rest.List(detail, "journals")
	for _, raw := range journals {
		if !hasNotes(raw) {
			continue
		}
		journal, err := mapJournal(raw, issue)
		if err != nil {
			logger.Warn("redmine: skipping malformed journal on issue %d: %v", issue.IssueID, err)
			continue
		}
		if err := emit(journal); err != nil {
			return err
		}
	}

	return nil
}

func (g *generator) syncAttachments(ctx context.Context, issue *IssueEntity, emit func(domain.Entity) error) error {
	detail, err := g.issueDetail(ctx, issue.IssueID, "attachments")
	if err != nil {
		if isCancelled(err) {
			return err
		}
		logger.Warn("redmine: attachments for issue %d unavailable: %v", issue.IssueID, err)
		return nil
	}

	attachments, _ := rest.List(detail, "attachments")
	for _, raw := range attachments {
		attachment, err := mapAttachment(raw, issue)
		if err != nil {
			logger.Warn("redmine: skipping malformed attachment on issue %d: %v", issue.IssueID, err)
			continue
		}
		if err := emit(attachment); err != nil {
			return err
		}
	}

	return nil
}

// issueDetail fetches one issue with an include expansion (journals or
// attachments). The issue sub-object arrives under "issue".
func (g *generator) issueDetail(ctx context.Context, issueID int, include string) (map[string]any, error) {
	query := url.Values{}
	query.Set("include", include)

	payload, err := g.client.Get(ctx, fmt.Sprintf("/issues/%d.json", issueID), query)
	if err != nil {
		return nil, err
	}

	detail, ok := rest.Obj(payload, "issue")
	if !ok {
		return nil, fmt.Errorf("issue %d: response missing issue object", issueID)
	}
	return detail, nil
}

// syncWiki emits every wiki page of a project. The index endpoint returns
// 404 when the project has no wiki module enabled; that is a normal
// zero-page outcome, not an error. Per-page detail failures are logged and
// skipped.
func (g *generator) syncWiki(ctx context.Context, project *ProjectEntity, emit func(domain.Entity) error) error {
	indexPath := fmt.Sprintf("/projects/%s/wiki/index.json", project.Identifier)

	index, err := g.client.Get(ctx, indexPath, nil)
	if err != nil {
		if rest.IsNotFound(err) {
			logger.Debug("redmine: project %s has no wiki", project.Identifier)
			return nil
		}
		if isCancelled(err) {
			return err
		}
		logger.Warn("redmine: wiki index for %s unavailable: %v", project.Identifier, err)
		return nil
	}

	pages, _ := rest.List(index, "wiki_pages")
	for _, entry := range pages {
		title, ok := rest.Str(entry, "title")
		if !ok || title == "" {
			continue
		}

		detailPath := fmt.Sprintf("/projects/%s/wiki/%s.json", project.Identifier, url.PathEscape(title))
		payload, err := g.client.Get(ctx, detailPath, nil)
		if err != nil {
			if isCancelled(err) {
				return err
			}
			logger.Warn("redmine: wiki page %q in %s unavailable: %v", title, project.Identifier, err)
			continue
		}

		raw, ok := rest.Obj(payload, "wiki_page")
		if !ok {
			logger.Warn("redmine: wiki page %q in %s: response missing wiki_page object", title, project.Identifier)
			continue
		}

		page, err := mapWikiPage(raw, project, g.cfg.BaseURL)
		if err != nil {
			logger.Warn("redmine: skipping malformed wiki page in %s: %v", project.Identifier, err)
			continue
		}
		if err := emit(page); err != nil {
			return err
		}
	}

	return nil
}

// isCancelled distinguishes a caller-driven stop from an API failure so a
// closed stream is not misreported as a skipped sub-resource.
func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
