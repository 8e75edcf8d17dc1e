package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/tapestry-io/tapestry/internal/connectors/rest"
	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/logger"
)

// generator walks a GitLab instance depth-first: each project, then that
// project's issues, each issue's human notes, then the project wiki, then
// the repository tree when file syncing is on.
type generator struct {
	client *Client
	cfg    *Config
}

func (g *generator) run(ctx context.Context, emit func(domain.Entity) error) error {
	params := url.Values{}
	params.Set("membership", "true")

	projects, err := g.client.ListPaginated(ctx, "/projects", params)
	if err != nil {
		return fmt.Errorf("fetch projects: %w", err)
	}

	matched := 0
	for _, raw := range projects {
		path, _ := rest.Str(raw, "path_with_namespace")
		if !g.cfg.MatchesProject(path) {
			continue
		}
		matched++

		project, err := mapProject(raw, g.cfg)
		if err != nil {
			logger.Warn("gitlab: skipping malformed project record: %v", err)
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

		if g.cfg.IncludeFiles {
			if err := g.syncFiles(ctx, project, emit); err != nil {
				return err
			}
		}
	}

	if g.cfg.HasProjectFilter() && matched == 0 {
		return fmt.Errorf("gitlab: project_identifiers %v: %w",
			g.cfg.ProjectIdentifiers, domain.ErrProjectFilterNoMatch)
	}

	return nil
}

// syncIssues emits every issue of a project followed by its human notes.
func (g *generator) syncIssues(ctx context.Context, project *ProjectEntity, emit func(domain.Entity) error) error {
	params := url.Values{}
	if !g.cfg.IncludeClosedIssues {
		params.Set("state", "opened")
	}

	path := fmt.Sprintf("/projects/%d/issues", project.ProjectID)
	records, err := g.client.ListPaginated(ctx, path, params)
	if err != nil {
		return fmt.Errorf("fetch issues for project %s: %w", project.PathWithNamespace, err)
	}

	for _, raw := range records {
		issue, err := mapIssue(raw, project)
		if err != nil {
			logger.Warn("gitlab: skipping malformed issue record in %s: %v", project.PathWithNamespace, err)
			continue
		}

		if err := emit(issue); err != nil {
			return err
		}

		if err := g.syncNotes(ctx, project, issue, emit); err != nil {
			return err
		}
	}

	return nil
}

// syncNotes emits the human notes of one issue. System notes are dropped.
// Note fetch failures are logged and skipped; the issue itself has already
// been emitted.
func (g *generator) syncNotes(ctx context.Context, project *ProjectEntity, issue *IssueEntity, emit func(domain.Entity) error) error {
	path := fmt.Sprintf("/projects/%d/issues/%d/notes", project.ProjectID, issue.IID)
	records, err := g.client.ListPaginated(ctx, path, nil)
	if err != nil {
		if isCancelled(err) {
			return err
		}
		logger.Warn("gitlab: notes for issue %s#%d unavailable: %v", project.PathWithNamespace, issue.IID, err)
		return nil
	}

	for _, raw := range records {
		if isSystemNote(raw) {
			continue
		}
		note, err := mapNote(raw, issue)
		if err != nil {
			logger.Warn("gitlab: skipping malformed note on issue %s#%d: %v", project.PathWithNamespace, issue.IID, err)
			continue
		}
		if err := emit(note); err != nil {
			return err
		}
	}

	return nil
}

// syncWiki emits every wiki page of a project. A 404 from the wikis
// endpoint means the wiki feature is disabled for the project; that is a
// normal zero-page outcome.
func (g *generator) syncWiki(ctx context.Context, project *ProjectEntity, emit func(domain.Entity) error) error {
	params := url.Values{}
	params.Set("with_content", "1")

	path := fmt.Sprintf("/projects/%d/wikis", project.ProjectID)
	records, err := g.client.ListPaginated(ctx, path, params)
	if err != nil {
		if rest.IsNotFound(err) {
			logger.Debug("gitlab: project %s has no wiki", project.PathWithNamespace)
			return nil
		}
		if isCancelled(err) {
			return err
		}
		logger.Warn("gitlab: wiki for %s unavailable: %v", project.PathWithNamespace, err)
		return nil
	}

	for _, raw := range records {
		page, err := mapWikiPage(raw, project)
		if err != nil {
			logger.Warn("gitlab: skipping malformed wiki page in %s: %v", project.PathWithNamespace, err)
			continue
		}
		if err := emit(page); err != nil {
			return err
		}
	}

	return nil
}

// syncFiles emits every blob of the project's repository tree at the
// configured branch, falling back to the project default branch. An empty
// repository answers 404; that is a normal zero-file outcome.
func (g *generator) syncFiles(ctx context.Context, project *ProjectEntity, emit func(domain.Entity) error) error {
	branch := g.cfg.Branch
	if branch == "" {
		branch = project.DefaultBranch
	}
	if branch == "" {
		logger.Debug("gitlab: project %s has no default branch, skipping files", project.PathWithNamespace)
		return nil
	}

	params := url.Values{}
	params.Set("recursive", "true")
	params.Set("ref", branch)

	path := fmt.Sprintf("/projects/%d/repository/tree", project.ProjectID)
	records, err := g.client.ListPaginated(ctx, path, params)
	if err != nil {
		if rest.IsNotFound(err) {
			logger.Debug("gitlab: project %s has no repository tree at %s", project.PathWithNamespace, branch)
			return nil
		}
		if isCancelled(err) {
			return err
		}
		logger.Warn("gitlab: repository tree for %s unavailable: %v", project.PathWithNamespace, err)
		return nil
	}

	for _, raw := range records {
		if !isBlob(raw) {
			continue
		}
		file, err := mapFile(raw, project, branch, g.cfg)
		if err != nil {
			logger.Warn("gitlab: skipping malformed tree record in %s: %v", project.PathWithNamespace, err)
			continue
		}
		if err := emit(file); err != nil {
			return err
		}
	}

	return nil
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
