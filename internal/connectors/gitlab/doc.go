// Package gitlab implements the GitLab self-hosted connector.
//
// The connector speaks the v4 REST API of a self-hosted instance. Personal
// access tokens go out in the PRIVATE-TOKEN header; OAuth tokens as a
// bearer Authorization header. The walk is depth-first: projects, each
// project's issues, each issue's human notes (system notes are dropped),
// the project wiki, and optionally the repository tree at one branch.
// Listing endpoints are paged with page/per_page and followed through the
// Link header's rel="next" entry.
//
// Configuration keys:
//
//	instance_url           instance URL, https assumed when no scheme (required)
//	project_identifiers    comma-separated path_with_namespace values (default all)
//	branch                 branch for file syncing (default per-project default branch)
//	include_closed_issues  sync closed issues too (default false)
//	include_wiki_pages     sync project wikis (default true)
//	include_files          sync repository files (default false)
package gitlab
