// Package redmine implements the Redmine connector.
//
// The connector authenticates with an API key in the X-Redmine-API-Key
// header and walks the instance depth-first: projects, each project's
// issues, each issue's journals and attachments, then the project's wiki
// pages. Listing endpoints are paged with Redmine's offset/limit scheme;
// journals and attachments come from per-issue detail fetches with an
// include expansion.
//
// Configuration keys:
//
//	base_url               instance URL (required)
//	project_identifiers    comma-separated project slugs to sync (default all)
//	include_closed_issues  sync closed issues too (default false)
//	include_attachments    sync issue attachments (default false)
//	include_wiki_pages     sync project wikis (default true)
package redmine
