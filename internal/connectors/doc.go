// Package connectors contains the data-source connector implementations
// and the infrastructure shared between them.
//
// Each connector lives in its own subpackage (redmine, gitlab) and
// implements the driven.Connector port: it authenticates against the
// source's REST API, pages through its collections, and maps raw JSON
// records into typed entities with breadcrumbs back to their parents.
// The shared rest subpackage provides the authenticated HTTP client,
// retry policy, and rate limiting; this package provides the pull-based
// stream plumbing connectors generate into.
package connectors
