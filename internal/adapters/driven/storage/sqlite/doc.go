// Package sqlite provides the SQLite-backed metadata store: source
// definitions and the per-run sync ledger. Schema changes ship as embedded
// SQL migrations applied on open.
package sqlite
