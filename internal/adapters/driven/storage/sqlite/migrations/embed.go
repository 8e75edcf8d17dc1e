// Package migrations embeds the schema migration files for the metadata
// store.
package migrations

import "embed"

// FS holds the versioned .sql files, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
