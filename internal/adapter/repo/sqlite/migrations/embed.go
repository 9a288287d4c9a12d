package migrations

import "embed"

// FS contains embedded SQLite migrations for campaign map storage.
//
//go:embed *.sql
var FS embed.FS
