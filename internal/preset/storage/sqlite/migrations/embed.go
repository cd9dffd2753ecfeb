package migrations

import "embed"

// FS contains embedded SQLite migrations for preset dataset storage.
//
//go:embed *.sql
var FS embed.FS
