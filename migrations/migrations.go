// Package migrations embeds the SQL schema migrations for each storage
// driver. Files follow the NNN_name.sql convention consumed by
// internal/migration.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
