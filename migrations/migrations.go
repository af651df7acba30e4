// Package migrations embeds the visitor state schema for each SQL dialect.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var MigrationsFS embed.FS
