// AngelaMos | 2026
// migrations.go

// Package migrations embeds the versioned schema for each supported driver.
// Files are named NNN_description.sql and applied in version order.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
