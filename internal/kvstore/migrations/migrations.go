// Package migrations embeds the goose migration scripts for both kvstore
// backends; the per-dialect subdirectory is selected at open time.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
