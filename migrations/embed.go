// Package migrations embeds the SQL migrations applied by cmd/migrate and the
// integration test containers.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
