// Package migrations embeds the versioned SQL files applied by
// cmd/wildcatter-migrate. Files are named NNNN_description.sql and
// applied in lexical order inside a single transaction per file.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
