// Package migrations holds the schema of the reader database.
package migrations

import "embed"

// FS holds the numbered up/down SQL files applied by the store on open.
//
//go:embed *.sql
var FS embed.FS
