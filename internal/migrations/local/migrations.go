// Package local embeds the schema of the client's SQLite store.
package local

import "embed"

//go:embed *.sql
var Migrations embed.FS
