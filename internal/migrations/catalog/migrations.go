// Package catalog embeds the PostgreSQL schema of the pricing catalog
// tables written by the seeding tool.
package catalog

import "embed"

//go:embed *.sql
var Migrations embed.FS
