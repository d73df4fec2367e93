// Package migrations embeds the goose migration scripts for the SQL
// document store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
