// Package migrations содержит SQL-миграции схемы БД, зашитые в бинарь.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
