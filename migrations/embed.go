// Package migrations embute os arquivos SQL do esquema do banco
package migrations

import "embed"

// FS contém os arquivos de migração no formato do golang-migrate
//
//go:embed *.sql
var FS embed.FS
