package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/seekauth/internal/dbx"
	"github.com/dmitrijs2005/seekauth/internal/server/repositories/accounts"
)

// RepositoryManager vends repositories for one SQL dialect and migrates the
// schema for it.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}
