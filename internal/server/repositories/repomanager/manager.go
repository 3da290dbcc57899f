package repomanager

import (
	"context"

	"github.com/dmitrijs2005/peerwallet/internal/dbx"
	"github.com/dmitrijs2005/peerwallet/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/peerwallet/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/peerwallet/internal/server/repositories/users"
	"github.com/dmitrijs2005/peerwallet/internal/server/repositories/wallets"
)

// RepositoryManager vends repositories bound to a DBTX. Pass DB() for single
// statements, or the tx handed to the WithTx callback for a unit of work.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	DB() dbx.DBTX
	WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Close() error

	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Wallets(db dbx.DBTX) wallets.Repository
	Transactions(db dbx.DBTX) transactions.Repository
}
