// Package wallets stores per-currency balances.
package wallets

import (
	"context"

	"github.com/dmitrijs2005/peerwallet/internal/server/models"
)

type Repository interface {
	// Open creates a zero balance for every currency in currencies.
	Open(ctx context.Context, userID int64, currencies []string) error
	List(ctx context.Context, userID int64) ([]models.Wallet, error)
}
