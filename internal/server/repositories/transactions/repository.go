// Package transactions stores transfer history.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/peerwallet/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	// ListForUser returns up to limit transactions where userID is either
	// side, newest first, with both parties' names filled in.
	ListForUser(ctx context.Context, userID int64, limit int) ([]models.Transaction, error)
}
