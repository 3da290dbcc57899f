// Package users stores wallet accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/peerwallet/internal/server/models"
)

// Repository persists users. Create fails with common.ErrorAlreadyExists when
// the email or username is taken; lookups return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Exists(ctx context.Context, email, username string) (bool, error)
}
