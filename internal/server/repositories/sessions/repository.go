// Package sessions stores logins. A session is revoked by expiring it.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/peerwallet/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Session) error
	// Find returns common.ErrorNotFound for unknown ids. Expired sessions are
	// returned as is.
	Find(ctx context.Context, id string) (*models.Session, error)
	// Expire moves the session's expiry to at if it is later than at.
	Expire(ctx context.Context, id string, at time.Time) error
}
