// Package models defines server-side data models persisted in the database.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currencies lists the wallet currencies every account is opened with.
var Currencies = []string{"RUB", "USDT", "BTC", "ETH"}

type User struct {
	ID           int64
	Name         string
	Username     string
	Email        string
	PasswordHash []byte
	Salt         []byte
	Avatar       string
	Verified     bool
	CreatedAt    time.Time
}

// Session is a server-side login. The token handed to the client refers to
// it by ID; revoking a session moves ExpiresAt to the revocation time.
type Session struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

type Wallet struct {
	UserID   int64
	Currency string
	Balance  decimal.Decimal
}

// Transaction is a transfer as seen in a user's history. FromName and ToName
// are empty when the corresponding side is outside the system (top-ups,
// withdrawals).
type Transaction struct {
	ID         int64
	Type       string
	Currency   string
	Amount     decimal.Decimal
	Status     string
	FromUserID *int64
	ToUserID   *int64
	FromName   string
	ToName     string
	CreatedAt  time.Time
}

const TypeTransfer = "transfer"

// TypeFor returns the type as seen by userID. Transfers read as "in" for the
// receiver and "out" for the sender; other types are returned unchanged.
func (t *Transaction) TypeFor(userID int64) string {
	if t.Type != TypeTransfer {
		return t.Type
	}
	if t.ToUserID != nil && *t.ToUserID == userID {
		return "in"
	}
	if t.FromUserID != nil && *t.FromUserID == userID {
		return "out"
	}
	return t.Type
}
