package client

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/peerwallet/internal/client/models"
	"github.com/shopspring/decimal"
)

type Action string

const (
	ActionLogin    Action = "login"
	ActionRegister Action = "register"
	ActionMe       Action = "me"
	ActionLogout   Action = "logout"
)

type Client interface {
	// Call posts one action and returns the normalized body and HTTP status.
	// A non-200 status is not an error.
	Call(ctx context.Context, action Action, payload map[string]any, token string) (json.RawMessage, int, error)

	Login(ctx context.Context, email, password string) (string, models.User, error)
	Register(ctx context.Context, r Registration) (string, models.User, error)
	Me(ctx context.Context, token string) (models.Profile, error)
	Logout(ctx context.Context, token string) error
}

type Registration struct {
	Name     string
	Username string
	Email    string
	Password string
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type meResponse struct {
	User         *models.User               `json:"user"`
	Wallets      map[string]decimal.Decimal `json:"wallets"`
	Transactions []models.Transaction       `json:"transactions"`
}

type errorResponse struct {
	Error string `json:"error"`
}
