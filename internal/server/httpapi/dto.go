package httpapi

import (
	"encoding/json"

	"github.com/dmitrijs2005/peerwallet/internal/server/models"
	"github.com/dmitrijs2005/peerwallet/internal/server/services"
)

// DateLayout formats transaction dates in profile replies.
const DateLayout = "02 Jan, 15:04"

type actionRequest struct {
	Action   string `json:"action"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Verified bool   `json:"verified"`
}

type authResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type transactionDTO struct {
	ID       int64       `json:"id"`
	Type     string      `json:"type"`
	Currency string      `json:"currency"`
	Amount   json.Number `json:"amount"`
	Status   string      `json:"status"`
	Date     string      `json:"date"`
	FromName string      `json:"from_name"`
	ToName   string      `json:"to_name"`
}

type meResponse struct {
	User         userDTO                `json:"user"`
	Wallets      map[string]json.Number `json:"wallets"`
	Transactions []transactionDTO       `json:"transactions"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

func newUserDTO(u *models.User) userDTO {
	return userDTO{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
		Verified: u.Verified,
	}
}

// newMeResponse renders amounts as plain JSON numbers.
func newMeResponse(p *services.Profile) meResponse {
	resp := meResponse{
		User:         newUserDTO(p.User),
		Wallets:      make(map[string]json.Number, len(p.Wallets)),
		Transactions: make([]transactionDTO, 0, len(p.Transactions)),
	}
	for _, w := range p.Wallets {
		resp.Wallets[w.Currency] = json.Number(w.Balance.String())
	}
	for _, t := range p.Transactions {
		resp.Transactions = append(resp.Transactions, transactionDTO{
			ID:       t.ID,
			Type:     t.TypeFor(p.User.ID),
			Currency: t.Currency,
			Amount:   json.Number(t.Amount.String()),
			Status:   t.Status,
			Date:     t.CreatedAt.Format(DateLayout),
			FromName: t.FromName,
			ToName:   t.ToName,
		})
	}
	return resp
}
