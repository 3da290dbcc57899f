package models

import "github.com/shopspring/decimal"

type Direction int

const (
	DirectionOther Direction = iota
	DirectionIn
	DirectionOut
)

const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

type Transaction struct {
	ID       int64           `json:"id"`
	Type     string          `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
	FromName string          `json:"from_name"`
	ToName   string          `json:"to_name"`
	Date     string          `json:"date"`
	Status   string          `json:"status"`
}

func (t Transaction) Direction() Direction {
	switch t.Type {
	case "in":
		return DirectionIn
	case "out":
		return DirectionOut
	}
	return DirectionOther
}

// Sign is "+" for incoming, "-" for outgoing and empty otherwise.
func (t Transaction) Sign() string {
	switch t.Direction() {
	case DirectionIn:
		return "+"
	case DirectionOut:
		return "-"
	}
	return ""
}

// Counterparty is the name on the other side of the transfer.
func (t Transaction) Counterparty() string {
	if t.Direction() == DirectionOut {
		return t.ToName
	}
	return t.FromName
}

func (t Transaction) Pending() bool {
	return t.Status == StatusPending
}
