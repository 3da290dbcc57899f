package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrNegativeBalance = errors.New("negative balance")

// Balances holds one entry per supported currency.
type Balances map[Currency]decimal.Decimal

// ZeroBalances returns balances with every currency at zero.
func ZeroBalances() Balances {
	b := make(Balances, len(Currencies))
	for _, c := range Currencies {
		b[c] = decimal.Zero
	}
	return b
}

// NewBalances builds Balances from a server wallets map. Missing currencies
// are zero; unknown codes are ignored; negative amounts are rejected.
func NewBalances(raw map[string]decimal.Decimal) (Balances, error) {
	b := ZeroBalances()
	for code, amount := range raw {
		c := Currency(code)
		if !c.Valid() {
			continue
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: %s %s", ErrNegativeBalance, code, amount)
		}
		b[c] = amount
	}
	return b, nil
}

// Get returns the balance for c, zero when absent.
func (b Balances) Get(c Currency) decimal.Decimal {
	if v, ok := b[c]; ok {
		return v
	}
	return decimal.Zero
}

func (b Balances) Clone() Balances {
	out := make(Balances, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
