// Package exchange holds the static rate table and the currency converter.
// All arithmetic is decimal; display strings use the target currency's
// precision (see models.Currency.AmountPrecision and RatePrecision).
package exchange

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/peerwallet/internal/client/models"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingRate     = errors.New("missing rate")
	ErrNonPositiveRate = errors.New("rate must be positive")
	ErrReferenceRate   = errors.New("reference currency rate must be exactly 1")
)

// RateTable maps each currency to its value in the reference currency. It is
// read-only once built.
type RateTable struct {
	rates map[models.Currency]decimal.Decimal
}

// NewRateTable validates raw and builds a table. Every supported currency must
// be present with a positive rate, and the reference rate must be 1.
func NewRateTable(raw map[string]float64) (*RateTable, error) {
	rates := make(map[models.Currency]decimal.Decimal, len(models.Currencies))
	for code, v := range raw {
		c, err := models.ParseCurrency(code)
		if err != nil {
			return nil, err
		}
		d := decimal.NewFromFloat(v)
		if !d.IsPositive() {
			return nil, fmt.Errorf("%w: %s=%v", ErrNonPositiveRate, c, v)
		}
		rates[c] = d
	}

	for _, c := range models.Currencies {
		if _, ok := rates[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingRate, c)
		}
	}
	if !rates[models.Reference].Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: %s=%s", ErrReferenceRate, models.Reference, rates[models.Reference])
	}

	return &RateTable{rates: rates}, nil
}

func (t *RateTable) Rate(c models.Currency) decimal.Decimal {
	return t.rates[c]
}

// ValueIn expresses amount of from in currency to, unrounded.
func (t *RateTable) ValueIn(amount decimal.Decimal, from, to models.Currency) decimal.Decimal {
	return amount.Mul(t.rates[from]).Div(t.rates[to])
}

// Total sums all balances expressed in currency to, unrounded.
func (t *RateTable) Total(b models.Balances, to models.Currency) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range models.Currencies {
		sum = sum.Add(t.ValueIn(b.Get(c), c, to))
	}
	return sum
}
