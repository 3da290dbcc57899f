package exchange

import (
	"strings"

	"github.com/dmitrijs2005/peerwallet/internal/client/models"
	"github.com/shopspring/decimal"
)

// Placeholder is rendered when there is no conversion result.
const Placeholder = "0"

// parseNumber reads any decimal number, sign included.
func parseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseAmount reads an amount to send. Empty, malformed and negative input is
// rejected.
func ParseAmount(s string) (decimal.Decimal, bool) {
	d, ok := parseNumber(s)
	if !ok || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// Convert returns amount*rate[from]/rate[to] fixed to the precision of to, or
// "" when amount is not a number. Negative amounts convert like any other.
func (t *RateTable) Convert(amount string, from, to models.Currency) string {
	a, ok := parseNumber(amount)
	if !ok {
		return ""
	}
	return t.ValueIn(a, from, to).StringFixed(to.AmountPrecision())
}

// ImpliedRate is the price of one unit of from in to, at rate precision.
func (t *RateTable) ImpliedRate(from, to models.Currency) string {
	return t.rates[from].Div(t.rates[to]).StringFixed(to.RatePrecision())
}

// Converter is the exchange screen's form state.
type Converter struct {
	Amount string
	From   models.Currency
	To     models.Currency
}

func NewConverter() Converter {
	return Converter{From: models.RUB, To: models.USDT}
}

// Swap exchanges From and To and clears Amount.
func (c *Converter) Swap() {
	c.From, c.To = c.To, c.From
	c.Amount = ""
}

// Result is the converted amount, or "" when Amount is not a number.
func (c Converter) Result(t *RateTable) string {
	return t.Convert(c.Amount, c.From, c.To)
}

// Display is Result with the placeholder substituted for an empty result.
func (c Converter) Display(t *RateTable) string {
	if r := c.Result(t); r != "" {
		return r
	}
	return Placeholder
}

func (c Converter) RateLine(t *RateTable) string {
	return "1 " + c.From.String() + " = " + t.ImpliedRate(c.From, c.To) + " " + c.To.String()
}
