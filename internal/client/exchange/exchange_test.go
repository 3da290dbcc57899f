package exchange

import (
	"testing"

	"github.com/dmitrijs2005/peerwallet/internal/client/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoRates() map[string]float64 {
	return map[string]float64{"RUB": 1, "USDT": 92.4, "BTC": 8320000, "ETH": 280000}
}

func demoTable(t *testing.T) *RateTable {
	t.Helper()
	rt, err := NewRateTable(demoRates())
	require.NoError(t, err)
	return rt
}

func TestNewRateTable_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m map[string]float64)
		wantErr error
	}{
		{name: "ok", mutate: func(map[string]float64) {}},
		{name: "lowercase codes", mutate: func(m map[string]float64) { m["usdt"] = m["USDT"]; delete(m, "USDT") }},
		{name: "missing", mutate: func(m map[string]float64) { delete(m, "ETH") }, wantErr: ErrMissingRate},
		{name: "zero", mutate: func(m map[string]float64) { m["BTC"] = 0 }, wantErr: ErrNonPositiveRate},
		{name: "negative", mutate: func(m map[string]float64) { m["USDT"] = -1 }, wantErr: ErrNonPositiveRate},
		{name: "reference not 1", mutate: func(m map[string]float64) { m["RUB"] = 2 }, wantErr: ErrReferenceRate},
		{name: "unknown code", mutate: func(m map[string]float64) { m["EUR"] = 100 }, wantErr: models.ErrUnknownCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := demoRates()
			tt.mutate(raw)
			_, err := NewRateTable(raw)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConvert_Scenarios(t *testing.T) {
	rt := demoTable(t)

	tests := []struct {
		amount   string
		from, to models.Currency
		want     string
	}{
		{"15000", models.RUB, models.USDT, "162.34"},
		{"1", models.RUB, models.BTC, "0.000000"},
		{"1", models.BTC, models.RUB, "8320000.00"},
		{"1", models.BTC, models.ETH, "29.7143"},
		{"100", models.USDT, models.USDT, "100.00"},
		{"0.5", models.ETH, models.USDT, "1515.15"},
		{" 2 ", models.USDT, models.RUB, "184.80"},
		{"", models.RUB, models.USDT, ""},
		{"abc", models.RUB, models.USDT, ""},
		{"-5", models.RUB, models.USDT, "-0.05"},
		{"-1", models.BTC, models.ETH, "-29.7143"},
		{"1,5", models.RUB, models.USDT, ""},
	}

	for _, tt := range tests {
		t.Run(tt.amount+" "+tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, rt.Convert(tt.amount, tt.from, tt.to))
		})
	}
}

func TestConvert_MatchesFormulaForAllPairs(t *testing.T) {
	rt := demoTable(t)
	amounts := []string{"1", "0.01", "250", "123456.789"}

	for _, from := range models.Currencies {
		for _, to := range models.Currencies {
			for _, a := range amounts {
				d := decimal.RequireFromString(a)
				want := d.Mul(rt.Rate(from)).Div(rt.Rate(to)).StringFixed(to.AmountPrecision())
				assert.Equal(t, want, rt.Convert(a, from, to), "%s %s->%s", a, from, to)
			}
		}
	}
}

func TestImpliedRate(t *testing.T) {
	rt := demoTable(t)

	assert.Equal(t, "0.01", rt.ImpliedRate(models.RUB, models.USDT))
	assert.Equal(t, "0.00000012", rt.ImpliedRate(models.RUB, models.BTC))
	assert.Equal(t, "0.000330", rt.ImpliedRate(models.USDT, models.ETH))
	assert.Equal(t, "92.40", rt.ImpliedRate(models.USDT, models.RUB))
}

func TestConverter_Swap(t *testing.T) {
	c := NewConverter()
	assert.Equal(t, models.RUB, c.From)
	assert.Equal(t, models.USDT, c.To)

	c.Amount = "15000"
	c.Swap()
	assert.Equal(t, models.USDT, c.From)
	assert.Equal(t, models.RUB, c.To)
	assert.Empty(t, c.Amount)

	c.Amount = "3"
	c.Swap()
	assert.Equal(t, NewConverter(), c, "two swaps restore the pair and clear the amount")
}

func TestConverter_Display(t *testing.T) {
	rt := demoTable(t)
	c := NewConverter()

	assert.Equal(t, "", c.Result(rt))
	assert.Equal(t, Placeholder, c.Display(rt))

	c.Amount = "15000"
	assert.Equal(t, "162.34", c.Display(rt))
	assert.Equal(t, "1 RUB = 0.01 USDT", c.RateLine(rt))
}

func TestTotal(t *testing.T) {
	rt := demoTable(t)
	b := models.ZeroBalances()
	b[models.RUB] = decimal.NewFromInt(1000)
	b[models.USDT] = decimal.NewFromInt(10)
	b[models.BTC] = decimal.RequireFromString("0.001")

	got := rt.Total(b, models.RUB)
	assert.Equal(t, "10244.00", got.StringFixed(2))
	assert.True(t, rt.Total(models.ZeroBalances(), models.USDT).IsZero())
}

func TestParseAmount_SendFormRejectsNegatives(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want string
	}{
		{"250", true, "250"},
		{" 0.5 ", true, "0.5"},
		{"0", true, "0"},
		{"-5", false, "0"},
		{"", false, "0"},
		{"1,5", false, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, ok := ParseAmount(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, d.String())
		})
	}
}
