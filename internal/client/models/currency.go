// Package models defines the client-side wallet data: currencies, users,
// balances, transactions and friends.
package models

import (
	"errors"
	"fmt"
	"strings"
)

type Currency string

const (
	RUB  Currency = "RUB"
	USDT Currency = "USDT"
	BTC  Currency = "BTC"
	ETH  Currency = "ETH"
)

// Reference is the currency every rate is quoted in.
const Reference = RUB

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{RUB, USDT, BTC, ETH}

var ErrUnknownCurrency = errors.New("unknown currency")

// ParseCurrency accepts a currency code in any case.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
	return c, nil
}

func (c Currency) Valid() bool {
	switch c {
	case RUB, USDT, BTC, ETH:
		return true
	}
	return false
}

func (c Currency) String() string { return string(c) }

func (c Currency) Symbol() string {
	switch c {
	case RUB:
		return "₽"
	case USDT:
		return "$"
	case BTC:
		return "₿"
	case ETH:
		return "Ξ"
	}
	return string(c)
}

// Title is the human name shown on the wallet screen.
func (c Currency) Title() string {
	switch c {
	case RUB:
		return "Российский рубль"
	case USDT:
		return "Tether USD"
	case BTC:
		return "Bitcoin"
	case ETH:
		return "Ethereum"
	}
	return string(c)
}

// AmountPrecision is the number of fractional digits used for amounts.
func (c Currency) AmountPrecision() int32 {
	switch c {
	case BTC:
		return 6
	case ETH:
		return 4
	}
	return 2
}

// RatePrecision is the number of fractional digits used for an implied rate
// whose target is c.
func (c Currency) RatePrecision() int32 {
	switch c {
	case BTC:
		return 8
	case ETH:
		return 6
	}
	return 2
}
