package config

import "time"

// Config holds runtime settings for the wallet client.
type Config struct {
	ServerEndpointURL string
	RequestTimeout    time.Duration
	DataDir           string
	LogLevel          string

	// Rates maps currency code to its value in the reference currency.
	Rates map[string]float64
}

// DefaultRates is the built-in demo rate table.
func DefaultRates() map[string]float64 {
	return map[string]float64{
		"RUB":  1,
		"USDT": 92.4,
		"BTC":  8320000,
		"ETH":  280000,
	}
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8080/auth"
	c.RequestTimeout = 10 * time.Second
	c.DataDir = ".peerwallet"
	c.LogLevel = "info"
	c.Rates = DefaultRates()
}

// LoadConfig builds a Config from defaults, the JSON file and flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
