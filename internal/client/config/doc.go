// Package config loads runtime configuration for the wallet client.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / -config or the CONFIG env var.
//  3. Command-line flags.
//
// Flags
//
//	-a string   auth endpoint URL
//	-t int      request timeout (seconds)
//	-d string   data directory for the local session database
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work.
// Rates are only configurable from JSON:
//
//	{
//	  "server_endpoint_url": "http://127.0.0.1:8080/auth",
//	  "request_timeout": "10s",
//	  "data_dir": ".peerwallet",
//	  "log_level": "info",
//	  "rates": {"RUB": 1, "USDT": 92.4, "BTC": 8320000, "ETH": 280000}
//	}
package config
