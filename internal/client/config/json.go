package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/peerwallet/internal/flagx"
	"github.com/dmitrijs2005/peerwallet/internal/timex"
)

// JsonConfig mirrors the JSON file. Zero values leave the corresponding
// Config field untouched.
type JsonConfig struct {
	ServerEndpointURL string             `json:"server_endpoint_url"`
	RequestTimeout    timex.Duration     `json:"request_timeout"`
	DataDir           string             `json:"data_dir"`
	LogLevel          string             `json:"log_level"`
	Rates             map[string]float64 `json:"rates"`
}

// parseJson overlays cfg with the file named by flagx.ConfigPath. It panics
// on read or decode errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointURL != "" {
		cfg.ServerEndpointURL = jc.ServerEndpointURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if len(jc.Rates) > 0 {
		cfg.Rates = jc.Rates
	}
}
