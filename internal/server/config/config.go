package config

import "time"

// Config holds runtime settings for the wallet server.
//
// An empty DatabaseDSN selects the in-memory store. SecretKey signs session
// tokens; the default is for local development only.
type Config struct {
	EndpointAddr   string
	DatabaseDSN    string
	SecretKey      string
	SessionTTL     time.Duration
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
	LogLevel       string
}

func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.SessionTTL = 30 * 24 * time.Hour
	c.AllowedOrigins = []string{"*"}
	c.RateLimit = 5
	c.RateBurst = 10
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, the environment, the JSON file
// and flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
