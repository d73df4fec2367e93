// Package config handles configuration for the sijil server,
// including defaults, environment overlay, JSON overlay, and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the record service.
//
// Fields:
//   - HTTPAddr: bind address for the web server.
//   - DatabaseDSN: document store location. Empty selects the in-memory
//     backend, "file.db" / ":memory:" selects sqlite, a postgres:// DSN
//     selects postgres (pgx).
//   - RedisAddr: optional redis host:port for cross-instance snapshot
//     invalidation. Empty disables it.
//   - SecretKey: HMAC secret for signing session cookies (HS256).
//     Do not use the test default in prod.
//   - SessionValidity: lifetime of an issued session cookie.
//   - AllowedOrigins: comma-separated CORS origins for the JSON API.
//   - SeedOnStart: insert the default users/sample records on boot when
//     the users group is empty.
type Config struct {
	HTTPAddr        string
	DatabaseDSN     string
	RedisAddr       string
	SecretKey       string
	SessionValidity time.Duration
	AllowedOrigins  string
	SeedOnStart     bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.DatabaseDSN = ""
	c.RedisAddr = ""
	c.SecretKey = "secretKey"
	c.SessionValidity = 12 * time.Hour
	c.AllowedOrigins = "*"
	c.SeedOnStart = false
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, from an optional JSON file and finally from
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
