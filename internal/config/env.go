package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from SIJIL_* environment variables.
// The process environment may have been pre-populated from a .env file
// by the caller. Unparsable numeric or boolean values are ignored and
// the previous value kept.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("SIJIL_HTTP_ADDR"); ok {
		config.HTTPAddr = v
	}
	if v, ok := os.LookupEnv("SIJIL_DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SIJIL_REDIS_ADDR"); ok {
		config.RedisAddr = v
	}
	if v, ok := os.LookupEnv("SIJIL_SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("SIJIL_SESSION_VALIDITY_MINUTES"); ok {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.SessionValidity = time.Duration(minutes) * time.Minute
		}
	}
	if v, ok := os.LookupEnv("SIJIL_ALLOWED_ORIGINS"); ok {
		config.AllowedOrigins = v
	}
	if v, ok := os.LookupEnv("SIJIL_SEED_ON_START"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.SeedOnStart = b
		}
	}
}
