package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("SIJIL_HTTP_ADDR", ":9191")
	t.Setenv("SIJIL_DATABASE_DSN", "postgres://u:p@localhost/sijil")
	t.Setenv("SIJIL_SESSION_VALIDITY_MINUTES", "90")
	t.Setenv("SIJIL_SEED_ON_START", "true")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9191", cfg.HTTPAddr)
	assert.Equal(t, "postgres://u:p@localhost/sijil", cfg.DatabaseDSN)
	assert.Equal(t, 90*time.Minute, cfg.SessionValidity)
	assert.True(t, cfg.SeedOnStart)
}

func TestParseEnvIgnoresInvalid(t *testing.T) {
	t.Setenv("SIJIL_SESSION_VALIDITY_MINUTES", "soon")
	t.Setenv("SIJIL_SEED_ON_START", "maybe")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 12*time.Hour, cfg.SessionValidity)
	assert.False(t, cfg.SeedOnStart)
}
