package config

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/sijil-app/sijil/internal/flagx"
	"github.com/sijil-app/sijil/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON
// configuration files. It uses timex.Duration for the validity field so
// both "12h" strings and integer nanoseconds parse. Fields are pointers
// so that a partial file overlays only the keys it names; anything
// absent keeps the value an earlier layer set.
type JsonConfig struct {
	HTTPAddr        *string         `json:"http_addr"`
	DatabaseDSN     *string         `json:"database_dsn"`
	RedisAddr       *string         `json:"redis_addr"`
	SecretKey       *string         `json:"secret_key"`
	SessionValidity *timex.Duration `json:"session_validity"`
	AllowedOrigins  *string         `json:"allowed_origins"`
	SeedOnStart     *bool           `json:"seed_on_start"`
}

// jsonConfigPath extracts the config file path given via -c or -config.
// Only these two flags are parsed; everything else is ignored, so the
// main flag set stays unaffected. Returns "" when neither is set.
func jsonConfigPath() string {
	var path string

	args := flagx.FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(args)

	return path
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When neither flag is set no
// file is loaded. An unreadable or invalid file panics: a config file that
// was asked for but cannot be used is a startup error, not a fallback.
func parseJson(config *Config) {

	jsonConfigFile := jsonConfigPath()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.HTTPAddr != nil {
		config.HTTPAddr = *c.HTTPAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.RedisAddr != nil {
		config.RedisAddr = *c.RedisAddr
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.SessionValidity != nil {
		config.SessionValidity = time.Duration(c.SessionValidity.Duration)
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = *c.AllowedOrigins
	}
	if c.SeedOnStart != nil {
		config.SeedOnStart = *c.SeedOnStart
	}
}
