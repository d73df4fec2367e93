package config

import (
	"flag"
	"os"
	"time"

	"github.com/sijil-app/sijil/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   document store DSN (empty = in-memory)
//	-r string   redis address (host:port)
//	-s string   session signing secret
//	-t int      session validity, minutes
//	-o string   allowed CORS origins, comma-separated
//	-seed       seed default users and sample records on start
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-s", "-t", "-o", "-seed"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "document store DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.AllowedOrigins, "o", config.AllowedOrigins, "allowed CORS origins")
	fs.BoolVar(&config.SeedOnStart, "seed", config.SeedOnStart, "seed default data on start")

	sessionValidity := fs.Int("t", int(config.SessionValidity.Minutes()), "session_validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidity = time.Duration(*sessionValidity) * time.Minute
}
