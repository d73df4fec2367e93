// Command seed loads the default accounts and sample records into the
// configured store. Safe to run repeatedly: it does nothing when any
// user already exists.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/sijil-app/sijil/internal/config"
	"github.com/sijil-app/sijil/internal/logging"
	"github.com/sijil-app/sijil/internal/seed"
	"github.com/sijil-app/sijil/internal/store"
)

func main() {

	ctx := context.Background()

	_ = godotenv.Load()

	cfg := config.LoadConfig()

	logger := logging.NewText(os.Stdout)

	var (
		st  store.Store
		err error
	)
	if cfg.DatabaseDSN == "" {
		log.Println("no database DSN configured; seeding an in-memory store is pointless")
		return
	}
	st, err = store.OpenSQL(ctx, cfg.DatabaseDSN, logger)
	if err != nil {
		log.Printf("store init error: %v", err)
		return
	}
	defer st.Close()

	n, err := seed.Run(ctx, st, logger)
	if err != nil {
		log.Printf("seed error: %v", err)
		return
	}
	log.Printf("seeded %d documents", n)

}
