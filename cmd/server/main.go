package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/sijil-app/sijil/internal/app"
	"github.com/sijil-app/sijil/internal/config"
)

func main() {

	ctx := context.Background()

	// optional .env for local development
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	a, err := app.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	a.Run(ctx)

}
