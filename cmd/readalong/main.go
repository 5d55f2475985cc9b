package main

import (
	"context"
	"log"

	"github.com/dalemusser/readalong/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
	"github.com/joho/godotenv"
)

func main() {
	// Local overrides (GOOGLE_API_KEY and friends); absent in deployments.
	_ = godotenv.Load(".env.local")

	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
