package main

import (
	"context"
	"log"

	"github.com/akazarov/authgate/internal/cli"
	"github.com/akazarov/authgate/internal/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)
}
