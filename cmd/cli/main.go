package main

import (
	"context"
	"log"

	"github.com/igwenababa1/scbvault/internal/cli"
	"github.com/igwenababa1/scbvault/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
