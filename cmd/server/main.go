package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/seekauth/internal/logging"
	"github.com/dmitrijs2005/seekauth/internal/server"
	"github.com/dmitrijs2005/seekauth/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
