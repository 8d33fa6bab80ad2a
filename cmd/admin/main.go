package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/seekauth/internal/flagx"
	"github.com/dmitrijs2005/seekauth/internal/logging"
	"github.com/dmitrijs2005/seekauth/internal/server"
	"github.com/dmitrijs2005/seekauth/internal/server/admin"
	"github.com/dmitrijs2005/seekauth/internal/server/config"
	"github.com/dmitrijs2005/seekauth/internal/server/repositories/repomanager"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return admin.ExitUsage
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return admin.ExitUsage
	}

	repomanager.SetLogger(logger)
	s, db, err := server.OpenStore(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return admin.ExitFailure
	}
	defer db.Close()

	args := flagx.Positional(os.Args[1:], config.ValueFlags)
	return admin.Run(ctx, admin.NewService(s, logger), args, os.Stdin, os.Stdout, os.Stderr)
}
