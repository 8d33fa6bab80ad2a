package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/seekauth/internal/client/cli"
	"github.com/dmitrijs2005/seekauth/internal/client/client"
	"github.com/dmitrijs2005/seekauth/internal/client/config"
	"github.com/dmitrijs2005/seekauth/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	app := cli.NewApp(cfg, client.NewHTTPClient(cfg.ServerURL, cfg.HeaderName, cfg.RequestTimeout), logger)
	os.Exit(app.Run(context.Background(), os.Stdin, os.Stdout, os.Stderr))
}
