package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/seekauth/internal/client/client"
	"github.com/dmitrijs2005/seekauth/internal/client/config"
	"github.com/dmitrijs2005/seekauth/internal/client/machineid"
	"github.com/dmitrijs2005/seekauth/internal/inputx"
	"github.com/dmitrijs2005/seekauth/internal/logging"
)

// Exit codes of the client.
const (
	ExitOK      = 0
	ExitDenied  = 1
	ExitFailure = 2
)

type App struct {
	config *config.Config
	client client.Client
	logger logging.Logger
}

func NewApp(c *config.Config, cl client.Client, l logging.Logger) *App {
	return &App{config: c, client: cl, logger: l.With("module", "client")}
}

// Run performs one check and returns the process exit code.
func (a *App) Run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) int {
	in := inputx.NewReader(stdin, stderr)

	username, err := in.Line("Username: ")
	if err != nil {
		fmt.Fprintf(stderr, "error reading username: %v\n", describe(err))
		return ExitFailure
	}
	password, err := in.Secret("Password: ")
	if err != nil {
		fmt.Fprintf(stderr, "error reading password: %v\n", describe(err))
		return ExitFailure
	}
	if err := in.End(); err != nil {
		fmt.Fprintf(stderr, "error reading input: %v\n", err)
		return ExitFailure
	}

	machineID, err := machineid.LoadOrCreate(a.config.MachineIDFile)
	if err != nil {
		fmt.Fprintf(stderr, "error loading machine id: %v\n", err)
		return ExitFailure
	}
	a.logger.Debug(ctx, "sending check", "url", a.config.ServerURL, "username", username, "machine_id", machineID)

	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	resp, err := a.client.Check(ctx, username, password, machineID)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitFailure
	}

	fmt.Fprintln(stdout, resp.Body)
	if !resp.OK() {
		a.logger.Debug(ctx, "check rejected", "status", resp.StatusCode)
		return ExitDenied
	}
	return ExitOK
}

func describe(err error) error {
	if errors.Is(err, io.EOF) {
		return errors.New("unexpected end of input")
	}
	return err
}
