package repomanager

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/seekauth/internal/logging"
	"github.com/pressly/goose/v3"
)

func init() {
	SetLogger(logging.Nop())
}

// SetLogger routes goose's migration output to l. goose keeps a single
// package-level logger, so this affects every subsequent Open.
func SetLogger(l logging.Logger) {
	goose.SetLogger(&gooseLogger{log: l.With("module", "migrations")})
}

// gooseLogger adapts logging.Logger to goose.Logger.
type gooseLogger struct {
	log logging.Logger
}

func (g *gooseLogger) Printf(format string, v ...any) {
	g.log.Info(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g *gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}
