package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/seekauth/internal/common"
	"github.com/dmitrijs2005/seekauth/internal/flagx"
)

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerURL: full URL of the check endpoint.
//   - MachineIDFile: where the per-host machine id is kept.
//   - HeaderName: auth header expected by the server.
//   - RequestTimeout: overall deadline of the check request.
//   - LogLevel: diagnostics written to stderr.
type Config struct {
	ServerURL      string
	MachineIDFile  string
	HeaderName     string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000" + common.CheckPath
	c.MachineIDFile = ".machine_id"
	c.HeaderName = common.AuthHeaderName
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present), command-line flags and finally the first
// positional argument. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	parsePositional(cfg)
	return cfg
}

func parsePositional(cfg *Config) {
	if args := flagx.Positional(os.Args[1:], ValueFlags); len(args) > 0 {
		cfg.ServerURL = args[0]
	}
}
