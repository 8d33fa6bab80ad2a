package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/seekauth/internal/flagx"
)

// ValueFlags lists every value-taking flag of the client, config-file flags
// included.
var ValueFlags = []string{"-u", "-f", "-H", "-w", "-l", "-c", "-config"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   check endpoint URL
//	-f string   machine id file
//	-H string   auth header name
//	-w int      request timeout in seconds
//	-l string   log level
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-f", "-H", "-w", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "u", cfg.ServerURL, "check endpoint URL")
	fs.StringVar(&cfg.MachineIDFile, "f", cfg.MachineIDFile, "machine id file")
	fs.StringVar(&cfg.HeaderName, "H", cfg.HeaderName, "auth header name")
	timeout := fs.Int("w", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
