package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/seekauth/internal/flagx"
)

// ValueFlags lists every value-taking flag understood by the server and the
// admin CLI, including the config-file flags. The admin CLI uses it to
// separate flags from verb arguments.
var ValueFlags = []string{"-a", "-t", "-d", "-H", "-p", "-k", "-b", "-m", "-l", "-c", "-config"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   listen address (e.g. ":5000")
//	-t string   database driver: sqlite or postgres
//	-d string   database DSN (sqlite file path or postgres URL)
//	-H string   auth header name
//	-p string   check endpoint path
//	-k string   hash algorithm: bcrypt or argon2id
//	-b int      bcrypt cost
//	-m string   metrics listen address, empty disables
//	-l string   log level
//
// os.Args is filtered first so positional admin verbs and the -c flag do not
// reach this FlagSet.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-H", "-p", "-k", "-b", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "t", config.DatabaseDriver, "database driver (sqlite|postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.HeaderName, "H", config.HeaderName, "auth header name")
	fs.StringVar(&config.CheckPath, "p", config.CheckPath, "check endpoint path")
	fs.StringVar(&config.HashAlgorithm, "k", config.HashAlgorithm, "password hash algorithm (bcrypt|argon2id)")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "metrics listen address")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
