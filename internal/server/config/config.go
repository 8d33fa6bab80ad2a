// Package config handles configuration for the seekauth server and the admin
// CLI, including defaults, a JSON or YAML file overlay, and command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/seekauth/internal/common"
)

// Supported values for DatabaseDriver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds runtime settings for the server.
//
// Fields:
//   - ListenAddr: bind address of the check endpoint.
//   - DatabaseDriver / DatabaseDSN: credential store backend (sqlite file path or pgx DSN).
//   - HeaderName / CheckPath: wire contract with the client.
//   - HashAlgorithm / BcryptCost: password hashing for new and updated passwords.
//   - MetricsAddr: optional Prometheus listener, empty disables it.
//   - LogLevel: debug, info, warn or error.
//   - ReadHeaderTimeout / ShutdownTimeout: HTTP server limits.
type Config struct {
	ListenAddr        string
	DatabaseDriver    string
	DatabaseDSN       string
	HeaderName        string
	CheckPath         string
	HashAlgorithm     string
	BcryptCost        int
	MetricsAddr       string
	LogLevel          string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":5000"
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "auth.db"
	c.HeaderName = common.AuthHeaderName
	c.CheckPath = common.CheckPath
	c.HashAlgorithm = "bcrypt"
	c.BcryptCost = 12
	c.MetricsAddr = ""
	c.LogLevel = "info"
	c.ReadHeaderTimeout = 10 * time.Second
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: unknown database driver %q", common.ErrorValidation, c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("%w: database DSN is empty", common.ErrorValidation)
	}
	if c.HeaderName == "" {
		return fmt.Errorf("%w: header name is empty", common.ErrorValidation)
	}
	if !strings.HasPrefix(c.CheckPath, "/") {
		return fmt.Errorf("%w: check path %q must start with /", common.ErrorValidation, c.CheckPath)
	}
	return nil
}
