package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/seekauth/internal/flagx"
	"github.com/dmitrijs2005/seekauth/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Pointer fields keep
// keys absent from the file from clobbering defaults.
type FileConfig struct {
	ListenAddr        *string         `json:"listen_addr" yaml:"listen_addr"`
	DatabaseDriver    *string         `json:"database_driver" yaml:"database_driver"`
	DatabaseDSN       *string         `json:"database_dsn" yaml:"database_dsn"`
	HeaderName        *string         `json:"header_name" yaml:"header_name"`
	CheckPath         *string         `json:"check_path" yaml:"check_path"`
	HashAlgorithm     *string         `json:"hash_algorithm" yaml:"hash_algorithm"`
	BcryptCost        *int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	MetricsAddr       *string         `json:"metrics_addr" yaml:"metrics_addr"`
	LogLevel          *string         `json:"log_level" yaml:"log_level"`
	ReadHeaderTimeout *timex.Duration `json:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   *timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// parseFile overlays values from the file named by -c/-config. Files ending
// in .yaml or .yml are decoded as YAML, anything else as JSON. An unreadable
// or undecodable file panics: the process cannot start with a config the
// operator did not intend.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	b, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, fc)
	default:
		err = json.Unmarshal(b, fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}

func (fc *FileConfig) apply(c *Config) {
	setString(&c.ListenAddr, fc.ListenAddr)
	setString(&c.DatabaseDriver, fc.DatabaseDriver)
	setString(&c.DatabaseDSN, fc.DatabaseDSN)
	setString(&c.HeaderName, fc.HeaderName)
	setString(&c.CheckPath, fc.CheckPath)
	setString(&c.HashAlgorithm, fc.HashAlgorithm)
	setString(&c.MetricsAddr, fc.MetricsAddr)
	setString(&c.LogLevel, fc.LogLevel)
	if fc.BcryptCost != nil {
		c.BcryptCost = *fc.BcryptCost
	}
	if fc.ReadHeaderTimeout != nil {
		c.ReadHeaderTimeout = fc.ReadHeaderTimeout.Duration
	}
	if fc.ShutdownTimeout != nil {
		c.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
