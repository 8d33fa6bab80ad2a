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

// FileConfig is a DTO used exclusively for file decoding. Absent keys leave
// the corresponding Config field alone.
type FileConfig struct {
	ServerURL      *string         `json:"server_url" yaml:"server_url"`
	MachineIDFile  *string         `json:"machine_id_file" yaml:"machine_id_file"`
	HeaderName     *string         `json:"header_name" yaml:"header_name"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays Config with values from the file named by -c/-config.
// .yaml and .yml files are YAML, anything else JSON. Panics on read or
// decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	if fc.ServerURL != nil {
		cfg.ServerURL = *fc.ServerURL
	}
	if fc.MachineIDFile != nil {
		cfg.MachineIDFile = *fc.MachineIDFile
	}
	if fc.HeaderName != nil {
		cfg.HeaderName = *fc.HeaderName
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
}
