package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:5000/check", c.ServerURL)
	assert.Equal(t, ".machine_id", c.MachineIDFile)
	assert.Equal(t, "Seek-Custom-Auth", c.HeaderName)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"client"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:5000/check", cfg.ServerURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_PositionalURLWins(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"client", "-u", "http://flag/check", "-f", "/tmp/mid", "http://positional/check"}

	cfg := LoadConfig()

	assert.Equal(t, "http://positional/check", cfg.ServerURL)
	assert.Equal(t, "/tmp/mid", cfg.MachineIDFile)
}
