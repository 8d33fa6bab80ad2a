package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseFile_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads from json", func(t *testing.T) {
		path := writeTemp(t, "cfg.json", `{
			"listen_addr": "www.example:9000",
			"database_driver": "postgres",
			"database_dsn": "postgres://localhost/auth",
			"header_name": "X-Seek",
			"check_path": "/v1/check",
			"hash_algorithm": "argon2id",
			"bcrypt_cost": 11,
			"metrics_addr": ":9100",
			"log_level": "warn",
			"read_header_timeout": "3s",
			"shutdown_timeout": 2000000000
		}`)
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		parseFile(cfg)

		assert.Equal(t, "www.example:9000", cfg.ListenAddr)
		assert.Equal(t, "postgres", cfg.DatabaseDriver)
		assert.Equal(t, "postgres://localhost/auth", cfg.DatabaseDSN)
		assert.Equal(t, "X-Seek", cfg.HeaderName)
		assert.Equal(t, "/v1/check", cfg.CheckPath)
		assert.Equal(t, "argon2id", cfg.HashAlgorithm)
		assert.Equal(t, 11, cfg.BcryptCost)
		assert.Equal(t, ":9100", cfg.MetricsAddr)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 3*time.Second, cfg.ReadHeaderTimeout)
		assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("loads from yaml", func(t *testing.T) {
		path := writeTemp(t, "cfg.yaml", "database_dsn: /var/lib/seekauth/auth.db\nshutdown_timeout: 1m\n")
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "/var/lib/seekauth/auth.db", cfg.DatabaseDSN)
		assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
		assert.Equal(t, ":5000", cfg.ListenAddr, "absent keys keep defaults")
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{ListenAddr: "defaults:1234", BcryptCost: 4}
		parseFile(cfg)

		assert.Equal(t, "defaults:1234", cfg.ListenAddr)
		assert.Equal(t, 4, cfg.BcryptCost)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := writeTemp(t, "bad.json", `{ this is not valid json`)
		os.Args = []string{"testbin", "-config", bad}
		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "nope.json")}
		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
