//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
logger:
  log_level: debug
  log_type: console
database:
  type: sqlite
  dsn: ":memory:"
key_connector:
  cloud_provider: local
  directory: /tmp/rsa-oaep-keys
crypto:
  default_key_size: 3072
  label: archive
  export_primes: false
  max_generation_attempts: 5
server:
  port: 9090
  allowed_origins:
    - http://localhost:3000
  max_upload_size: 1048576
  shutdown_timeout: 5s
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rsa-oaep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestInitializeAppConfig_FromFile(t *testing.T) {
	cfg, err := InitializeAppConfig(writeConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, LogLevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.Equal(t, ":memory:", cfg.Database.DSN)
	assert.Equal(t, "/tmp/rsa-oaep-keys", cfg.KeyConnector.Directory)
	assert.Equal(t, 3072, cfg.Crypto.DefaultKeySize)
	assert.Equal(t, "archive", cfg.Crypto.Label)
	assert.False(t, cfg.Crypto.ExportPrimes)
	assert.Equal(t, 5, cfg.Crypto.MaxGenerationAttempts)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
}

func TestInitializeAppConfig_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("RSA_OAEP_CRYPTO_DEFAULT_KEY_SIZE", "4096")
	t.Setenv("RSA_OAEP_LOGGER_LOG_LEVEL", "error")

	cfg, err := InitializeAppConfig(writeConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, 4096, cfg.Crypto.DefaultKeySize)
	assert.Equal(t, LogLevelError, cfg.Logger.LogLevel)
}

func TestInitializeAppConfig_Defaults(t *testing.T) {
	cfg, err := InitializeAppConfig(writeConfig(t, "logger:\n  log_type: console\n"))
	require.NoError(t, err)

	assert.Equal(t, LogLevelInfo, cfg.Logger.LogLevel)
	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.Equal(t, LocalProvider, cfg.KeyConnector.CloudProvider)
	assert.Equal(t, 2048, cfg.Crypto.DefaultKeySize)
	assert.True(t, cfg.Crypto.ExportPrimes)
	assert.Equal(t, 3, cfg.Crypto.MaxGenerationAttempts)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
}

func TestInitializeAppConfig_InvalidSettings(t *testing.T) {
	_, err := InitializeAppConfig(writeConfig(t, "crypto:\n  default_key_size: 1000\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestInitializeAppConfig_MissingFile(t *testing.T) {
	_, err := InitializeAppConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
