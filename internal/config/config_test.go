package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"authgate"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	setArgs(t)

	cfg := LoadConfig()

	assert.Equal(t, "authgate.db", cfg.DatabaseDSN)
	assert.Equal(t, "secretKey", cfg.SecretKey)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidity)
	assert.Equal(t, 800*time.Millisecond, cfg.SimulatedLatency)
	assert.Equal(t, 200*time.Millisecond, cfg.HealthCheckLatency)
}

func TestLoadConfig_Flags(t *testing.T) {
	setArgs(t, "-d", "other.db", "-s", "topsecret", "-t", "10", "-l", "0")

	cfg := LoadConfig()

	assert.Equal(t, "other.db", cfg.DatabaseDSN)
	assert.Equal(t, "topsecret", cfg.SecretKey)
	assert.Equal(t, 10*time.Minute, cfg.AccessTokenValidity)
	assert.Equal(t, time.Duration(0), cfg.SimulatedLatency)
}

func TestLoadConfig_JSONOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	err := os.WriteFile(path, []byte(`{
		"database_dsn": "json.db",
		"secret_key": "from-json",
		"access_token_validity_minutes": 2,
		"simulated_latency_ms": 5,
		"health_check_latency_ms": 1
	}`), 0o600)
	assert.NoError(t, err)

	setArgs(t, "-c", path)

	cfg := LoadConfig()

	assert.Equal(t, "json.db", cfg.DatabaseDSN)
	assert.Equal(t, "from-json", cfg.SecretKey)
	assert.Equal(t, 2*time.Minute, cfg.AccessTokenValidity)
	assert.Equal(t, 5*time.Millisecond, cfg.SimulatedLatency)
	assert.Equal(t, 1*time.Millisecond, cfg.HealthCheckLatency)
}

func TestLoadConfig_FlagsBeatJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	err := os.WriteFile(path, []byte(`{"database_dsn": "json.db"}`), 0o600)
	assert.NoError(t, err)

	setArgs(t, "-c", path, "-d", "flag.db")

	cfg := LoadConfig()

	assert.Equal(t, "flag.db", cfg.DatabaseDSN)
}
