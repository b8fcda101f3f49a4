package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "cvboost", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadBytes())
	assert.Equal(t, "inbox.submission.dispatch", cfg.RabbitMQ.DispatchQueue)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_SHUTDOWN_TIMEOUT_SECONDS", "30")
	t.Setenv("WORKFLOW_BASE_URL", "https://workflows.internal/webhook")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout())
	assert.Equal(t, "https://workflows.internal/webhook", cfg.Workflow.BaseURL)
}

func TestShutdownTimeoutFallback(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.ShutdownTimeoutSeconds = 0
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
}

func TestMySQLDSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.MySQL.User = "svc"
	cfg.MySQL.Password = "pw"
	cfg.MySQL.Host = "db"
	cfg.MySQL.Port = 3307
	cfg.MySQL.DB = "cvboost"
	cfg.MySQL.Params = "parseTime=true"

	assert.Equal(t, "svc:pw@tcp(db:3307)/cvboost?parseTime=true", cfg.MySQLDSN())
}
