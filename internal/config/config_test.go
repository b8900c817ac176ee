package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "storefront.db", cfg.DatabaseDSN)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.False(t, cfg.AuthRequired)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_DSN", "host=localhost dbname=shop")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.True(t, cfg.AuthRequired)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT: \":7000\"\nLOG_LEVEL: debug\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.AppPort)
	assert.Equal(t, "debug", cfg.LogLevel)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"driver", "DATABASE_DRIVER", "mysql"},
		{"log level", "LOG_LEVEL", "loud"},
		{"shutdown timeout", "SHUTDOWN_TIMEOUT", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.Load("")
			assert.Error(t, err)
		})
	}
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	cfg, err := config.Load("")
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
