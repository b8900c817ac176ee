// Package config loads runtime settings from the environment and an
// optional config file.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"storefront/internal/database"
)

// Config holds every runtime setting.
type Config struct {
	AppPort         string
	DatabaseDriver  string
	DatabaseDSN     string
	RabbitMQURL     string
	AuthRequired    bool
	JWTSecret       string
	TokenTTL        time.Duration
	AdminEmail      string
	AdminPassword   string
	ShutdownTimeout time.Duration
	LogLevel        string
}

// Load reads configuration from environment variables and, when path is
// non-empty, from the given file. Environment variables win.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "storefront.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("AUTH_REQUIRED", false)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("ADMIN_EMAIL", "admin@example.com")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		AppPort:         v.GetString("APP_PORT"),
		DatabaseDriver:  strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		AuthRequired:    v.GetBool("AUTH_REQUIRED"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		TokenTTL:        v.GetDuration("TOKEN_TTL"),
		AdminEmail:      v.GetString("ADMIN_EMAIL"),
		AdminPassword:   v.GetString("ADMIN_PASSWORD"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		LogLevel:        strings.ToLower(v.GetString("LOG_LEVEL")),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DATABASE_DRIVER must be sqlite or postgres, got %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if c.AuthRequired && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_REQUIRED is set")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Database returns the connection settings for database.Open.
func (c *Config) Database() database.Config {
	return database.Config{Driver: c.DatabaseDriver, DSN: c.DatabaseDSN}
}

// NewLogger builds the text logger used across the application.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}
