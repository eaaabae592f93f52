// Package config loads process settings from SHEET_* environment variables
package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	"github.com/KirkDiggler/rpg-sheet-store/internal/pkg/datadir"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "SHEET_"

// Backend selects where records are kept
type Backend string

// Supported backends
const (
	BackendFile  Backend = "file"
	BackendRedis Backend = "redis"
)

// Config holds settings shared by every command. Flags override these.
type Config struct {
	AppID     string  `env:"APP_ID"`
	Backend   Backend `env:"BACKEND"`
	RedisAddr string  `env:"REDIS_ADDR"`
	GRPCPort  int     `env:"GRPC_PORT"`
	LogLevel  string  `env:"LOG_LEVEL"`
}

// Load overlays the environment on Default and validates the result
func Load() (*Config, error) {
	cfg := Default()
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the settings used when nothing is set
func Default() *Config {
	return &Config{
		AppID:     datadir.DefaultAppID,
		Backend:   BackendFile,
		RedisAddr: "localhost:6379",
		GRPCPort:  50051,
		LogLevel:  "info",
	}
}

// Validate checks every field
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("AppID", c.AppID, vb)
	errors.ValidateEnum("Backend", string(c.Backend), []string{string(BackendFile), string(BackendRedis)}, vb)
	if c.Backend == BackendRedis {
		errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		vb.InvalidField("GRPCPort", "must be between 0 and 65535")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.InvalidField("LogLevel", c.LogLevel+" is not one of debug, info, warn, error")
	}

	return vb.Build()
}

// SlogLevel returns LogLevel as a slog.Level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
