package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds the process configuration, read from the environment.
type Config struct {
	Addr     string `env:"ADDR" envDefault:":8080"`
	DataFile string `env:"DATA_FILE"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads a best-effort .env file and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps the configured level name onto a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
