// Package config loads runtime settings from environment variables.
//
//	PORT       HTTP port                     (default 8080)
//	DB_PATH    SQLite file, or ":memory:"    (default data/bookrequests.db)
//	LOG_LEVEL  debug | info | warn | error   (default info)
//	SEED_FILE  optional YAML catalog loaded at start-up
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	DefaultPort     = 8080
	DefaultDBPath   = "data/bookrequests.db"
	DefaultLogLevel = "info"
)

// Config holds every setting the binaries need.
type Config struct {
	Port     int
	DBPath   string
	LogLevel slog.Level
	SeedFile string
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config using getenv, which makes it testable without
// touching the real environment.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:     DefaultPort,
		DBPath:   getenvDefault(getenv, "DB_PATH", DefaultDBPath),
		SeedFile: strings.TrimSpace(getenv("SEED_FILE")),
	}

	if portStr := getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return Config{}, fmt.Errorf("config: invalid PORT %q", portStr)
		}
		cfg.Port = port
	}

	level, err := ParseLevel(getenvDefault(getenv, "LOG_LEVEL", DefaultLogLevel))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

// ParseLevel accepts debug, info, warn, or error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("config: invalid LOG_LEVEL %q", s)
	}
	return level, nil
}

// NewLogger builds the text logger every binary uses.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func getenvDefault(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}
