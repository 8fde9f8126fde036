// Package main is the entry point for the book request server.
//
// main stays minimal: read configuration from the environment, build the
// logger, make sure the database directory exists, and hand over to
// internal/server. Everything else lives in importable packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/book-requests/internal/config"
	"github.com/sakif/book-requests/internal/server"
	sqliteRepo "github.com/sakif/book-requests/internal/repository/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	if cfg.DBPath != sqliteRepo.MemoryPath {
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(server.Config{
		Port:     cfg.Port,
		DBPath:   cfg.DBPath,
		SeedFile: cfg.SeedFile,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
