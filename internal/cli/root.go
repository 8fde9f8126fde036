// Package cli implements the bookctl command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sakif/book-requests/internal/config"
	sqliteRepo "github.com/sakif/book-requests/internal/repository/sqlite"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath   string
	LogLevel string
}

// NewRootCommand creates the root command. Flag defaults come from the same
// environment variables the server binary reads.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "bookctl",
		Short:         "Administer the book request service",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.ParseLevel(opts.LogLevel); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", envOr("DB_PATH", config.DefaultDBPath), "SQLite database path")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", envOr("LOG_LEVEL", config.DefaultLogLevel), "log level (debug|info|warn|error)")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewBooksCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// logger builds a logger writing to the command's stderr.
func (o *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level, _ := config.ParseLevel(o.LogLevel) // validated in PersistentPreRunE
	return config.NewLogger(cmd.ErrOrStderr(), level)
}

// ensureDir creates the directory holding the database file.
func (o *RootOptions) ensureDir() error {
	if o.DBPath == sqliteRepo.MemoryPath {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(o.DBPath), 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	return nil
}

// openDB opens the configured database, creating its directory if needed.
func (o *RootOptions) openDB() (*sqliteRepo.DB, error) {
	if err := o.ensureDir(); err != nil {
		return nil, err
	}
	return sqliteRepo.New(o.DBPath)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
