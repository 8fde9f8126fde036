package cli

import (
	"github.com/spf13/cobra"

	"github.com/sakif/book-requests/internal/config"
	"github.com/sakif/book-requests/internal/server"
)

// NewServeCommand runs the HTTP server, like cmd/server but configured by flags.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	var (
		port     int
		seedFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.ensureDir(); err != nil {
				return err
			}

			srv, err := server.New(server.Config{
				Port:     port,
				DBPath:   opts.DBPath,
				SeedFile: seedFile,
			}, opts.logger(cmd))
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "HTTP port")
	cmd.Flags().StringVar(&seedFile, "seed-file", envOr("SEED_FILE", ""), "YAML catalog loaded before serving")
	return cmd
}
