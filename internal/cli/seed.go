package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakif/book-requests/internal/catalog"
	"github.com/sakif/book-requests/internal/service"
)

// NewSeedCommand adds titles to the catalog from a YAML file, from
// arguments, or both.
func NewSeedCommand(opts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed [title...]",
		Short: "Add books to the catalog",
		Long: `Add books to the catalog. Titles already present are skipped.

Titles come from --file (a YAML catalog) and/or positional arguments:

  bookctl seed --file catalog.yaml
  bookctl seed "Dune" "Emma"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var titles []string
			if file != "" {
				loaded, err := catalog.Load(file)
				if err != nil {
					return err
				}
				titles = append(titles, loaded...)
			}
			titles = append(titles, args...)
			if len(titles) == 0 {
				return errors.New("nothing to seed: pass --file or at least one title")
			}

			db, err := opts.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			svc := service.NewCatalogService(db, opts.logger(cmd))
			inserted, err := svc.Seed(cmd.Context(), titles)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d of %d titles\n", inserted, len(titles))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML catalog file")
	return cmd
}
