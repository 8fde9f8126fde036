package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakif/book-requests/internal/service"
)

// NewBooksCommand prints the catalog.
func NewBooksCommand(opts *RootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List the books in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			books, err := service.NewCatalogService(db, opts.logger(cmd)).List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(books)
			}
			for _, b := range books {
				fmt.Fprintf(out, "%d\t%s\n", b.ID, b.Title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}
