// Command bookctl administers the book request service: it seeds and lists
// the catalog and can run the HTTP server.
package main

import (
	"os"

	"github.com/sakif/book-requests/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
