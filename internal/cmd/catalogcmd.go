package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCatalogCommand re-emits catalog-v001.xml from the workspace's current
// Plow.lock. It runs the same retrieval as fetch, so every pin's file under
// `.plow/retrieved` is rewritten from the cache or registry before the
// catalog is written.
func newCatalogCommand(h *Helper) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Regenerate the Protégé catalog file from the current lockfile",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, catalogPath, err := retrieveAndCatalog(cmd.Context(), h)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", catalogPath)
			return nil
		},
	}
}
