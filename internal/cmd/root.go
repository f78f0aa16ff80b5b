// Package cmd holds the root cobra command for plow.
package cmd

import (
	"github.com/spf13/cobra"
)

// RunWithArgs runs plow with the specified arguments. args should not
// include the binary name itself.
func RunWithArgs(args []string, plowVersion string) int {
	helper := NewHelper(plowVersion)
	root := getCmd(helper)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

// getCmd builds the root cobra command and registers every subcommand.
func getCmd(h *Helper) *cobra.Command {
	root := &cobra.Command{
		Use:              "plow",
		Short:            "A package manager for Turtle ontology fields",
		TraverseChildren: true,
		Version:          h.PlowVersion,
	}
	root.SetVersionTemplate("{{.Version}}\n")
	h.AddFlags(root.PersistentFlags())

	root.AddCommand(newInitCommand(h))
	root.AddCommand(newLintCommand(h))
	root.AddCommand(newResolveCommand(h))
	root.AddCommand(newFetchCommand(h))
	root.AddCommand(newPublishCommand(h))
	root.AddCommand(newCatalogCommand(h))
	return root
}
