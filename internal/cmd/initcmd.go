package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plow-pm/plow/internal/config"
	"github.com/plow-pm/plow/internal/plowpath"
	"github.com/plow-pm/plow/internal/workspace"
)

func newInitCommand(h *Helper) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a Plow.toml workspace manifest in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := h.Cwd()
			if err != nil {
				return err
			}
			manifestPath := cwd.Join(workspace.ManifestFileName)
			if plowpath.FileExists(h.FS, manifestPath) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", manifestPath)
			} else {
				const skeleton = "[workspace]\nmembers = [\"*\"]\n"
				if err := plowpath.WriteFile(h.FS, manifestPath, []byte(skeleton), 0644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", manifestPath)
			}

			if _, err := config.EnsureWorkspaceConfigFile(h.FS, cwd); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cwd.Join(".plow", config.WorkspaceConfigFileName))
			return nil
		},
	}
}
