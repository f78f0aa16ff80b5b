package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plow-pm/plow/internal/config"
	"github.com/plow-pm/plow/internal/workspace"
)

func newResolveCommand(h *Helper) *cobra.Command {
	var frozen bool
	cmd := &cobra.Command{
		Use:   "resolve [field.ttl]",
		Short: "Resolve a field's dependencies and write Plow.lock",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := h.Cwd()
			if err != nil {
				return err
			}
			path, err := resolveFieldPath(h.FS, cwd, args)
			if err != nil {
				return err
			}
			_, _, _, m, err := loadField(h.FS, path)
			if err != nil {
				return err
			}

			logger, err := h.Logger()
			if err != nil {
				return err
			}
			root := path.Dir()
			ws, err := config.EnsureWorkspaceConfigFile(h.FS, root)
			if err != nil {
				return err
			}
			home, err := plowHome(h.FS, ws)
			if err != nil {
				return err
			}
			reg, err := newRegistry(h.FS, ws, nil, home, logger.Named("resolver"))
			if err != nil {
				return err
			}

			lf, err := workspace.Resolve(cmd.Context(), h.FS, root, m, reg, frozen)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "resolved %d package(s), wrote %s\n", len(lf.Package), root.Join(workspace.LockFileName))
			return nil
		},
	}
	cmd.Flags().BoolVar(&frozen, "frozen", false, "require an up-to-date Plow.lock instead of re-running the resolver")
	return cmd
}
