package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plow-pm/plow/internal/lint"
	"github.com/plow-pm/plow/internal/plowerr"
)

func newLintCommand(h *Helper) *cobra.Command {
	var publish bool
	cmd := &cobra.Command{
		Use:   "lint [field.ttl]",
		Short: "Run the validation lint set against a field",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := h.Cwd()
			if err != nil {
				return err
			}
			path, err := resolveFieldPath(h.FS, cwd, args)
			if err != nil {
				return err
			}
			_, doc, graph, m, err := loadField(h.FS, path)
			if err != nil {
				return err
			}

			set := lint.DefaultSet()
			if publish {
				set = lint.PublishSet()
			}
			ctx := &lint.Context{Doc: doc, Graph: graph, Manifest: m}
			report, err := lint.NewEngine().RunSet(ctx, set)
			if err != nil {
				return err
			}
			if !report.AllPassed() {
				return plowerr.NewLintFailure(report.Diagnostics)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: lints passed (%s)\n", path, set.Name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&publish, "publish", false, "run the stricter publish-required lint set instead of the default one")
	return cmd
}
