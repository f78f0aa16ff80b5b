package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/plow-pm/plow/internal/config"
	"github.com/plow-pm/plow/internal/plowpath"
)

func newPublishCommand(h *Helper) *cobra.Command {
	return &cobra.Command{
		Use:   "publish [field.ttl]",
		Short: "Submit a field to the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := h.Cwd()
			if err != nil {
				return err
			}
			path, err := resolveFieldPath(h.FS, cwd, args)
			if err != nil {
				return err
			}
			raw, _, _, _, err := loadField(h.FS, path)
			if err != nil {
				return err
			}

			logger, err := h.Logger()
			if err != nil {
				return err
			}
			ws, err := config.EnsureWorkspaceConfigFile(h.FS, path.Dir())
			if err != nil {
				return err
			}
			creds, err := loadCredentials()
			if err != nil {
				return err
			}
			home, err := plowHome(h.FS, ws)
			if err != nil {
				return err
			}
			reg, err := newRegistry(h.FS, ws, creds, home, logger.Named("registry"))
			if err != nil {
				return err
			}

			rec, err := reg.SubmitPackage(cmd.Context(), raw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %s@%s (cksum %s)\n", rec.Name, rec.Version, rec.Cksum)
			return nil
		},
	}
}

// loadCredentials reads ~/.plow/credentials.toml, tolerating its absence —
// a workspace may override the token entirely via config.toml.
func loadCredentials() (*config.CredentialsFile, error) {
	path, err := config.CredentialsFilePath()
	if err != nil {
		return nil, err
	}
	fs := afero.NewOsFs()
	if !plowpath.FileExists(fs, path) {
		return nil, nil
	}
	return config.LoadCredentialsFile(fs, path)
}
