package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/plow-pm/plow/internal/cache"
	"github.com/plow-pm/plow/internal/catalog"
	"github.com/plow-pm/plow/internal/config"
	"github.com/plow-pm/plow/internal/lockfile"
	"github.com/plow-pm/plow/internal/plowpath"
	"github.com/plow-pm/plow/internal/workspace"
)

func newFetchCommand(h *Helper) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Retrieve every pinned package in Plow.lock and emit the Protégé catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, catalogPath, err := retrieveAndCatalog(cmd.Context(), h)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "retrieved %d package(s), wrote %s\n", len(set.Packages), catalogPath)
			return nil
		},
	}
}

// retrieveAndCatalog locates the workspace root, resolves its Registry and
// Cache from config, loads Plow.lock, retrieves every pin (cache-then-
// registry), and (re)writes catalog-v001.xml — the shared body of `fetch`
// and `catalog`, which differ only in how they report the result.
func retrieveAndCatalog(ctx context.Context, h *Helper) (*workspace.RetrievedPackageSet, plowpath.AbsolutePath, error) {
	cwd, err := h.Cwd()
	if err != nil {
		return nil, "", err
	}
	root, err := workspace.FindRoot(h.FS, cwd)
	if err != nil {
		return nil, "", err
	}

	logger, err := h.Logger()
	if err != nil {
		return nil, "", err
	}
	ws, err := config.EnsureWorkspaceConfigFile(h.FS, root)
	if err != nil {
		return nil, "", err
	}
	home, err := plowHome(h.FS, ws)
	if err != nil {
		return nil, "", err
	}
	reg, err := newRegistry(h.FS, ws, nil, home, logger.Named("registry"))
	if err != nil {
		return nil, "", err
	}
	c := cache.New(h.FS, home.Join("cache"), logger.Named("cache"))

	lf, err := loadLockFile(h.FS, root.Join("Plow.lock"))
	if err != nil {
		return nil, "", err
	}

	set, err := workspace.Retrieve(ctx, h.FS, root, c, reg, lf)
	if err != nil {
		return nil, "", err
	}
	catalogPath, err := catalog.Write(h.FS, root, set)
	if err != nil {
		return nil, "", err
	}
	return set, catalogPath, nil
}

func loadLockFile(fs afero.Fs, path plowpath.AbsolutePath) (*lockfile.LockFile, error) {
	raw, err := plowpath.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return lockfile.Decode(bytes.NewReader(raw))
}
