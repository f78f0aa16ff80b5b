package cmd

import (
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/plow-pm/plow/internal/config"
	"github.com/plow-pm/plow/internal/plowpath"
	"github.com/plow-pm/plow/internal/registry"
	"github.com/plow-pm/plow/internal/registry/httpreg"
	"github.com/plow-pm/plow/internal/registry/ondisk"
)

// plowHome resolves the root directory plow stores its own state under
// (the on-disk registry mirror and the artifact cache), preferring an
// explicit `[plow].home` override from the workspace config over the
// `~/.plow` default.
func plowHome(fs afero.Fs, ws *config.WorkspaceConfigFile) (plowpath.AbsolutePath, error) {
	if ws != nil && ws.Plow != nil && ws.Plow.Home != nil && *ws.Plow.Home != "" {
		return plowpath.CheckedToAbsolutePath(*ws.Plow.Home)
	}
	home, err := config.UserHomeDir()
	if err != nil {
		return "", err
	}
	return plowpath.UnsafeToAbsolutePath(home).Join(".plow"), nil
}

// newRegistry builds the Registry realisation a subcommand should talk
// to: the network client when a registry index URL is configured and
// the workspace isn't offline, otherwise the on-disk store mirrored
// under plowHome. `[net] offline` and `[registry] index` in the
// workspace config select between the two.
func newRegistry(fs afero.Fs, ws *config.WorkspaceConfigFile, creds *config.CredentialsFile, home plowpath.AbsolutePath, logger hclog.Logger) (registry.Registry, error) {
	offline := ws != nil && ws.IsOffline()
	var index string
	if ws != nil && ws.Registry != nil && ws.Registry.Index != nil {
		index = *ws.Registry.Index
	}
	if !offline && index != "" {
		return httpreg.New(httpreg.Config{
			BaseURL: index,
			Token:   config.ResolveToken(ws, creds),
			Timeout: 30 * time.Second,
			Offline: offline,
		}, logger), nil
	}
	return ondisk.New(fs, home.Join("registry")), nil
}
