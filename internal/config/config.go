// Package config loads and writes plow's TOML configuration surfaces:
// the workspace-level `.plow/config.toml`, and the per-user
// `~/.plow/credentials.toml`. Plow.toml's `[workspace]`
// member declarations are a separate, distinct surface owned by
// internal/workspace.
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/plow-pm/plow/internal/plowerr"
	"github.com/plow-pm/plow/internal/plowpath"
)

// WorkspaceConfigFileName is the workspace-local config file, distinct
// from Plow.toml's member declarations.
const WorkspaceConfigFileName = "config.toml"

// CredentialsFileName is the per-user registry auth-token file.
const CredentialsFileName = "credentials.toml"

// Plow holds the `[plow]` table: where plow's own local state (the
// artifact cache, retrieved packages) is rooted.
type Plow struct {
	Home *string `toml:"home,omitempty"`
}

// Registry holds the `[registry]` table: which registry index to talk
// to, and an optional token overriding the one in the credentials file.
type Registry struct {
	Index *string `toml:"index,omitempty"`
	Token *string `toml:"token,omitempty"`
}

// Net holds the `[net]` table: whether to forbid registry calls.
type Net struct {
	Offline *bool `toml:"offline,omitempty"`
}

// WorkspaceConfigFile is `<root>/.plow/config.toml`'s parsed shape.
type WorkspaceConfigFile struct {
	Plow     *Plow     `toml:"plow,omitempty"`
	Registry *Registry `toml:"registry,omitempty"`
	Net      *Net      `toml:"net,omitempty"`

	path plowpath.AbsolutePath
}

// EmptyWorkspaceConfig returns an unpopulated config rooted at path.
func EmptyWorkspaceConfig(path plowpath.AbsolutePath) *WorkspaceConfigFile {
	return &WorkspaceConfigFile{path: path}
}

// SetPlowHome sets (or creates) the config's plow.home field.
func (c *WorkspaceConfigFile) SetPlowHome(home string) {
	if c.Plow == nil {
		c.Plow = &Plow{}
	}
	c.Plow.Home = &home
}

// IsOffline reports whether net.offline is set and true.
func (c *WorkspaceConfigFile) IsOffline() bool {
	return c.Net != nil && c.Net.Offline != nil && *c.Net.Offline
}

// LoadWorkspaceConfigFile reads and parses path.
func LoadWorkspaceConfigFile(fs afero.Fs, path plowpath.AbsolutePath) (*WorkspaceConfigFile, error) {
	raw, err := plowpath.ReadFile(fs, path)
	if err != nil {
		return nil, &plowerr.ConfigError{Kind: plowerr.ConfigNotFound, Path: path.String(), Detail: "reading workspace config file", Cause: err}
	}
	var cfg WorkspaceConfigFile
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return nil, &plowerr.ConfigError{Kind: plowerr.ConfigMalformed, Path: path.String(), Detail: "parsing workspace config file", Cause: err}
	}
	cfg.path = path
	return &cfg, nil
}

// Write serializes c back to its own path.
func (c *WorkspaceConfigFile) Write(fs afero.Fs) error {
	raw, err := toml.Marshal(c)
	if err != nil {
		return &plowerr.ConfigError{Kind: plowerr.ConfigMalformed, Path: c.path.String(), Detail: "encoding workspace config file", Cause: err}
	}
	if err := plowpath.WriteFile(fs, c.path, raw, 0644); err != nil {
		return &plowerr.ConfigError{Kind: plowerr.ConfigNotFound, Path: c.path.String(), Detail: "writing workspace config file", Cause: err}
	}
	return nil
}

// EnsureWorkspaceConfigFile loads `<root>/.plow/config.toml`, creating an
// empty one (and its parent directory) if it doesn't yet exist.
func EnsureWorkspaceConfigFile(fs afero.Fs, root plowpath.AbsolutePath) (*WorkspaceConfigFile, error) {
	dir := root.Join(".plow")
	path := dir.Join(WorkspaceConfigFileName)
	if plowpath.FileExists(fs, path) {
		return LoadWorkspaceConfigFile(fs, path)
	}
	if err := plowpath.EnsureDir(fs, dir); err != nil {
		return nil, &plowerr.ConfigError{Kind: plowerr.ConfigNotFound, Path: dir.String(), Detail: "creating .plow directory", Cause: err}
	}
	cfg := EmptyWorkspaceConfig(path)
	if err := cfg.Write(fs); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CredentialsRegistry is the `[registry]` table of a credentials file.
type CredentialsRegistry struct {
	Token string `toml:"token"`
}

// CredentialsFile is `~/.plow/credentials.toml`'s parsed shape: the
// registry auth token, kept out of the workspace config so it never
// gets committed alongside a field's source.
type CredentialsFile struct {
	Registry CredentialsRegistry `toml:"registry"`
}

// WithToken builds a CredentialsFile carrying token.
func WithToken(token string) *CredentialsFile {
	return &CredentialsFile{Registry: CredentialsRegistry{Token: token}}
}

// UserHomeDir resolves the current user's home directory, the base for
// CredentialsFilePath. go-homedir is tried first (it works in
// cross-compiled and cgo-less builds); xdg.Home is the fallback.
func UserHomeDir() (string, error) {
	home, err := homedir.Dir()
	if err == nil && home != "" {
		return home, nil
	}
	if xdg.Home != "" {
		return xdg.Home, nil
	}
	return "", &plowerr.ConfigError{Kind: plowerr.ConfigNotFound, Detail: "resolving user home directory", Cause: err}
}

// CredentialsFilePath returns `~/.plow/credentials.toml`.
func CredentialsFilePath() (plowpath.AbsolutePath, error) {
	home, err := UserHomeDir()
	if err != nil {
		return "", err
	}
	return plowpath.UnsafeToAbsolutePath(filepath.Join(home, ".plow", CredentialsFileName)), nil
}

// LoadCredentialsFile reads and parses path.
func LoadCredentialsFile(fs afero.Fs, path plowpath.AbsolutePath) (*CredentialsFile, error) {
	raw, err := plowpath.ReadFile(fs, path)
	if err != nil {
		return nil, &plowerr.ConfigError{Kind: plowerr.ConfigNotFound, Path: path.String(), Detail: "reading credentials file", Cause: err}
	}
	var cf CredentialsFile
	if err := toml.Unmarshal(raw, &cf); err != nil {
		return nil, &plowerr.ConfigError{Kind: plowerr.ConfigMalformed, Path: path.String(), Detail: "parsing credentials file", Cause: err}
	}
	return &cf, nil
}

// Write serializes cf to path, creating its parent directory if needed.
func (cf *CredentialsFile) Write(fs afero.Fs, path plowpath.AbsolutePath) error {
	if err := plowpath.EnsureDir(fs, path.Dir()); err != nil {
		return &plowerr.ConfigError{Kind: plowerr.ConfigNotFound, Path: path.Dir().String(), Detail: "creating credentials directory", Cause: err}
	}
	raw, err := toml.Marshal(cf)
	if err != nil {
		return &plowerr.ConfigError{Kind: plowerr.ConfigMalformed, Path: path.String(), Detail: "encoding credentials file", Cause: err}
	}
	if err := plowpath.WriteFile(fs, path, raw, 0600); err != nil {
		return &plowerr.ConfigError{Kind: plowerr.ConfigNotFound, Path: path.String(), Detail: "writing credentials file", Cause: err}
	}
	return nil
}

// ResolveToken returns the effective registry auth token: the workspace
// config's registry.token overrides the credentials file's.
func ResolveToken(ws *WorkspaceConfigFile, creds *CredentialsFile) string {
	if ws != nil && ws.Registry != nil && ws.Registry.Token != nil && *ws.Registry.Token != "" {
		return *ws.Registry.Token
	}
	if creds != nil {
		return creds.Registry.Token
	}
	return ""
}
