// Package workspace handles the on-disk workspace: locating the root,
// reading its Plow.toml member declarations, discovering member fields,
// guarding concurrent CLI invocations against the same workspace, and
// materialising a RetrievedPackageSet from a resolved lockfile.
package workspace

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	nlockfile "github.com/nightlyone/lockfile"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"

	"github.com/plow-pm/plow/internal/cache"
	"github.com/plow-pm/plow/internal/lockfile"
	"github.com/plow-pm/plow/internal/plowerr"
	"github.com/plow-pm/plow/internal/plowpath"
	"github.com/plow-pm/plow/internal/registry"
	"github.com/plow-pm/plow/internal/ttl"
)

// ManifestFileName is the workspace-root manifest filename that FindRoot
// and LoadPlowToml look for.
const ManifestFileName = "Plow.toml"

// IgnoreFileName is an optional exclude file honored during member
// discovery, read with the same gitignore semantics as `.gitignore`.
const IgnoreFileName = ".plowignore"

// LockFileName is the canonical on-disk lockfile name.
const LockFileName = "Plow.lock"

// PlowToml is the workspace-root manifest declaring member globs.
type PlowToml struct {
	Workspace struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
}

// FindRoot walks up from start looking for the nearest ancestor directory
// containing Plow.toml.
func FindRoot(fs afero.Fs, start plowpath.AbsolutePath) (plowpath.AbsolutePath, error) {
	dir := start
	for {
		if plowpath.FileExists(fs, dir.Join(ManifestFileName)) {
			return dir, nil
		}
		parent := dir.Dir()
		if parent == dir {
			return "", &plowerr.ConfigError{Kind: plowerr.ConfigNotFound, Detail: "no " + ManifestFileName + " found in any ancestor directory"}
		}
		dir = parent
	}
}

// LoadPlowToml reads and parses the workspace root's Plow.toml.
func LoadPlowToml(fs afero.Fs, root plowpath.AbsolutePath) (*PlowToml, error) {
	raw, err := plowpath.ReadFile(fs, root.Join(ManifestFileName))
	if err != nil {
		return nil, &plowerr.ConfigError{Kind: plowerr.ConfigNotFound, Path: root.Join(ManifestFileName).String(), Detail: "reading Plow.toml", Cause: err}
	}
	var cfg PlowToml
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return nil, &plowerr.ConfigError{Kind: plowerr.ConfigMalformed, Path: root.Join(ManifestFileName).String(), Detail: "parsing Plow.toml", Cause: err}
	}
	return &cfg, nil
}

// DiscoverMembers expands cfg's glob patterns against root's immediate
// subdirectories, returning the absolute path of every subdirectory whose
// name matches a pattern and is not excluded by an optional .plowignore.
// The contents of a matching subdirectory are not inspected.
func DiscoverMembers(fs afero.Fs, root plowpath.AbsolutePath, cfg *PlowToml) ([]plowpath.AbsolutePath, error) {
	patterns := make([]glob.Glob, 0, len(cfg.Workspace.Members))
	for _, p := range cfg.Workspace.Members {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "compiling workspace member pattern %q", p)
		}
		patterns = append(patterns, g)
	}

	ignore := loadIgnore(fs, root)

	entries, err := afero.ReadDir(fs, root.String())
	if err != nil {
		return nil, errors.Wrapf(err, "reading workspace root %v", root)
	}

	var members []plowpath.AbsolutePath
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		rel := e.Name()
		if ignore != nil && ignore.MatchesPath(rel) {
			continue
		}
		for _, g := range patterns {
			if g.Match(rel) {
				members = append(members, root.Join(rel))
				break
			}
		}
	}
	return members, nil
}

func loadIgnore(fs afero.Fs, root plowpath.AbsolutePath) *gitignore.GitIgnore {
	raw, err := plowpath.ReadFile(fs, root.Join(IgnoreFileName))
	if err != nil {
		return nil
	}
	lines := splitLines(raw)
	return gitignore.CompileIgnoreLines(lines...)
}

func splitLines(raw []byte) []string {
	var lines []string
	start := 0
	for i, b := range raw {
		if b == '\n' {
			lines = append(lines, string(raw[start:i]))
			start = i + 1
		}
	}
	if start < len(raw) {
		lines = append(lines, string(raw[start:]))
	}
	return lines
}

// Lock guards a workspace root against concurrent CLI invocations that
// would both try to rewrite Plow.lock. Callers must call Unlock when done.
type Lock struct {
	l nlockfile.Lockfile
}

// AcquireLock takes an exclusive lock on root's workspace, failing fast
// (not blocking) if another process already holds it.
func AcquireLock(root plowpath.AbsolutePath) (*Lock, error) {
	l, err := nlockfile.New(filepath.Join(root.String(), ".plow.lock.pid"))
	if err != nil {
		return nil, &plowerr.CacheError{Kind: plowerr.CacheLocked, Key: root.String(), Detail: "constructing workspace lock", Cause: err}
	}
	// TryLock accepts a lock file that already names this process, so a
	// second acquisition from the same process is refused here.
	if owner, err := l.GetOwner(); err == nil && owner.Pid == os.Getpid() {
		return nil, &plowerr.CacheError{Kind: plowerr.CacheLocked, Key: root.String(), Detail: "this plow invocation already holds the workspace lock"}
	}
	if err := l.TryLock(); err != nil {
		return nil, &plowerr.CacheError{Kind: plowerr.CacheLocked, Key: root.String(), Detail: "another plow invocation holds the workspace lock", Cause: err}
	}
	return &Lock{l: l}, nil
}

// Unlock releases the workspace lock.
func (lk *Lock) Unlock() error {
	return lk.l.Unlock()
}

// RetrievedPackage pairs one lockfile pin with the local path its artifact
// bytes were materialised to and the ontology IRI extracted from it.
type RetrievedPackage struct {
	Name        string
	Version     string
	Cksum       string
	OntologyIRI string
	Path        plowpath.AbsolutePath
}

// RetrievedPackageSet is a lockfile's entries each paired with a materialised
// local path and extracted ontology IRI.
type RetrievedPackageSet struct {
	Packages []RetrievedPackage
}

// Retrieve populates c from reg for every pin in lf and materialises each
// as a plain (uncompressed) `.ttl` file under
// `<root>/.plow/retrieved/<name>-<version>.ttl`, building a
// RetrievedPackageSet for the catalog emitter (internal/catalog) to
// consume downstream.
func Retrieve(ctx context.Context, fs afero.Fs, root plowpath.AbsolutePath, c *cache.Cache, reg registry.Registry, lf *lockfile.LockFile) (*RetrievedPackageSet, error) {
	retrievedDir := root.Join(".plow", "retrieved")
	set := &RetrievedPackageSet{}
	for _, pin := range lf.Package {
		rec, err := reg.GetPackageVersionMetadata(ctx, registry.PackageVersion{Name: pin.PackageName, Version: pin.Version})
		if err != nil {
			return nil, err
		}
		contents, err := c.Retrieve(ctx, reg, rec)
		if err != nil {
			return nil, err
		}
		iri, err := ontologyIRI(contents)
		if err != nil {
			return nil, err
		}
		path := retrievedDir.Join(pin.PackageName + "-" + pin.Version + ".ttl")
		if err := plowpath.WriteFile(fs, path, contents, 0644); err != nil {
			return nil, &plowerr.CacheError{Kind: plowerr.CacheIOError, Key: pin.PackageName, Detail: "materialising retrieved artifact", Cause: err}
		}
		set.Packages = append(set.Packages, RetrievedPackage{
			Name:        pin.PackageName,
			Version:     pin.Version,
			Cksum:       pin.Cksum,
			OntologyIRI: iri,
			Path:        path,
		})
	}
	return set, nil
}

func ontologyIRI(contents []byte) (string, error) {
	doc, _, err := ttl.Parse(contents)
	if err != nil {
		return "", err
	}
	root, ok := doc.RootPrefix()
	if !ok {
		return "", &plowerr.ManifestError{Kind: plowerr.MissingRootPrefix, Field: "root prefix", Detail: "retrieved artifact has no root prefix"}
	}
	return root, nil
}
