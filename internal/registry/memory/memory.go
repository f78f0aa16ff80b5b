// Package memory is the in-memory Registry realisation, authoritative for
// unit tests across the module.
package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/plow-pm/plow/internal/index"
	"github.com/plow-pm/plow/internal/lint"
	"github.com/plow-pm/plow/internal/manifest"
	"github.com/plow-pm/plow/internal/plowerr"
	"github.com/plow-pm/plow/internal/registry"
	"github.com/plow-pm/plow/internal/ttl"
)

type entry struct {
	record   index.Record
	artifact []byte
}

// Registry is an in-memory, mutex-guarded implementation of registry.Registry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]map[string]entry // package name -> version -> entry
}

// New constructs an empty in-memory registry.
func New() *Registry {
	return &Registry{entries: make(map[string]map[string]entry)}
}

func (r *Registry) AllAvailableVersions(_ context.Context, name string) ([]index.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	versions := r.entries[name]
	out := make([]index.Record, 0, len(versions))
	for _, e := range versions {
		out = append(out, e.record)
	}
	return out, nil
}

func (r *Registry) GetPackageVersionMetadata(_ context.Context, pv registry.PackageVersion) (index.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	versions, ok := r.entries[pv.Name]
	if !ok {
		return index.Record{}, &plowerr.RegistryError{Kind: plowerr.NotFound, Package: pv.Name, Detail: "package not found"}
	}
	e, ok := versions[pv.Version]
	if !ok {
		return index.Record{}, &plowerr.RegistryError{Kind: plowerr.NotFound, Package: pv.Name, Detail: "version " + pv.Version + " not found"}
	}
	return e.record, nil
}

func (r *Registry) RetrievePackage(_ context.Context, pv registry.PackageVersion) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	versions, ok := r.entries[pv.Name]
	if !ok {
		return nil, &plowerr.RegistryError{Kind: plowerr.NotFound, Package: pv.Name, Detail: "package not found"}
	}
	e, ok := versions[pv.Version]
	if !ok {
		return nil, &plowerr.RegistryError{Kind: plowerr.NotFound, Package: pv.Name, Detail: "version " + pv.Version + " not found"}
	}
	sum := sha256.Sum256(e.artifact)
	if hex.EncodeToString(sum[:]) != e.record.Cksum {
		return nil, &plowerr.RegistryError{Kind: plowerr.ChecksumMismatch, Package: pv.Name, Detail: "stored artifact no longer matches its indexed checksum"}
	}
	return e.artifact, nil
}

func (r *Registry) SubmitPackage(_ context.Context, artifact []byte) (index.Record, error) {
	doc, graph, err := ttl.Parse(artifact)
	if err != nil {
		return index.Record{}, err
	}
	m, err := manifest.Extract(doc, graph)
	if err != nil {
		return index.Record{}, err
	}

	engine := lint.NewEngine()
	report, err := engine.RunSet(&lint.Context{Doc: doc, Graph: graph, Manifest: m}, registry.PublishLintSet())
	if err != nil {
		return index.Record{}, err
	}
	if !report.AllPassed() {
		return index.Record{}, plowerr.NewLintFailure(report.Diagnostics)
	}

	sum := sha256.Sum256(artifact)
	cksum := hex.EncodeToString(sum[:])
	rec, err := index.FromManifest(m, cksum)
	if err != nil {
		return index.Record{}, &plowerr.RegistryError{Kind: plowerr.StorageError, Package: m.PackageName.String(), Detail: err.Error()}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries[rec.Name] == nil {
		r.entries[rec.Name] = make(map[string]entry)
	}
	if _, exists := r.entries[rec.Name][rec.Version]; exists {
		return index.Record{}, &plowerr.RegistryError{Kind: plowerr.DuplicateVersion, Package: rec.Name, Detail: "version " + rec.Version + " already published"}
	}
	r.entries[rec.Name][rec.Version] = entry{record: rec, artifact: artifact}
	return rec, nil
}
