// Package index defines the serialisable per-package-version record stored
// by a registry's index, and its conversion to/from an extracted
// manifest.Manifest.
package index

import (
	"github.com/pkg/errors"

	"github.com/plow-pm/plow/internal/manifest"
)

// Dependency is one index-stored dependency edge: a package name plus the
// raw version predicate string it was declared with.
type Dependency struct {
	Name      string `json:"name"`
	Predicate string `json:"req"`
}

// Record is the authoritative, lightweight metadata the resolver and the
// registry capability operate on — never the artifact bytes themselves.
type Record struct {
	Name        string       `json:"name"`
	Version     string       `json:"version"`
	Cksum       string       `json:"cksum"`
	OntologyIRI string       `json:"ontology_iri,omitempty"`
	Deps        []Dependency `json:"deps"`
}

// FromManifest builds a Record from an extracted manifest and the SHA-256
// checksum of its serialized artifact bytes. A missing checksum is a hard
// conversion error; the index never stores a record it cannot later verify
// an artifact against (RegistryError.StorageError at the call site).
func FromManifest(m *manifest.Manifest, cksum string) (Record, error) {
	if cksum == "" {
		return Record{}, errors.Errorf("no cksum provided for package %q", m.PackageName.String())
	}
	deps := make([]Dependency, 0, len(m.Dependencies))
	for _, d := range m.Dependencies {
		deps = append(deps, Dependency{Name: d.Name.String(), Predicate: d.Predicate})
	}
	return Record{
		Name:    m.PackageName.String(),
		Version: m.PackageVersion,
		Cksum:   cksum,
		Deps:    deps,
	}, nil
}
