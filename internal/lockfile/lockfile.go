// Package lockfile provides canonical serialisation of a resolver's pinned
// output to and from the on-disk Plow.lock.
package lockfile

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/plow-pm/plow/internal/manifest"
	"github.com/plow-pm/plow/internal/plowerr"
	"github.com/plow-pm/plow/internal/resolve"
)

// Pin is one locked package entry, "one table per locked
// package with package_name, version, cksum".
type Pin struct {
	PackageName string `toml:"package_name"`
	Version     string `toml:"version"`
	Cksum       string `toml:"cksum"`
}

// LockFile is the canonical on-disk form: a fingerprint of the root
// manifest's dependency closure, plus the pinned packages it resolved to.
// Encode/Decode round-trip this shape via TOML.
type LockFile struct {
	Fingerprint string `toml:"fingerprint"`
	Package     []Pin  `toml:"package"`
}

// byKey sorts Pins lexicographically on name, tie-broken by version.
type byKey []Pin

func (p byKey) Len() int      { return len(p) }
func (p byKey) Swap(i, j int) { p[i], p[j] = p[j], p[i] }
func (p byKey) Less(i, j int) bool {
	if p[i].PackageName != p[j].PackageName {
		return p[i].PackageName < p[j].PackageName
	}
	return p[i].Version < p[j].Version
}

var _ sort.Interface = (*byKey)(nil)

// FromResolved converts a resolver's Lockfile into the on-disk LockFile
// shape, computing the fingerprint from root.
func FromResolved(root *manifest.Manifest, resolved *resolve.Lockfile) *LockFile {
	lf := &LockFile{Fingerprint: Fingerprint(root)}
	for _, pin := range resolved.Pins {
		lf.Package = append(lf.Package, Pin{PackageName: pin.Name, Version: pin.Version, Cksum: pin.Cksum})
	}
	sort.Sort(byKey(lf.Package))
	return lf
}

// Fingerprint hashes the root manifest's dependency closure (name and
// predicate of every direct dependency, sorted for determinism) so a stored
// lockfile can be checked for staleness against the manifest that produced
// it without re-running the resolver.
func Fingerprint(root *manifest.Manifest) string {
	deps := make([]string, 0, len(root.Dependencies))
	for _, d := range root.Dependencies {
		deps = append(deps, d.Name.String()+" "+d.Predicate)
	}
	sort.Strings(deps)
	sum := sha256.Sum256([]byte(strings.Join(deps, "\n")))
	return hex.EncodeToString(sum[:])
}

// Encode writes lf's canonical TOML-tabular form to w.
func (lf *LockFile) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	if err := enc.Encode(lf); err != nil {
		return errors.Wrap(err, "encoding lockfile")
	}
	return nil
}

// Decode parses a LockFile from its canonical TOML form.
func Decode(r io.Reader) (*LockFile, error) {
	var lf LockFile
	dec := toml.NewDecoder(r)
	if err := dec.Decode(&lf); err != nil {
		return nil, &plowerr.ResolverError{Kind: plowerr.InvalidLockFile, Detail: err.Error()}
	}
	return &lf, nil
}

// ValidateFingerprint rejects lf if its embedded fingerprint no longer
// matches root's current dependency closure, which marks the lock stale.
func (lf *LockFile) ValidateFingerprint(root *manifest.Manifest) error {
	want := Fingerprint(root)
	if lf.Fingerprint != want {
		return &plowerr.ResolverError{
			Kind:   plowerr.InvalidLockFile,
			Detail: "lockfile fingerprint does not match the root manifest's current dependency closure",
		}
	}
	return nil
}

// ToResolved converts lf back into a resolve.Lockfile, e.g. for callers that
// want to reuse resolver-shaped pins read off disk without re-resolving.
func (lf *LockFile) ToResolved() *resolve.Lockfile {
	out := &resolve.Lockfile{}
	for _, p := range lf.Package {
		out.Pins = append(out.Pins, resolve.Pin{Name: p.PackageName, Version: p.Version, Cksum: p.Cksum})
	}
	return out
}
