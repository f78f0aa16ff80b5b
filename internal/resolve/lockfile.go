// Package resolve implements the dependency resolver: given a root
// manifest and a registry, it selects one version per
// transitively-required package and emits a deterministic Lockfile.
package resolve

import "sort"

// Pin is one resolved (package, version) pair in a Lockfile.
type Pin struct {
	Name    string
	Version string
	Cksum   string
}

// Lockfile is the resolver's output: every transitive dependency pinned to
// exactly one version, ordered lexicographically on name with ties broken
// by version (ties shouldn't occur since
// a name resolves to one version, but the rule is kept for determinism if
// that invariant is ever violated upstream).
type Lockfile struct {
	Pins []Pin
}

func (l *Lockfile) sort() {
	sort.Slice(l.Pins, func(i, j int) bool {
		if l.Pins[i].Name != l.Pins[j].Name {
			return l.Pins[i].Name < l.Pins[j].Name
		}
		return l.Pins[i].Version < l.Pins[j].Version
	})
}
