package resolve

import (
	"context"
	"sort"

	mapset "github.com/deckarep/golang-set"

	"github.com/plow-pm/plow/internal/manifest"
	"github.com/plow-pm/plow/internal/ontology"
	"github.com/plow-pm/plow/internal/plowerr"
	"github.com/plow-pm/plow/internal/registry"
	"github.com/plow-pm/plow/internal/semver"
)

// Resolver selects one version per transitively-required package against a
// Registry.
type Resolver struct {
	reg registry.Registry
}

// New constructs a Resolver over reg.
func New(reg registry.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// edge records one (requirer, predicate) contribution to a package's
// accumulated constraint, kept purely for SolutionError rendering.
type edge struct {
	requirer  string
	predicate string
}

// state is everything the solver mutates. It is small enough to deep-copy
// cheaply on every choice, which is what makes backtracking a plain
// snapshot-restore instead of an explicit per-field undo log.
type state struct {
	queue       []string
	inQueue     mapset.Set // of string, the working-set membership test for addEdge
	constraints map[string]semver.Predicate
	selected    map[string]semver.Version
	edges       map[string][]edge
}

func newState() *state {
	return &state{
		inQueue:     mapset.NewThreadUnsafeSet(),
		constraints: map[string]semver.Predicate{},
		selected:    map[string]semver.Version{},
		edges:       map[string][]edge{},
	}
}

func (s *state) clone() *state {
	c := &state{
		queue:       append([]string(nil), s.queue...),
		inQueue:     s.inQueue.Clone(),
		constraints: make(map[string]semver.Predicate, len(s.constraints)),
		selected:    make(map[string]semver.Version, len(s.selected)),
		edges:       make(map[string][]edge, len(s.edges)),
	}
	for k, v := range s.constraints {
		c.constraints[k] = v
	}
	for k, v := range s.selected {
		c.selected[k] = v
	}
	for k, v := range s.edges {
		c.edges[k] = append([]edge(nil), v...)
	}
	return c
}

func (s *state) addEdge(requirer, name string, pred semver.Predicate) {
	if existing, ok := s.constraints[name]; ok {
		s.constraints[name] = existing.Intersect(pred)
	} else {
		s.constraints[name] = pred
	}
	s.edges[name] = append(s.edges[name], edge{requirer: requirer, predicate: pred.String()})
	if !s.inQueue.Contains(name) {
		s.queue = append(s.queue, name)
		s.inQueue.Add(name)
	}
}

// choice is one point in the solver's decision tree: trying candidates for
// name, greatest-first, with the state snapshot to restore to before
// retrying the next-lower candidate.
type choice struct {
	name       string
	candidates []semver.Version
	tried      int
	before     *state
}

// Resolve builds a Lockfile pinning every transitive dependency of root:
// FIFO-by-insertion working set keyed by name,
// predicate intersection on repeated names, greatest-version-first
// selection with backtracking on dead ends.
func (r *Resolver) Resolve(ctx context.Context, root *manifest.Manifest) (*Lockfile, error) {
	st := newState()
	for _, dep := range root.Dependencies {
		pred, err := semver.ParsePredicate(dep.Predicate)
		if err != nil {
			return nil, &plowerr.ResolverError{Kind: plowerr.InvalidVersionPredicate, Package: dep.Name.String(), Detail: err.Error()}
		}
		st.addEdge(root.PackageName.String(), dep.Name.String(), pred)
	}

	var choices []choice

	for len(st.queue) > 0 {
		name := st.queue[0]
		st.queue = st.queue[1:]
		// Drop the membership mark so a later edge back to name (a
		// dependency cycle) re-enqueues it for a constraint re-check.
		st.inQueue.Remove(name)

		pred := st.constraints[name]

		if selectedVersion, already := st.selected[name]; already {
			if matches, err := pred.Matches(selectedVersion); err == nil && matches {
				// Cycle on a compatible predicate: the existing choice still
				// satisfies every requirer.
				continue
			}
		}

		candidates, err := r.candidatesFor(ctx, name, pred)
		if err != nil {
			return nil, err
		}

		if len(candidates) == 0 {
			restoredState, retryName, retryVersion, ok := backtrack(&choices)
			if !ok {
				return nil, conflictError(name, st.edges[name])
			}
			st = restoredState
			if err := r.apply(ctx, st, retryName, retryVersion); err != nil {
				return nil, err
			}
			continue
		}

		chosen := candidates[0]
		snapshot := st.clone()
		choices = append(choices, choice{name: name, candidates: candidates, tried: 0, before: snapshot})
		if err := r.apply(ctx, st, name, chosen); err != nil {
			return nil, err
		}
	}

	lf := &Lockfile{}
	for name, v := range st.selected {
		rec, err := r.reg.GetPackageVersionMetadata(ctx, registry.PackageVersion{Name: name, Version: v.String()})
		if err != nil {
			return nil, err
		}
		lf.Pins = append(lf.Pins, Pin{Name: name, Version: v.String(), Cksum: rec.Cksum})
	}
	lf.sort()
	return lf, nil
}

// candidatesFor returns every available version of name satisfying pred,
// greatest first.
func (r *Resolver) candidatesFor(ctx context.Context, name string, pred semver.Predicate) ([]semver.Version, error) {
	records, err := r.reg.AllAvailableVersions(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &plowerr.ResolverError{Kind: plowerr.NotFoundInRegistry, Package: name, Detail: "no versions available"}
	}
	var candidates semver.Collection
	for _, rec := range records {
		v, err := semver.Parse(rec.Version)
		if err != nil {
			continue
		}
		matches, err := pred.Matches(v)
		if err != nil {
			return nil, &plowerr.ResolverError{Kind: plowerr.InvalidVersionPredicate, Package: name, Detail: err.Error()}
		}
		if matches {
			candidates = append(candidates, v)
		}
	}
	sort.Sort(candidates)
	return candidates, nil
}

// apply selects version for name: records it, fetches its dependency edges
// from the registry, and enqueues/intersects them into st.
func (r *Resolver) apply(ctx context.Context, st *state, name string, version semver.Version) error {
	st.selected[name] = version
	rec, err := r.reg.GetPackageVersionMetadata(ctx, registry.PackageVersion{Name: name, Version: version.String()})
	if err != nil {
		return err
	}
	for _, dep := range rec.Deps {
		if _, err := ontology.ParseName(dep.Name); err != nil {
			return &plowerr.ResolverError{Kind: plowerr.InvalidLockFile, Package: name, Detail: err.Error()}
		}
		pred, err := semver.ParsePredicate(dep.Predicate)
		if err != nil {
			return &plowerr.ResolverError{Kind: plowerr.InvalidVersionPredicate, Package: dep.Name, Detail: err.Error()}
		}
		st.addEdge(name, dep.Name, pred)
	}
	return nil
}

// backtrack pops choices off the stack until it finds one with an
// untried, lower candidate. It restores that choice's pre-selection
// snapshot and hands back the name and the specific next candidate the
// caller must apply directly — never recomputed from scratch, since a
// fresh candidatesFor call against the restored state would just return
// the same already-exhausted candidate at its head. Returns ok=false once
// the stack is exhausted: no alternative solution exists.
func backtrack(choices *[]choice) (st *state, name string, version semver.Version, ok bool) {
	for len(*choices) > 0 {
		last := len(*choices) - 1
		c := (*choices)[last]
		if c.tried+1 < len(c.candidates) {
			next := c.tried + 1
			(*choices)[last].tried = next
			return c.before.clone(), c.name, c.candidates[next], true
		}
		*choices = (*choices)[:last]
	}
	return nil, "", semver.Version{}, false
}

func conflictError(name string, edges []edge) error {
	conflicts := make([]plowerr.ConflictEdge, 0, len(edges))
	for _, e := range edges {
		conflicts = append(conflicts, plowerr.ConflictEdge{Requirer: e.requirer, Package: name, Predicate: e.predicate})
	}
	return &plowerr.ResolverError{
		Kind:      plowerr.SolutionError,
		Package:   name,
		Detail:    "no version satisfies every requirer",
		Conflicts: conflicts,
	}
}
