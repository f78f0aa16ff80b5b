package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plow-pm/plow/internal/manifest"
	"github.com/plow-pm/plow/internal/ontology"
	"github.com/plow-pm/plow/internal/plowerr"
	"github.com/plow-pm/plow/internal/registry/memory"
)

func field(name, version string, deps ...string) string {
	src := `@prefix : <http://example.com/` + name + `/> .
@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xml: <http://www.w3.org/XML/1998/namespace> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix registry: <http://field33.com/ontologies/REGISTRY/> .
@base <http://example.com/` + name + `/> .

: a owl:Ontology ;
  registry:packageName "` + name + `" ;
  registry:packageVersion "` + version + `" ;
  registry:ontologyFormatVersion "v1" ;
  registry:canonicalPrefix "p" ;
  registry:licenseSPDX "MIT" ;
`
	for _, d := range deps {
		src += `  registry:dependency "` + d + `" ;` + "\n"
	}
	src = src[:len(src)-2] + " .\n"
	return src
}

func mustName(t *testing.T, s string) ontology.Name {
	t.Helper()
	n, err := ontology.ParseName(s)
	require.NoError(t, err)
	return n
}

func TestResolveSimpleChain(t *testing.T) {
	reg := memory.New()
	ctx := context.Background()
	_, err := reg.SubmitPackage(ctx, []byte(field("@ns/leaf", "1.0.0")))
	require.NoError(t, err)
	_, err = reg.SubmitPackage(ctx, []byte(field("@ns/mid", "1.0.0", "@ns/leaf ^1.0.0")))
	require.NoError(t, err)

	root := &manifest.Manifest{
		PackageName: mustName(t, "@ns/root"),
		Dependencies: []manifest.Dependency{
			{Name: mustName(t, "@ns/mid"), Predicate: "^1.0.0"},
		},
	}

	r := New(reg)
	lf, err := r.Resolve(ctx, root)
	require.NoError(t, err)
	require.Len(t, lf.Pins, 2)
	assert.Equal(t, "@ns/leaf", lf.Pins[0].Name)
	assert.Equal(t, "1.0.0", lf.Pins[0].Version)
	assert.Equal(t, "@ns/mid", lf.Pins[1].Name)
}

func TestResolvePicksGreatestSatisfyingVersion(t *testing.T) {
	reg := memory.New()
	ctx := context.Background()
	for _, v := range []string{"1.0.0", "1.1.0", "1.2.0", "2.0.0"} {
		_, err := reg.SubmitPackage(ctx, []byte(field("@ns/leaf", v)))
		require.NoError(t, err)
	}

	root := &manifest.Manifest{
		PackageName: mustName(t, "@ns/root"),
		Dependencies: []manifest.Dependency{
			{Name: mustName(t, "@ns/leaf"), Predicate: "^1.0.0"},
		},
	}

	r := New(reg)
	lf, err := r.Resolve(ctx, root)
	require.NoError(t, err)
	require.Len(t, lf.Pins, 1)
	assert.Equal(t, "1.2.0", lf.Pins[0].Version)
}

func TestResolveBacktracksOnConflict(t *testing.T) {
	reg := memory.New()
	ctx := context.Background()
	_, err := reg.SubmitPackage(ctx, []byte(field("@ns/leaf", "1.0.0")))
	require.NoError(t, err)
	_, err = reg.SubmitPackage(ctx, []byte(field("@ns/leaf", "2.0.0")))
	require.NoError(t, err)
	_, err = reg.SubmitPackage(ctx, []byte(field("@ns/a", "1.0.0", "@ns/leaf >=2.0.0")))
	require.NoError(t, err)
	_, err = reg.SubmitPackage(ctx, []byte(field("@ns/b", "1.0.0", "@ns/leaf <2.0.0")))
	require.NoError(t, err)

	root := &manifest.Manifest{
		PackageName: mustName(t, "@ns/root"),
		Dependencies: []manifest.Dependency{
			{Name: mustName(t, "@ns/a"), Predicate: "^1.0.0"},
			{Name: mustName(t, "@ns/b"), Predicate: "^1.0.0"},
		},
	}

	r := New(reg)
	_, err = r.Resolve(ctx, root)
	require.Error(t, err)
}

func TestResolveDeterministicLockfileOrdering(t *testing.T) {
	reg := memory.New()
	ctx := context.Background()
	_, err := reg.SubmitPackage(ctx, []byte(field("@ns/alpha", "1.0.0")))
	require.NoError(t, err)
	_, err = reg.SubmitPackage(ctx, []byte(field("@ns/beta", "1.0.0")))
	require.NoError(t, err)

	root := &manifest.Manifest{
		PackageName: mustName(t, "@ns/root"),
		Dependencies: []manifest.Dependency{
			{Name: mustName(t, "@ns/beta"), Predicate: "^1.0.0"},
			{Name: mustName(t, "@ns/alpha"), Predicate: "^1.0.0"},
		},
	}

	r := New(reg)
	lf, err := r.Resolve(ctx, root)
	require.NoError(t, err)
	require.Len(t, lf.Pins, 2)
	assert.Equal(t, "@ns/alpha", lf.Pins[0].Name)
	assert.Equal(t, "@ns/beta", lf.Pins[1].Name)
}

func TestResolveCompatibleCycleSucceeds(t *testing.T) {
	reg := memory.New()
	ctx := context.Background()
	_, err := reg.SubmitPackage(ctx, []byte(field("@ns/a", "1.0.0", "@ns/b =1.0.0")))
	require.NoError(t, err)
	_, err = reg.SubmitPackage(ctx, []byte(field("@ns/b", "1.0.0", "@ns/a =1.0.0")))
	require.NoError(t, err)

	root := &manifest.Manifest{
		PackageName: mustName(t, "@ns/root"),
		Dependencies: []manifest.Dependency{
			{Name: mustName(t, "@ns/a"), Predicate: "=1.0.0"},
		},
	}

	r := New(reg)
	lf, err := r.Resolve(ctx, root)
	require.NoError(t, err)
	require.Len(t, lf.Pins, 2)
	assert.Equal(t, "@ns/a", lf.Pins[0].Name)
	assert.Equal(t, "1.0.0", lf.Pins[0].Version)
	assert.Equal(t, "@ns/b", lf.Pins[1].Name)
	assert.Equal(t, "1.0.0", lf.Pins[1].Version)
}

func TestResolveIncompatibleCycleFails(t *testing.T) {
	reg := memory.New()
	ctx := context.Background()
	_, err := reg.SubmitPackage(ctx, []byte(field("@ns/a", "1.0.0", "@ns/b =1.0.0")))
	require.NoError(t, err)
	_, err = reg.SubmitPackage(ctx, []byte(field("@ns/b", "1.0.0", "@ns/a >=2.0.0")))
	require.NoError(t, err)

	root := &manifest.Manifest{
		PackageName: mustName(t, "@ns/root"),
		Dependencies: []manifest.Dependency{
			{Name: mustName(t, "@ns/a"), Predicate: "=1.0.0"},
		},
	}

	r := New(reg)
	_, err = r.Resolve(ctx, root)
	require.Error(t, err)
	var rerr *plowerr.ResolverError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, plowerr.SolutionError, rerr.Kind)
	assert.Equal(t, "@ns/a", rerr.Package)
	require.Len(t, rerr.Conflicts, 2)
	predicates := []string{rerr.Conflicts[0].Predicate, rerr.Conflicts[1].Predicate}
	assert.Contains(t, predicates, "=1.0.0")
	assert.Contains(t, predicates, ">=2.0.0")
}

func TestResolveBacktracksToLowerCandidate(t *testing.T) {
	reg := memory.New()
	ctx := context.Background()
	_, err := reg.SubmitPackage(ctx, []byte(field("@ns/leaf", "1.0.0")))
	require.NoError(t, err)
	// The newest @ns/mid needs a @ns/leaf the registry doesn't carry; the
	// solver must fall back to @ns/mid 1.0.0 rather than give up.
	_, err = reg.SubmitPackage(ctx, []byte(field("@ns/mid", "1.1.0", "@ns/leaf >=2.0.0")))
	require.NoError(t, err)
	_, err = reg.SubmitPackage(ctx, []byte(field("@ns/mid", "1.0.0", "@ns/leaf ^1.0.0")))
	require.NoError(t, err)

	root := &manifest.Manifest{
		PackageName: mustName(t, "@ns/root"),
		Dependencies: []manifest.Dependency{
			{Name: mustName(t, "@ns/mid"), Predicate: "^1.0.0"},
		},
	}

	r := New(reg)
	lf, err := r.Resolve(ctx, root)
	require.NoError(t, err)
	require.Len(t, lf.Pins, 2)
	assert.Equal(t, "@ns/leaf", lf.Pins[0].Name)
	assert.Equal(t, "1.0.0", lf.Pins[0].Version)
	assert.Equal(t, "@ns/mid", lf.Pins[1].Name)
	assert.Equal(t, "1.0.0", lf.Pins[1].Version)
}
