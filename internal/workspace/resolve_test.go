package workspace

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plow-pm/plow/internal/manifest"
	"github.com/plow-pm/plow/internal/ontology"
	"github.com/plow-pm/plow/internal/plowpath"
	"github.com/plow-pm/plow/internal/registry/memory"
)

func rootManifest(t *testing.T, deps ...manifest.Dependency) *manifest.Manifest {
	t.Helper()
	name, err := ontology.ParseName("@ns/root")
	require.NoError(t, err)
	return &manifest.Manifest{PackageName: name, Dependencies: deps}
}

func dep(t *testing.T, name, predicate string) manifest.Dependency {
	t.Helper()
	n, err := ontology.ParseName(name)
	require.NoError(t, err)
	return manifest.Dependency{Name: n, Predicate: predicate}
}

func TestResolveWritesLockAndReusesItWhileFresh(t *testing.T) {
	reg := memory.New()
	ctx := context.Background()
	_, err := reg.SubmitPackage(ctx, []byte(validField))
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	root := abs(t, "/repo")
	m := rootManifest(t, dep(t, "@ns/widget", "=1.0.0"))

	lf, err := Resolve(ctx, fs, root, m, reg, false)
	require.NoError(t, err)
	require.Len(t, lf.Package, 1)
	assert.Equal(t, "@ns/widget", lf.Package[0].PackageName)
	assert.True(t, plowpath.FileExists(fs, root.Join(LockFileName)))

	// A second resolve against the unchanged manifest returns the stored
	// lock without touching the registry.
	again, err := Resolve(ctx, fs, root, m, memory.New(), false)
	require.NoError(t, err)
	assert.Equal(t, lf, again)
}

func TestResolveFrozenRequiresExistingLock(t *testing.T) {
	reg := memory.New()
	ctx := context.Background()
	_, err := reg.SubmitPackage(ctx, []byte(validField))
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	root := abs(t, "/repo")
	m := rootManifest(t, dep(t, "@ns/widget", "=1.0.0"))

	_, err = Resolve(ctx, fs, root, m, reg, true)
	assert.Error(t, err)

	_, err = Resolve(ctx, fs, root, m, reg, false)
	require.NoError(t, err)

	lf, err := Resolve(ctx, fs, root, m, reg, true)
	require.NoError(t, err)
	require.Len(t, lf.Package, 1)
}

func TestResolveFrozenRejectsStaleLock(t *testing.T) {
	reg := memory.New()
	ctx := context.Background()
	_, err := reg.SubmitPackage(ctx, []byte(validField))
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	root := abs(t, "/repo")

	_, err = Resolve(ctx, fs, root, rootManifest(t, dep(t, "@ns/widget", "=1.0.0")), reg, false)
	require.NoError(t, err)

	// Changing the dependency closure makes the stored lock stale.
	changed := rootManifest(t, dep(t, "@ns/widget", "^1.0.0"))
	_, err = Resolve(ctx, fs, root, changed, reg, true)
	assert.Error(t, err)
}
