package lockfile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plow-pm/plow/internal/manifest"
	"github.com/plow-pm/plow/internal/ontology"
	"github.com/plow-pm/plow/internal/resolve"
)

func mustName(t *testing.T, s string) ontology.Name {
	t.Helper()
	n, err := ontology.ParseName(s)
	require.NoError(t, err)
	return n
}

func TestFromResolvedSortsAndFingerprints(t *testing.T) {
	root := &manifest.Manifest{
		Dependencies: []manifest.Dependency{
			{Name: mustName(t, "@ns/beta"), Predicate: "^1.0.0"},
			{Name: mustName(t, "@ns/alpha"), Predicate: "^1.0.0"},
		},
	}
	resolved := &resolve.Lockfile{Pins: []resolve.Pin{
		{Name: "@ns/beta", Version: "1.0.0", Cksum: "bbb"},
		{Name: "@ns/alpha", Version: "1.0.0", Cksum: "aaa"},
	}}

	lf := FromResolved(root, resolved)
	require.Len(t, lf.Package, 2)
	assert.Equal(t, "@ns/alpha", lf.Package[0].PackageName)
	assert.Equal(t, "@ns/beta", lf.Package[1].PackageName)
	assert.NotEmpty(t, lf.Fingerprint)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	root := &manifest.Manifest{
		Dependencies: []manifest.Dependency{
			{Name: mustName(t, "@ns/alpha"), Predicate: "^1.0.0"},
		},
	}
	resolved := &resolve.Lockfile{Pins: []resolve.Pin{
		{Name: "@ns/alpha", Version: "1.0.0", Cksum: "aaa"},
	}}
	lf := FromResolved(root, resolved)

	var buf bytes.Buffer
	require.NoError(t, lf.Encode(&buf))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, lf.Fingerprint, got.Fingerprint)
	require.Len(t, got.Package, 1)
	assert.Equal(t, "@ns/alpha", got.Package[0].PackageName)
	assert.Equal(t, "aaa", got.Package[0].Cksum)
}

func TestValidateFingerprintDetectsStaleLock(t *testing.T) {
	root := &manifest.Manifest{
		Dependencies: []manifest.Dependency{
			{Name: mustName(t, "@ns/alpha"), Predicate: "^1.0.0"},
		},
	}
	resolved := &resolve.Lockfile{Pins: []resolve.Pin{
		{Name: "@ns/alpha", Version: "1.0.0", Cksum: "aaa"},
	}}
	lf := FromResolved(root, resolved)

	changedRoot := &manifest.Manifest{
		Dependencies: []manifest.Dependency{
			{Name: mustName(t, "@ns/alpha"), Predicate: "^2.0.0"},
		},
	}
	assert.Error(t, lf.ValidateFingerprint(changedRoot))
	assert.NoError(t, lf.ValidateFingerprint(root))
}

func TestToResolvedRoundTrip(t *testing.T) {
	lf := &LockFile{Package: []Pin{{PackageName: "@ns/alpha", Version: "1.0.0", Cksum: "aaa"}}}
	resolved := lf.ToResolved()
	require.Len(t, resolved.Pins, 1)
	assert.Equal(t, "@ns/alpha", resolved.Pins[0].Name)
}
