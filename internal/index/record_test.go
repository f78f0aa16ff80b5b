package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plow-pm/plow/internal/manifest"
	"github.com/plow-pm/plow/internal/ontology"
)

func TestFromManifestRequiresCksum(t *testing.T) {
	name, err := ontology.ParseName("@ns/widget")
	require.NoError(t, err)
	m := &manifest.Manifest{PackageName: name, PackageVersion: "1.0.0"}
	_, err = FromManifest(m, "")
	assert.Error(t, err)
}

func TestFromManifestConvertsDependencies(t *testing.T) {
	name, err := ontology.ParseName("@ns/widget")
	require.NoError(t, err)
	depName, err := ontology.ParseName("@ns/other")
	require.NoError(t, err)
	m := &manifest.Manifest{
		PackageName:    name,
		PackageVersion: "1.0.0",
		Dependencies:   []manifest.Dependency{{Name: depName, Predicate: "^1.0.0"}},
	}
	rec, err := FromManifest(m, "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, "@ns/widget", rec.Name)
	assert.Equal(t, "deadbeef", rec.Cksum)
	require.Len(t, rec.Deps, 1)
	assert.Equal(t, "@ns/other", rec.Deps[0].Name)
	assert.Equal(t, "^1.0.0", rec.Deps[0].Predicate)
}
