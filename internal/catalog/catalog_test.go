package catalog

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plow-pm/plow/internal/plowpath"
	"github.com/plow-pm/plow/internal/workspace"
)

func TestRenderProducesOneURIPerPackage(t *testing.T) {
	set := &workspace.RetrievedPackageSet{Packages: []workspace.RetrievedPackage{
		{Name: "@ns/alpha", Version: "1.0.0", OntologyIRI: "http://example.com/alpha/", Path: plowpath.AbsolutePath("/repo/.plow/retrieved/alpha-1.0.0.ttl")},
		{Name: "@ns/beta", Version: "1.0.0", OntologyIRI: "http://example.com/beta/", Path: plowpath.AbsolutePath("/repo/.plow/retrieved/beta-1.0.0.ttl")},
	}}

	out := Render(set)
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`)
	assert.Contains(t, out, `<uri id="Added via plow" name="http://example.com/alpha/" uri="/repo/.plow/retrieved/alpha-1.0.0.ttl"/>`)
	assert.Contains(t, out, `<uri id="Added via plow" name="http://example.com/beta/" uri="/repo/.plow/retrieved/beta-1.0.0.ttl"/>`)
	assert.Contains(t, out, `</catalog>`)
}

func TestWriteWritesCatalogFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	root, err := plowpath.CheckedToAbsolutePath("/repo")
	require.NoError(t, err)
	set := &workspace.RetrievedPackageSet{}

	path, err := Write(fs, root, set)
	require.NoError(t, err)
	assert.Equal(t, "/repo/catalog-v001.xml", path.String())
	assert.True(t, plowpath.FileExists(fs, path))
}
