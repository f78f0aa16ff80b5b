package ondisk

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plow-pm/plow/internal/plowpath"
	"github.com/plow-pm/plow/internal/registry"
)

const validField = `@prefix : <http://example.com/widget/> .
@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xml: <http://www.w3.org/XML/1998/namespace> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix registry: <http://field33.com/ontologies/REGISTRY/> .
@base <http://example.com/widget/> .

: a owl:Ontology ;
  registry:packageName "@ns/widget" ;
  registry:packageVersion "1.0.0" ;
  registry:ontologyFormatVersion "v1" ;
  registry:canonicalPrefix "widget" ;
  registry:licenseSPDX "MIT" .
`

func newTestRegistry() *Registry {
	fs := afero.NewMemMapFs()
	return New(fs, plowpath.UnsafeToAbsolutePath("/store"))
}

func TestSubmitWritesArtifactAndIndex(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()
	rec, err := reg.SubmitPackage(ctx, []byte(validField))
	require.NoError(t, err)

	bytes, err := reg.RetrievePackage(ctx, registry.PackageVersion{Name: rec.Name, Version: rec.Version})
	require.NoError(t, err)
	assert.Equal(t, []byte(validField), bytes)

	versions, err := reg.AllAvailableVersions(ctx, rec.Name)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, rec.Cksum, versions[0].Cksum)
}

func TestVerifyIntegrityCleanStore(t *testing.T) {
	reg := newTestRegistry()
	_, err := reg.SubmitPackage(context.Background(), []byte(validField))
	require.NoError(t, err)

	problems, err := reg.VerifyIntegrity()
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestVerifyIntegrityDetectsTamperedArtifact(t *testing.T) {
	reg := newTestRegistry()
	rec, err := reg.SubmitPackage(context.Background(), []byte(validField))
	require.NoError(t, err)

	path := reg.artifactPath(rec.Name, rec.Version)
	require.NoError(t, plowpath.WriteFile(reg.fs, path, []byte("tampered"), 0644))

	problems, err := reg.VerifyIntegrity()
	require.NoError(t, err)
	assert.NotEmpty(t, problems)
}
