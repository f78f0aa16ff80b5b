package ttl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentPrefixesAndBase(t *testing.T) {
	source := []byte(`@prefix : <http://example.com/my-field/> .
@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix registry: <http://field33.com/ontologies/REGISTRY/> .
@base <http://example.com/my-field/> .
`)
	doc, err := parseDocument(source)
	require.NoError(t, err)

	root, ok := doc.RootPrefix()
	require.True(t, ok)
	assert.Equal(t, "http://example.com/my-field/", root)
	assert.Equal(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#", doc.Prefixes["rdf"])
	assert.True(t, doc.HasBase)
	assert.Equal(t, "http://example.com/my-field/", doc.Base)
}

func TestParseDocumentMissingRootPrefix(t *testing.T) {
	source := []byte(`@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
`)
	doc, err := parseDocument(source)
	require.NoError(t, err)
	_, ok := doc.RootPrefix()
	assert.False(t, ok)
}
