package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plow-pm/plow/internal/ontology"
	"github.com/plow-pm/plow/internal/ttl"
)

func literal(v string) ttl.Term { return ttl.Term{Kind: ttl.KindLiteral, Value: v} }
func iri(v string) ttl.Term     { return ttl.Term{Kind: ttl.KindIRI, Value: v} }

func baseGraph(root string) *ttl.Graph {
	return &ttl.Graph{Triples: []ttl.Triple{
		{Subject: iri(root), Predicate: iri(ontology.PackageName), Object: literal("@ns/widget")},
		{Subject: iri(root), Predicate: iri(ontology.PackageVersion), Object: literal("1.2.3")},
		{Subject: iri(root), Predicate: iri(ontology.OntologyFormatVersion), Object: literal("v1")},
		{Subject: iri(root), Predicate: iri(ontology.CanonicalPrefix), Object: literal("widget")},
		{Subject: iri(root), Predicate: iri(ontology.License), Object: literal("MIT")},
	}}
}

func baseDoc(root string) *ttl.Document {
	return &ttl.Document{Prefixes: map[string]string{"": root}, Base: root, HasBase: true}
}

func TestExtractHappyPath(t *testing.T) {
	root := "http://example.com/widget/"
	m, err := Extract(baseDoc(root), baseGraph(root))
	require.NoError(t, err)
	assert.Equal(t, "@ns/widget", m.PackageName.String())
	assert.Equal(t, "1.2.3", m.PackageVersion)
	assert.Equal(t, "v1", m.OntologyFormatVersion)
	assert.Equal(t, "widget", m.CanonicalPrefix)
	assert.True(t, m.HasLicense())
}

func TestExtractMissingRootPrefix(t *testing.T) {
	doc := &ttl.Document{Prefixes: map[string]string{}}
	_, err := Extract(doc, &ttl.Graph{})
	require.Error(t, err)
}

func TestExtractMissingPackageName(t *testing.T) {
	root := "http://example.com/widget/"
	graph := baseGraph(root)
	graph.Triples = graph.Triples[1:] // drop packageName
	_, err := Extract(baseDoc(root), graph)
	require.Error(t, err)
}

func TestExtractTooManyPackageNames(t *testing.T) {
	root := "http://example.com/widget/"
	graph := baseGraph(root)
	graph.Triples = append(graph.Triples, ttl.Triple{
		Subject: iri(root), Predicate: iri(ontology.PackageName), Object: literal("@ns/other"),
	})
	_, err := Extract(baseDoc(root), graph)
	require.Error(t, err)
}

func TestExtractDependencyLiteral(t *testing.T) {
	root := "http://example.com/widget/"
	graph := baseGraph(root)
	graph.Triples = append(graph.Triples, ttl.Triple{
		Subject: iri(root), Predicate: iri(ontology.Dependency), Object: literal("@ns/other ^1.0.0"),
	})
	m, err := Extract(baseDoc(root), graph)
	require.NoError(t, err)
	require.Len(t, m.Dependencies, 1)
	assert.Equal(t, "@ns/other", m.Dependencies[0].Name.String())
	assert.Equal(t, "^1.0.0", m.Dependencies[0].Predicate)
}

func TestExtractInvalidDependencyLiteral(t *testing.T) {
	root := "http://example.com/widget/"
	graph := baseGraph(root)
	graph.Triples = append(graph.Triples, ttl.Triple{
		Subject: iri(root), Predicate: iri(ontology.Dependency), Object: literal("not-a-valid-entry"),
	})
	_, err := Extract(baseDoc(root), graph)
	require.Error(t, err)
}

func TestExtractCategoriesAndAuthors(t *testing.T) {
	root := "http://example.com/widget/"
	graph := baseGraph(root)
	graph.Triples = append(graph.Triples,
		ttl.Triple{Subject: iri(root), Predicate: iri(ontology.Category), Object: literal("finance")},
		ttl.Triple{Subject: iri(root), Predicate: iri(ontology.Category), Object: literal("logistics")},
		ttl.Triple{Subject: iri(root), Predicate: iri(ontology.Author), Object: literal("Jane Doe")},
	)
	m, err := Extract(baseDoc(root), graph)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"finance", "logistics"}, m.Categories)
	assert.Equal(t, []string{"Jane Doe"}, m.Authors)
}
