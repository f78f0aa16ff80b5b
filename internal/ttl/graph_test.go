package ttl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphObjectsAndSubjects(t *testing.T) {
	g := &Graph{Triples: []Triple{
		{
			Subject:   Term{Kind: KindIRI, Value: "http://example.com/my-field/"},
			Predicate: Term{Kind: KindIRI, Value: "http://field33.com/ontologies/REGISTRY/packageName"},
			Object:    Term{Kind: KindLiteral, Value: "@ns/name"},
		},
		{
			Subject:   Term{Kind: KindIRI, Value: "http://example.com/my-field/"},
			Predicate: Term{Kind: KindIRI, Value: "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"},
			Object:    Term{Kind: KindIRI, Value: "http://www.w3.org/2002/07/owl#Ontology"},
		},
	}}

	names := g.Objects("http://example.com/my-field/", "http://field33.com/ontologies/REGISTRY/packageName")
	assert.Len(t, names, 1)
	assert.Equal(t, "@ns/name", names[0].Value)

	subjects := g.Subjects("http://www.w3.org/1999/02/22-rdf-syntax-ns#type", "http://www.w3.org/2002/07/owl#Ontology")
	assert.Len(t, subjects, 1)
	assert.Equal(t, "http://example.com/my-field/", subjects[0].Value)

	empty := g.Objects("http://example.com/other/", "whatever")
	assert.Empty(t, empty)
}
