package ttl

// Triple is one (subject, predicate, object) RDF statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// Graph is the resolved-IRI view of a Turtle document: every prefixed name
// has been expanded to its full IRI. Lints and the metadata extractor read
// this view exclusively; it is immutable after Parse returns, so lints
// can read it concurrently by shared reference.
type Graph struct {
	Triples []Triple
}

// Objects returns the object of every triple matching (subjectIRI, predicateIRI).
func (g *Graph) Objects(subjectIRI, predicateIRI string) []Term {
	var out []Term
	for _, tr := range g.Triples {
		if tr.Subject.IsIRI(subjectIRI) && tr.Predicate.IsIRI(predicateIRI) {
			out = append(out, tr.Object)
		}
	}
	return out
}

// Subjects returns the subject of every triple matching (predicateIRI, objectIRI),
// used e.g. to find the subject(s) declared as `rdf:type owl:Ontology`.
func (g *Graph) Subjects(predicateIRI, objectIRI string) []Term {
	var out []Term
	for _, tr := range g.Triples {
		if tr.Predicate.IsIRI(predicateIRI) && tr.Object.IsIRI(objectIRI) {
			out = append(out, tr.Subject)
		}
	}
	return out
}

// TriplesWithPredicate returns every triple using the given predicate IRI,
// used by lints that need the subject as well as the object (e.g. the
// rdfs:label lint, which must ignore labels on non-ontology subjects).
func (g *Graph) TriplesWithPredicate(predicateIRI string) []Triple {
	var out []Triple
	for _, tr := range g.Triples {
		if tr.Predicate.IsIRI(predicateIRI) {
			out = append(out, tr)
		}
	}
	return out
}
