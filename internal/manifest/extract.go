package manifest

import (
	"strings"
	"unicode"

	"github.com/plow-pm/plow/internal/ontology"
	"github.com/plow-pm/plow/internal/plowerr"
	"github.com/plow-pm/plow/internal/semver"
	"github.com/plow-pm/plow/internal/ttl"
)

// Extract converts a parsed Turtle document and graph into a Manifest:
// locate the root prefix, pull each registry annotation off the root
// subject with its required cardinality, and parse dependency literals.
func Extract(doc *ttl.Document, graph *ttl.Graph) (*Manifest, error) {
	root, ok := doc.RootPrefix()
	if !ok {
		return nil, &plowerr.ManifestError{Kind: plowerr.MissingRootPrefix, Detail: "document declares no `:` prefix"}
	}

	m := &Manifest{RootPrefix: root, Base: doc.Base}

	name, err := exactlyOneLiteral(graph, root, ontology.PackageName, "packageName")
	if err != nil {
		return nil, err
	}
	pn, perr := ontology.ParseName(name)
	if perr != nil {
		return nil, &plowerr.ManifestError{Kind: plowerr.InvalidPackageName, Field: "packageName", Detail: perr.Error()}
	}
	m.PackageName = pn

	if m.PackageVersion, err = exactlyOneLiteral(graph, root, ontology.PackageVersion, "packageVersion"); err != nil {
		return nil, err
	}
	if _, verr := semver.Parse(m.PackageVersion); verr != nil {
		return nil, &plowerr.ManifestError{Kind: plowerr.NotLiteral, Field: "packageVersion", Detail: verr.Error()}
	}

	if m.OntologyFormatVersion, err = exactlyOneLiteral(graph, root, ontology.OntologyFormatVersion, "ontologyFormatVersion"); err != nil {
		return nil, err
	}
	if m.CanonicalPrefix, err = exactlyOneLiteral(graph, root, ontology.CanonicalPrefix, "canonicalPrefix"); err != nil {
		return nil, err
	}

	if m.License, err = zeroOrOneLiteral(graph, root, ontology.License, "license"); err != nil {
		return nil, err
	}
	if m.LicenseSPDX, err = zeroOrOneLiteral(graph, root, ontology.LicenseSPDX, "licenseSPDX"); err != nil {
		return nil, err
	}
	if m.Homepage, err = zeroOrOneLiteral(graph, root, ontology.Homepage, "homepage"); err != nil {
		return nil, err
	}
	if m.Repository, err = zeroOrOneLiteral(graph, root, ontology.Repository, "repository"); err != nil {
		return nil, err
	}
	if m.Documentation, err = zeroOrOneLiteral(graph, root, ontology.Documentation, "documentation"); err != nil {
		return nil, err
	}
	if m.ShortDescription, err = zeroOrOneLiteral(graph, root, ontology.ShortDescription, "shortDescription"); err != nil {
		return nil, err
	}

	m.Categories = manyLiterals(graph, root, ontology.Category)
	m.Authors = manyLiterals(graph, root, ontology.Author)

	for _, tr := range graph.TriplesWithPredicate(ontology.RDFSLabel) {
		if tr.Subject.IsIRI(root) {
			if m.RDFSLabel != "" {
				return nil, &plowerr.ManifestError{Kind: plowerr.TooManyAnnotations, Field: "rdfs:label", Detail: "root subject has more than one rdfs:label"}
			}
			m.RDFSLabel = tr.Object.Value
		}
	}

	for _, lit := range manyLiterals(graph, root, ontology.Dependency) {
		dep, derr := parseDependency(lit)
		if derr != nil {
			return nil, derr
		}
		m.Dependencies = append(m.Dependencies, dep)
	}

	return m, nil
}

// parseDependency splits a `registry:dependency` literal of the form
// "@ns/name PREDICATE" on its first whitespace run and parses both halves.
func parseDependency(lit string) (Dependency, error) {
	trimmed := strings.TrimSpace(lit)
	split := strings.IndexFunc(trimmed, unicode.IsSpace)
	if split < 0 {
		return Dependency{}, &plowerr.ManifestError{Kind: plowerr.InvalidPredicate, Field: "dependency", Detail: "expected \"@ns/name PREDICATE\", got " + lit}
	}
	fields := []string{trimmed[:split], trimmed[split:]}
	name, err := ontology.ParseName(strings.TrimSpace(fields[0]))
	if err != nil {
		return Dependency{}, &plowerr.ManifestError{Kind: plowerr.InvalidPackageName, Field: "dependency", Detail: err.Error()}
	}
	predRaw := strings.TrimSpace(fields[1])
	if _, perr := semver.ParsePredicate(predRaw); perr != nil {
		return Dependency{}, &plowerr.ManifestError{Kind: plowerr.InvalidPredicate, Field: "dependency", Detail: perr.Error()}
	}
	return Dependency{Name: name, Predicate: predRaw}, nil
}

// exactlyOneLiteral requires exactly one (root, predIRI, ?o) triple and
// returns its literal lexical value.
func exactlyOneLiteral(graph *ttl.Graph, root, predIRI, field string) (string, error) {
	objs := graph.Objects(root, predIRI)
	switch len(objs) {
	case 0:
		return "", &plowerr.ManifestError{Kind: plowerr.MissingAnnotation, Field: field, Detail: "required annotation absent"}
	case 1:
		if objs[0].Kind != ttl.KindLiteral {
			return "", &plowerr.ManifestError{Kind: plowerr.NotLiteral, Field: field, Detail: "value is not a literal"}
		}
		return objs[0].Value, nil
	default:
		return "", &plowerr.ManifestError{Kind: plowerr.TooManyAnnotations, Field: field, Detail: "expected exactly one value"}
	}
}

// zeroOrOneLiteral allows absence, but rejects more than one value.
func zeroOrOneLiteral(graph *ttl.Graph, root, predIRI, field string) (string, error) {
	objs := graph.Objects(root, predIRI)
	switch len(objs) {
	case 0:
		return "", nil
	case 1:
		if objs[0].Kind != ttl.KindLiteral {
			return "", &plowerr.ManifestError{Kind: plowerr.NotLiteral, Field: field, Detail: "value is not a literal"}
		}
		return objs[0].Value, nil
	default:
		return "", &plowerr.ManifestError{Kind: plowerr.TooManyAnnotations, Field: field, Detail: "expected at most one value"}
	}
}

// manyLiterals collects every literal value for (root, predIRI, ?o),
// skipping non-literal objects rather than failing — used for the
// zero-or-many annotations (category, author, dependency).
func manyLiterals(graph *ttl.Graph, root, predIRI string) []string {
	var out []string
	for _, o := range graph.Objects(root, predIRI) {
		if o.Kind == ttl.KindLiteral {
			out = append(out, o.Value)
		}
	}
	return out
}
