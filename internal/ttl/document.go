package ttl

// Document is the syntactic view of a Turtle source: the prefix bindings
// and the `@base` directive, recovered by a line-oriented scan rather than
// a full grammar. Directives are regular enough (one per line,
// `@prefix ns: <iri> .`) that a scan suffices; everything else about the
// Turtle surface syntax stays inside the knakk/rdf decoder.
type Document struct {
	// Prefixes maps a prefix name to its bound IRI. The root/default
	// prefix (declared as `@prefix : <iri> .`) is keyed by the empty string.
	Prefixes map[string]string
	// Base holds the `@base <iri> .` directive value, or "" if absent.
	Base string
	// HasBase reports whether a `@base` directive was present at all,
	// distinguishing "absent" from "present with empty value".
	HasBase bool
}

// RootPrefix returns the IRI bound to the `:` prefix, and whether it was found.
func (d *Document) RootPrefix() (string, bool) {
	iri, ok := d.Prefixes[""]
	return iri, ok
}
