// Package manifest converts a field's parsed Turtle document and RDF graph
// into the Manifest record the lint engine, resolver, and registry all
// consume.
package manifest

import "github.com/plow-pm/plow/internal/ontology"

// Dependency is a single registry:dependency annotation: a package name
// paired with the version predicate the depending field requires.
type Dependency struct {
	Name      ontology.Name
	Predicate string
}

// Manifest is the registry metadata extracted from a field.
type Manifest struct {
	PackageName           ontology.Name
	PackageVersion        string
	OntologyFormatVersion string
	CanonicalPrefix       string
	RootPrefix            string
	Base                  string
	Dependencies          []Dependency

	License     string
	LicenseSPDX string

	Homepage      string
	Repository    string
	Documentation string

	Categories       []string
	ShortDescription string
	RDFSLabel        string
	Authors          []string
}

// HasLicense reports whether at least one of the two licence annotations
// is present. Every publishable manifest must carry one.
func (m *Manifest) HasLicense() bool {
	return m.License != "" || m.LicenseSPDX != ""
}
