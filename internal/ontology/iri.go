// Package ontology holds the registry vocabulary IRI constants and the
// canonical package-name grammar shared by the extractor, the lint engine,
// and the resolver.
package ontology

// Registry vocabulary IRIs, per the field33.com REGISTRY ontology.
const (
	RegistryPrefixIRI = "http://field33.com/ontologies/REGISTRY/"

	PackageName          = RegistryPrefixIRI + "packageName"
	PackageVersion       = RegistryPrefixIRI + "packageVersion"
	OntologyFormatVersion = RegistryPrefixIRI + "ontologyFormatVersion"
	CanonicalPrefix      = RegistryPrefixIRI + "canonicalPrefix"
	Dependency           = RegistryPrefixIRI + "dependency"
	License              = RegistryPrefixIRI + "license"
	LicenseSPDX          = RegistryPrefixIRI + "licenseSPDX"
	Homepage             = RegistryPrefixIRI + "homepage"
	Repository           = RegistryPrefixIRI + "repository"
	Documentation        = RegistryPrefixIRI + "documentation"
	Category             = RegistryPrefixIRI + "category"
	ShortDescription     = RegistryPrefixIRI + "shortDescription"
	Author               = RegistryPrefixIRI + "author"
)

// Core RDF/OWL vocabulary.
const (
	RDFType    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RDFSLabel  = "http://www.w3.org/2000/01/rdf-schema#label"
	OWLOntology = "http://www.w3.org/2002/07/owl#Ontology"
)

// RequiredPrefixes are the Turtle prefix names that every field must declare.
var RequiredPrefixes = []string{"rdf", "rdfs", "xml", "xsd", "owl", "registry"}

// OntologyFormatVersionCurrent is the only accepted value of
// registry:ontologyFormatVersion.
const OntologyFormatVersionCurrent = "v1"

// Categories is the closed vocabulary that registry:category values must
// be drawn from.
var Categories = []string{
	"general",
	"finance",
	"healthcare",
	"manufacturing",
	"logistics",
	"legal",
	"geography",
	"science",
	"technology",
	"organization",
	"event",
	"media",
	"government",
	"energy",
	"agriculture",
	"education",
}

// MaxCategories bounds the number of distinct categories a field may declare.
const MaxCategories = 5

// IsValidCategory reports whether v is a member of the closed category vocabulary.
func IsValidCategory(v string) bool {
	for _, c := range Categories {
		if c == v {
			return true
		}
	}
	return false
}
