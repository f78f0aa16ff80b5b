package lint

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/plow-pm/plow/internal/ontology"
	"github.com/plow-pm/plow/internal/ttl"
)

// MaxShortDescriptionLength bounds registry:shortDescription.
const MaxShortDescriptionLength = 280

// MaxLabelLength bounds rdfs:label.
const MaxLabelLength = 60

// BaseMatchesRootPrefix checks the `@base` directive (when present) equals
// the root `:` prefix's IRI.
func BaseMatchesRootPrefix() Lint {
	return &simpleLint{
		name: "BaseMatchesRootPrefix",
		desc: "@base directive matches the root prefix IRI",
		parallel: true,
		check: func(ctx *Context) Result {
			if !ctx.Doc.HasBase {
				return ok("no @base directive declared")
			}
			root, _ := ctx.Doc.RootPrefix()
			if ctx.Doc.Base != root {
				return fail(fmt.Sprintf("@base %q does not match root prefix %q", ctx.Doc.Base, root))
			}
			return ok("@base matches root prefix")
		},
	}
}

// ContainsOwlPrefixes checks every required OWL/RDF namespace prefix is declared.
func ContainsOwlPrefixes() Lint {
	return &simpleLint{
		name: "ContainsOwlPrefixes",
		desc: "required rdf/rdfs/xml/xsd/owl prefixes are declared",
		parallel: true,
		check: func(ctx *Context) Result {
			var missing []string
			for _, p := range ontology.RequiredPrefixes {
				if p == "registry" {
					continue
				}
				if _, ok := ctx.Doc.Prefixes[p]; !ok {
					missing = append(missing, p)
				}
			}
			if len(missing) > 0 {
				msgs := make([]string, len(missing))
				for i, p := range missing {
					msgs[i] = fmt.Sprintf("missing required prefix %q", p)
				}
				return fail(msgs...)
			}
			return ok("all required OWL prefixes present")
		},
	}
}

// ContainsRegistryPrefix checks the `registry:` prefix is declared.
func ContainsRegistryPrefix() Lint {
	return &simpleLint{
		name: "ContainsRegistryPrefix",
		desc: "registry: prefix is declared",
		parallel: true,
		check: func(ctx *Context) Result {
			if _, ok := ctx.Doc.Prefixes["registry"]; !ok {
				return fail("missing required prefix \"registry\"")
			}
			return ok("registry prefix present")
		},
	}
}

// HasOntologyDeclaration checks `(root rdf:type owl:Ontology)` appears exactly once.
func HasOntologyDeclaration() Lint {
	return &simpleLint{
		name: "HasOntologyDeclaration",
		desc: "root subject is declared as an owl:Ontology exactly once",
		parallel: true,
		check: func(ctx *Context) Result {
			root, hasRoot := ctx.Doc.RootPrefix()
			if !hasRoot {
				return fail("document has no root prefix")
			}
			subjects := ctx.Graph.Subjects(ontology.RDFType, ontology.OWLOntology)
			count := 0
			for _, s := range subjects {
				if s.Value == root {
					count++
				}
			}
			switch count {
			case 0:
				return fail("no `rdf:type owl:Ontology` statement for the root subject")
			case 1:
				return ok("ontology declaration present")
			default:
				return fail("root subject declared as owl:Ontology more than once")
			}
		},
	}
}

// HasOntologyFormatVersion checks ontologyFormatVersion == "v1".
func HasOntologyFormatVersion() Lint {
	return &simpleLint{
		name: "HasOntologyFormatVersion",
		desc: "registry:ontologyFormatVersion equals the supported version",
		parallel: true,
		check: func(ctx *Context) Result {
			v := ctx.Manifest.OntologyFormatVersion
			if v != ontology.OntologyFormatVersionCurrent {
				return fail(fmt.Sprintf("unsupported ontologyFormatVersion %q, expected %q", v, ontology.OntologyFormatVersionCurrent))
			}
			return ok("ontologyFormatVersion is current")
		},
	}
}

// HasRegistryPackageName checks packageName was extracted (and so already
// passed shape validation in the extractor).
func HasRegistryPackageName() Lint {
	return &simpleLint{
		name: "HasRegistryPackageName",
		desc: "registry:packageName is present and well-formed",
		parallel: true,
		check: func(ctx *Context) Result {
			if ctx.Manifest.PackageName.String() == "/" {
				return fail("packageName is empty")
			}
			return ok("packageName present")
		},
	}
}

// HasCanonicalPrefix checks canonicalPrefix is non-empty.
func HasCanonicalPrefix() Lint {
	return &simpleLint{
		name: "HasCanonicalPrefix",
		desc: "registry:canonicalPrefix is present",
		parallel: true,
		check: func(ctx *Context) Result {
			if ctx.Manifest.CanonicalPrefix == "" {
				return fail("canonicalPrefix is empty")
			}
			return ok("canonicalPrefix present")
		},
	}
}

var spdxShape = regexp.MustCompile(`^[A-Za-z0-9.+-]+(\s+(AND|OR)\s+[A-Za-z0-9.+-]+)*$`)

// ExistsRegistryLicense reports whether registry:license is present at all.
func ExistsRegistryLicense() Lint {
	return &simpleLint{
		name: "ExistsRegistryLicense",
		desc: "registry:license annotation is present",
		parallel: true,
		check: func(ctx *Context) Result {
			if ctx.Manifest.License == "" {
				return warn("registry:license is absent")
			}
			return ok("registry:license present")
		},
	}
}

// ExistsRegistryLicenseSPDX reports whether registry:licenseSPDX is present at all.
func ExistsRegistryLicenseSPDX() Lint {
	return &simpleLint{
		name: "ExistsRegistryLicenseSPDX",
		desc: "registry:licenseSPDX annotation is present",
		parallel: true,
		check: func(ctx *Context) Result {
			if ctx.Manifest.LicenseSPDX == "" {
				return warn("registry:licenseSPDX is absent")
			}
			return ok("registry:licenseSPDX present")
		},
	}
}

// HasRegistryLicense validates the free-text license value, when present, is
// non-blank.
func HasRegistryLicense() Lint {
	return &simpleLint{
		name: "HasRegistryLicense",
		desc: "registry:license, if present, is non-blank",
		parallel: true,
		check: func(ctx *Context) Result {
			if ctx.Manifest.License == "" {
				return ok("no registry:license to validate")
			}
			if strings.TrimSpace(ctx.Manifest.License) == "" {
				return fail("registry:license is blank")
			}
			return ok("registry:license is valid")
		},
	}
}

// HasRegistryLicenseSPDX validates the SPDX expression, when present, has a
// plausible syntactic shape. This is deliberately NOT a full SPDX
// license-expression parse (DESIGN.md Open Question decision) — the pack
// carries no SPDX grammar library and the expressions fields declare are
// simple single identifiers or AND/OR conjunctions.
func HasRegistryLicenseSPDX() Lint {
	return &simpleLint{
		name: "HasRegistryLicenseSPDX",
		desc: "registry:licenseSPDX, if present, has valid SPDX expression shape",
		parallel: true,
		check: func(ctx *Context) Result {
			if ctx.Manifest.LicenseSPDX == "" {
				return ok("no registry:licenseSPDX to validate")
			}
			if !spdxShape.MatchString(ctx.Manifest.LicenseSPDX) {
				return fail(fmt.Sprintf("registry:licenseSPDX %q is not a valid SPDX expression shape", ctx.Manifest.LicenseSPDX))
			}
			for _, o := range ctx.Graph.Objects(ctx.Manifest.RootPrefix, ontology.LicenseSPDX) {
				if o.Kind == ttl.KindLiteral && o.Lang != "" {
					return fail("registry:licenseSPDX must not carry a language tag")
				}
			}
			return ok("registry:licenseSPDX is valid")
		},
	}
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidRegistryHomepage validates homepage, when present, is an http(s) URL.
func ValidRegistryHomepage() Lint {
	return urlLint("ValidRegistryHomepage", "registry:homepage", func(m *Context) string { return m.Manifest.Homepage })
}

// ValidRegistryDocumentation validates documentation, when present, is an http(s) URL.
func ValidRegistryDocumentation() Lint {
	return urlLint("ValidRegistryDocumentation", "registry:documentation", func(m *Context) string { return m.Manifest.Documentation })
}

// ValidRegistryRepository validates repository, when present, is an http(s) URL.
func ValidRegistryRepository() Lint {
	return urlLint("ValidRegistryRepository", "registry:repository", func(m *Context) string { return m.Manifest.Repository })
}

func urlLint(name, field string, get func(*Context) string) Lint {
	return &simpleLint{
		name: name,
		desc: field + ", if present, is a valid http(s) URL",
		parallel: true,
		check: func(ctx *Context) Result {
			v := get(ctx)
			if v == "" {
				return ok("no " + field + " to validate")
			}
			if !validURL(v) {
				return fail(fmt.Sprintf("%s %q is not a valid http(s) URL", field, v))
			}
			return ok(field + " is valid")
		},
	}
}

// HasRegistryShortDescription checks length and, when present, an `@en`
// language tag on the literal — which requires consulting the graph
// directly since Manifest only keeps the lexical value.
func HasRegistryShortDescription() Lint {
	return &simpleLint{
		name: "HasRegistryShortDescription",
		desc: fmt.Sprintf("registry:shortDescription, if present, is <=%d chars with an @en tag", MaxShortDescriptionLength),
		parallel: true,
		check: func(ctx *Context) Result {
			if ctx.Manifest.ShortDescription == "" {
				return ok("no registry:shortDescription to validate")
			}
			if len(ctx.Manifest.ShortDescription) > MaxShortDescriptionLength {
				return fail(fmt.Sprintf("registry:shortDescription exceeds %d characters", MaxShortDescriptionLength))
			}
			for _, o := range ctx.Graph.Objects(ctx.Manifest.RootPrefix, ontology.ShortDescription) {
				if o.Kind == ttl.KindLiteral && o.Lang != "en" {
					return fail("registry:shortDescription must carry an @en language tag")
				}
			}
			return ok("registry:shortDescription is valid")
		},
	}
}

// HasRdfsLabel checks length and language tag of the root subject's
// rdfs:label, ignoring labels attached to any other subject.
func HasRdfsLabel() Lint {
	return &simpleLint{
		name: "HasRdfsLabel",
		desc: fmt.Sprintf("root rdfs:label, if present, is <=%d chars with an @en tag", MaxLabelLength),
		parallel: true,
		check: func(ctx *Context) Result {
			if ctx.Manifest.RDFSLabel == "" {
				return ok("no rdfs:label on the root subject to validate")
			}
			if len(ctx.Manifest.RDFSLabel) > MaxLabelLength {
				return fail(fmt.Sprintf("rdfs:label exceeds %d characters", MaxLabelLength))
			}
			for _, tr := range ctx.Graph.TriplesWithPredicate(ontology.RDFSLabel) {
				if tr.Subject.Value == ctx.Manifest.RootPrefix && tr.Object.Kind == ttl.KindLiteral && tr.Object.Lang != "en" {
					return fail("root rdfs:label must carry an @en language tag")
				}
			}
			return ok("rdfs:label is valid")
		},
	}
}

// HasRegistryCategory checks declared categories are drawn from the closed
// vocabulary and do not exceed the maximum cardinality.
func HasRegistryCategory() Lint {
	return &simpleLint{
		name: "HasRegistryCategory",
		desc: fmt.Sprintf("registry:category values are from the closed vocabulary, at most %d", ontology.MaxCategories),
		parallel: true,
		check: func(ctx *Context) Result {
			if len(ctx.Manifest.Categories) == 0 {
				return ok("no categories declared")
			}
			if len(ctx.Manifest.Categories) > ontology.MaxCategories {
				return fail(fmt.Sprintf("%d categories declared, max is %d", len(ctx.Manifest.Categories), ontology.MaxCategories))
			}
			var invalid []string
			for _, c := range ctx.Manifest.Categories {
				if !ontology.IsValidCategory(c) {
					invalid = append(invalid, c)
				}
			}
			if len(invalid) > 0 {
				msgs := make([]string, len(invalid))
				for i, c := range invalid {
					msgs[i] = fmt.Sprintf("category %q is not in the closed vocabulary", c)
				}
				return fail(msgs...)
			}
			return ok("categories valid")
		},
	}
}
