package lint

// DefaultSet is the standard validation set run by `plow lint` and required
// (a subset, see PublishSet) before a field can be submitted to a registry.
func DefaultSet() LintSet {
	return LintSet{
		Name: "default",
		Lints: []Lint{
			BaseMatchesRootPrefix(),
			ContainsOwlPrefixes(),
			ContainsRegistryPrefix(),
			HasOntologyDeclaration(),
			HasOntologyFormatVersion(),
			HasRegistryPackageName(),
			HasCanonicalPrefix(),
			ExistsRegistryLicense(),
			ExistsRegistryLicenseSPDX(),
			HasRegistryLicense(),
			HasRegistryLicenseSPDX(),
			HasAtLeastOneValidLicenseAnnotation(),
			ValidRegistryHomepage(),
			ValidRegistryDocumentation(),
			ValidRegistryRepository(),
			HasRegistryShortDescription(),
			HasRdfsLabel(),
			HasRegistryCategory(),
		},
	}
}

// PublishSet is the subset of DefaultSet a registry's submit_package
// capability enforces before accepting an artifact:
// structural validity and the package identity fields, but not the
// presentational ones (homepage/documentation/short description/label).
func PublishSet() LintSet {
	return LintSet{
		Name: "publish",
		Lints: []Lint{
			BaseMatchesRootPrefix(),
			ContainsOwlPrefixes(),
			ContainsRegistryPrefix(),
			HasOntologyDeclaration(),
			HasOntologyFormatVersion(),
			HasRegistryPackageName(),
			HasCanonicalPrefix(),
			ExistsRegistryLicense(),
			ExistsRegistryLicenseSPDX(),
			HasRegistryLicense(),
			HasRegistryLicenseSPDX(),
			HasAtLeastOneValidLicenseAnnotation(),
		},
	}
}
