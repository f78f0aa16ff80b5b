package lint

// HasAtLeastOneValidLicenseAnnotation is a composite rule over the four
// license sub-rules: it demands at least one of license/licenseSPDX exists,
// and where both exist, both must be individually valid. The rule declares
// its sub-rule names up front and the engine hands it their already-computed
// Results, so no sibling-lint lookup happens at run time.
func HasAtLeastOneValidLicenseAnnotation() Lint {
	subRules := []string{
		"ExistsRegistryLicense",
		"ExistsRegistryLicenseSPDX",
		"HasRegistryLicense",
		"HasRegistryLicenseSPDX",
	}
	return &compositeLint{
		name:     "HasAtLeastOneValidLicenseAnnotation",
		desc:     "at least one of registry:license / registry:licenseSPDX is present and valid",
		subRules: subRules,
		check: func(ctx *Context, sub map[string]Result) Result {
			existsLicense := sub["ExistsRegistryLicense"].Kind == Success
			existsSPDX := sub["ExistsRegistryLicenseSPDX"].Kind == Success
			validLicense := sub["HasRegistryLicense"]
			validSPDX := sub["HasRegistryLicenseSPDX"]

			if !existsLicense && !existsSPDX {
				return fail("neither registry:license nor registry:licenseSPDX is present")
			}
			if existsLicense && validLicense.Failed() {
				return fail(validLicense.Messages...)
			}
			if existsSPDX && validSPDX.Failed() {
				return fail(validSPDX.Messages...)
			}
			return ok("at least one valid license annotation present")
		},
	}
}
