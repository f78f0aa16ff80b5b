package plowerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManifestErrorRender(t *testing.T) {
	err := &ManifestError{Kind: TooManyAnnotations, Field: "packageName", Detail: "found 2, expected 1"}
	assert.Equal(t, "TooManyAnnotations: packageName: found 2, expected 1", err.Render())
}

func TestRegistryErrorWithoutPackage(t *testing.T) {
	err := &RegistryError{Kind: NetworkError, Detail: "timed out"}
	assert.Equal(t, "NetworkError: timed out", err.Error())
}

func TestResolverErrorRendersConflictFrontier(t *testing.T) {
	err := &ResolverError{
		Kind:    SolutionError,
		Package: "@ns/foo",
		Detail:  "no version satisfies all requirers",
		Conflicts: []ConflictEdge{
			{Requirer: "@ns/a", Package: "@ns/foo", Predicate: ">=1.0.0"},
			{Requirer: "@ns/b", Package: "@ns/foo", Predicate: "<1.0.0"},
		},
	}
	rendered := err.Render()
	assert.Contains(t, rendered, "@ns/a requires @ns/foo >=1.0.0")
	assert.Contains(t, rendered, "@ns/b requires @ns/foo <1.0.0")
}

func TestLintFailureAggregatesDiagnostics(t *testing.T) {
	lf := NewLintFailure([]Diagnostic{
		{Rule: "HasRegistryPackageName", Severity: Failure, Message: "missing"},
		{Rule: "ValidRegistryHomepage", Severity: Warning, Message: "not https"},
	})
	assert.Len(t, lf.Diagnostics, 2)
	assert.Contains(t, lf.Render(), "[failure] HasRegistryPackageName: missing")
	assert.Contains(t, lf.Render(), "[warning] ValidRegistryHomepage: not https")
	assert.Error(t, lf.Unwrap())
}

func TestConfigErrorRender(t *testing.T) {
	err := &ConfigError{Kind: ConfigNotFound, Path: "Plow.toml", Detail: "no such file"}
	assert.Equal(t, "ConfigNotFound: Plow.toml: no such file", err.Render())
}
