// Package plowerr defines the structured error taxonomy used across the
// core: one Go type per failure kind, each carrying the minimum data
// needed to render a precise message and a uniform Render() for humans.
package plowerr

import "fmt"

// ManifestErrorKind enumerates the ways manifest extraction can fail.
type ManifestErrorKind int

// Manifest error kinds.
const (
	MissingAnnotation ManifestErrorKind = iota
	TooManyAnnotations
	NotLiteral
	InvalidPackageName
	InvalidPredicate
	MissingRootPrefix
)

func (k ManifestErrorKind) String() string {
	switch k {
	case MissingAnnotation:
		return "MissingAnnotation"
	case TooManyAnnotations:
		return "TooManyAnnotations"
	case NotLiteral:
		return "NotLiteral"
	case InvalidPackageName:
		return "InvalidPackageName"
	case InvalidPredicate:
		return "InvalidPredicate"
	case MissingRootPrefix:
		return "MissingRootPrefix"
	default:
		return "Unknown"
	}
}

// ManifestError reports a failure while extracting registry metadata from a
// field's RDF graph.
type ManifestError struct {
	Kind  ManifestErrorKind
	Field string // the annotation field involved, e.g. "packageName"
	Detail string
}

func (e *ManifestError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Render is the uniform human-facing rendering of the error.
func (e *ManifestError) Render() string {
	return e.Error()
}
