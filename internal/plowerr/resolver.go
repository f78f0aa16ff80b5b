package plowerr

import (
	"fmt"
	"strings"
)

// ResolverErrorKind enumerates dependency resolution failures.
type ResolverErrorKind int

// Resolver error kinds.
const (
	InvalidVersionPredicate ResolverErrorKind = iota
	InvalidLockFile
	NotFoundInRegistry
	SolutionError
)

func (k ResolverErrorKind) String() string {
	switch k {
	case InvalidVersionPredicate:
		return "InvalidVersionPredicate"
	case InvalidLockFile:
		return "InvalidLockFile"
	case NotFoundInRegistry:
		return "NotFoundInRegistry"
	case SolutionError:
		return "SolutionError"
	default:
		return "Unknown"
	}
}

// ConflictEdge records one requirer-to-predicate edge contributing to an
// unsatisfiable resolution, so SolutionError can render the whole frontier
// instead of just the first package that failed.
type ConflictEdge struct {
	Requirer  string
	Package   string
	Predicate string
}

// ResolverError reports a failure in the dependency resolution algorithm.
type ResolverError struct {
	Kind      ResolverErrorKind
	Package   string
	Detail    string
	Conflicts []ConflictEdge
}

func (e *ResolverError) Error() string {
	if len(e.Conflicts) == 0 {
		if e.Package != "" {
			return fmt.Sprintf("%s: %s: %s", e.Kind, e.Package, e.Detail)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %s\n", e.Kind, e.Package, e.Detail)
	for _, c := range e.Conflicts {
		fmt.Fprintf(&b, "  %s requires %s %s\n", c.Requirer, c.Package, c.Predicate)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Render is the uniform human-facing rendering of the error. For a
// SolutionError it lists every contributing requirer so the conflict
// frontier is visible at a glance, rather than only the first offender.
func (e *ResolverError) Render() string { return e.Error() }
