package semver

import (
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

// comparator is a single "OPvX.Y.Z" predicate term.
type comparator struct {
	op      string
	version Version
}

func (c comparator) String() string {
	return c.op + c.version.String()
}

func parseComparator(s string) (comparator, error) {
	s = strings.TrimSpace(s)
	for _, op := range []string{">=", "=", "^", "~", "<"} {
		if strings.HasPrefix(s, op) {
			v, err := Parse(strings.TrimPrefix(s, op))
			if err != nil {
				return comparator{}, errors.Wrapf(err, "invalid version predicate %q", s)
			}
			return comparator{op: op, version: v}, nil
		}
	}
	return comparator{}, errors.Errorf("invalid version predicate %q: unrecognized operator", s)
}

// Predicate is a conjunction of one or more comparator terms, e.g. `^1.2.3`
// or `>=1.0.0,<2.0.0`. Semantics follow Cargo: caret allows updates that do
// not modify the left-most non-zero component; tilde allows updates within
// the minor version.
type Predicate struct {
	terms []comparator
	// raw preserves the exact textual form so String() round-trips the
	// caller's spacing/ordering.
	raw string
}

// ParsePredicate parses a (possibly conjoined) predicate string.
func ParsePredicate(s string) (Predicate, error) {
	parts := strings.Split(s, ",")
	terms := make([]comparator, 0, len(parts))
	for _, p := range parts {
		c, err := parseComparator(p)
		if err != nil {
			return Predicate{}, err
		}
		terms = append(terms, c)
	}
	return Predicate{terms: terms, raw: s}, nil
}

// String renders the predicate's textual form.
func (p Predicate) String() string {
	return p.raw
}

// Intersect returns the conjunction of p and other: a version must satisfy
// both to satisfy the result. Used by the resolver when a package name is
// depended on from multiple places.
func (p Predicate) Intersect(other Predicate) Predicate {
	terms := make([]comparator, 0, len(p.terms)+len(other.terms))
	terms = append(terms, p.terms...)
	terms = append(terms, other.terms...)
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, t.String())
	}
	return Predicate{terms: terms, raw: strings.Join(parts, ",")}
}

// toConstraintString translates our comparator grammar into the syntax
// accepted by Masterminds/semver/v3 — the two grammars already agree on
// `^`/`~`/`>=`/`<`/`=` and comma-as-AND, so this is a direct transcription,
// not a semantic reinterpretation.
func (p Predicate) toConstraintString() string {
	parts := make([]string, 0, len(p.terms))
	for _, t := range p.terms {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ",")
}

// Matches reports whether v satisfies every term of the predicate.
func (p Predicate) Matches(v Version) (bool, error) {
	constraint, err := mmsemver.NewConstraint(p.toConstraintString())
	if err != nil {
		return false, errors.Wrapf(err, "invalid version predicate %q", p.raw)
	}
	mv, err := mmsemver.NewVersion(v.String())
	if err != nil {
		return false, errors.Wrapf(err, "invalid version %q", v)
	}
	return constraint.Check(mv), nil
}
