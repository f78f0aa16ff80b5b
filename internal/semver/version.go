// Package semver implements the field registry's version and predicate
// grammar: a strict major.minor.patch triple and Cargo-like caret/tilde/
// comparator predicates.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Version is a major.minor.patch triple, total-ordered lexicographically.
type Version struct {
	Major, Minor, Patch uint64
}

// Parse parses the exact "X.Y.Z" textual form.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, errors.Errorf("invalid semantic version %q: expected major.minor.patch", s)
	}
	nums := make([]uint64, 3)
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, errors.Wrapf(err, "invalid semantic version %q", s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String renders the canonical "X.Y.Z" form. Parse(v.String()) round-trips.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than other.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmpUint(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmpUint(v.Minor, other.Minor)
	default:
		return cmpUint(v.Patch, other.Patch)
	}
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

// Equal reports whether v and other denote the same version.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Collection implements sort.Interface, descending (greatest first); the
// resolver enumerates candidate versions high-to-low.
type Collection []Version

func (c Collection) Len() int           { return len(c) }
func (c Collection) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }
func (c Collection) Less(i, j int) bool { return c[j].Less(c[i]) }
