package ontology

import (
	"regexp"

	"github.com/pkg/errors"
)

var packageNameComponent = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Name is a registry package name of shape `@<namespace>/<name>`.
type Name struct {
	namespace string // includes the leading `@`
	name      string
}

// ParseName validates and parses a full package name string.
func ParseName(full string) (Name, error) {
	slash := -1
	for i, r := range full {
		if r == '/' && slash == -1 {
			slash = i
		}
	}
	if slash == -1 {
		return Name{}, errors.Errorf("invalid package name %q: must consist of namespace and name separated by `/`", full)
	}
	namespace := full[:slash]
	name := full[slash+1:]

	if len(namespace) == 0 || namespace[0] != '@' {
		return Name{}, errors.Errorf("invalid package name %q: namespace must begin with `@`", full)
	}
	if !packageNameComponent.MatchString(namespace[1:]) {
		return Name{}, errors.Errorf("invalid package name %q: namespace must match [A-Za-z0-9_]+", full)
	}
	if !packageNameComponent.MatchString(name) {
		return Name{}, errors.Errorf("invalid package name %q: name must match [A-Za-z0-9_]+", full)
	}

	return Name{namespace: namespace, name: name}, nil
}

// Namespace returns the namespace component, including the leading `@`.
func (n Name) Namespace() string { return n.namespace }

// Short returns the name component (without namespace).
func (n Name) Short() string { return n.name }

// String renders the full `@namespace/name` form.
func (n Name) String() string {
	return n.namespace + "/" + n.name
}

// Equal reports whether two names refer to the same package.
func (n Name) Equal(other Name) bool {
	return n.namespace == other.namespace && n.name == other.name
}
