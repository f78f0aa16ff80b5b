package manifest

import (
	"regexp"
	"strings"

	"github.com/plow-pm/plow/internal/ontology"
	"github.com/plow-pm/plow/internal/plowerr"
)

var dependencyLine = regexp.MustCompile(`^(\s*)registry:dependency\s+"([^"]+)"\s*([;.])\s*$`)
var statementTerminator = regexp.MustCompile(`\s*([;.])\s*$`)

// AddDependency inserts a registry:dependency annotation for dep (of form
// `@ns/name PREDICATE`) into source, next to the existing dependency
// annotations, or after registry:packageName when the field has none yet.
// The edit is textual: everything else in the document, including
// formatting and comments, is left untouched.
func AddDependency(source []byte, dep Dependency) ([]byte, error) {
	lines := strings.Split(string(source), "\n")
	anchor := -1
	for i, line := range lines {
		if dependencyLine.MatchString(line) {
			anchor = i
		}
	}
	if anchor == -1 {
		for i, line := range lines {
			if packageNameLine.MatchString(line) {
				anchor = i
				break
			}
		}
	}
	if anchor == -1 {
		return nil, &plowerr.ManifestError{Kind: plowerr.MissingAnnotation, Field: "packageName", Detail: "no annotation to anchor the new dependency to"}
	}

	indent := leadingWhitespace(lines[anchor])
	literal := indent + `registry:dependency "` + dep.Name.String() + " " + dep.Predicate + `"`
	if m := statementTerminator.FindStringSubmatch(lines[anchor]); m != nil && m[1] == "." {
		// The anchor closes the subject block; the new annotation takes
		// over the closing dot.
		lines[anchor] = statementTerminator.ReplaceAllString(lines[anchor], " ;")
		literal += " ."
	} else {
		literal += " ;"
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:anchor+1]...)
	out = append(out, literal)
	out = append(out, lines[anchor+1:]...)
	return []byte(strings.Join(out, "\n")), nil
}

// RemoveDependency deletes the registry:dependency annotation naming name
// from source. It fails when no such annotation is present.
func RemoveDependency(source []byte, name ontology.Name) ([]byte, error) {
	lines := strings.Split(string(source), "\n")
	removed := false
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		m := dependencyLine.FindStringSubmatch(line)
		if m == nil || !literalNames(m[2], name) {
			out = append(out, line)
			continue
		}
		removed = true
		if m[3] == "." {
			// The removed annotation closed the subject block; the previous
			// statement takes over the closing dot.
			for j := len(out) - 1; j >= 0; j-- {
				if t := statementTerminator.FindStringSubmatch(out[j]); t != nil && t[1] == ";" {
					out[j] = statementTerminator.ReplaceAllString(out[j], " .")
					break
				}
			}
		}
	}
	if !removed {
		return nil, &plowerr.ManifestError{Kind: plowerr.MissingAnnotation, Field: "dependency", Detail: name.String() + " is not a dependency of this field"}
	}
	return []byte(strings.Join(out, "\n")), nil
}

// UpdateDependency replaces the version predicate of the existing
// registry:dependency annotation naming dep.Name with dep.Predicate. It
// fails when no such annotation is present.
func UpdateDependency(source []byte, dep Dependency) ([]byte, error) {
	lines := strings.Split(string(source), "\n")
	updated := false
	for i, line := range lines {
		m := dependencyLine.FindStringSubmatch(line)
		if m == nil || !literalNames(m[2], dep.Name) {
			continue
		}
		lines[i] = m[1] + `registry:dependency "` + dep.Name.String() + " " + dep.Predicate + `" ` + m[3]
		updated = true
	}
	if !updated {
		return nil, &plowerr.ManifestError{Kind: plowerr.MissingAnnotation, Field: "dependency", Detail: dep.Name.String() + " is not a dependency of this field"}
	}
	return []byte(strings.Join(lines, "\n")), nil
}

// literalNames reports whether a dependency literal (`@ns/name PREDICATE`)
// refers to name.
func literalNames(literal string, name ontology.Name) bool {
	fields := strings.Fields(literal)
	return len(fields) > 0 && fields[0] == name.String()
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
