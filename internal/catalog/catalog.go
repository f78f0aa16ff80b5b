// Package catalog emits the Protégé-compatible XML catalog file that
// resolves a workspace's retrieved packages to local filesystem paths.
package catalog

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/plow-pm/plow/internal/plowerr"
	"github.com/plow-pm/plow/internal/plowpath"
	"github.com/plow-pm/plow/internal/workspace"
)

// FileName is the fixed filename Protégé expects, per
// https://protegewiki.stanford.edu/wiki/Importing_Ontologies_in_P41.
const FileName = "catalog-v001.xml"

const sourceNote = "Added via plow"

const contentStart = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<catalog prefer="public" xmlns="urn:oasis:names:tc:entity:xmlns:xml:catalog">
<group id="Folder Repository, directory=, recursive=true, Auto-Update=true, version=2" prefer="public" xml:base=""/>`

const contentEnd = `</catalog>`

// Render builds the catalog file's content from set, one <uri> element per
// retrieved package. The document has exactly one repeating element and no
// attribute-escaping concerns, so it is assembled as literal text rather
// than through encoding/xml.
func Render(set *workspace.RetrievedPackageSet) string {
	var b strings.Builder
	b.WriteString(contentStart)
	b.WriteString("\n")
	for _, pkg := range set.Packages {
		b.WriteString(`<uri id="`)
		b.WriteString(sourceNote)
		b.WriteString(`" name="`)
		b.WriteString(pkg.OntologyIRI)
		b.WriteString(`" uri="`)
		b.WriteString(pkg.Path.String())
		b.WriteString(`"/>`)
		b.WriteString("\n")
	}
	b.WriteString(contentEnd)
	b.WriteString("\n")
	return b.String()
}

// Write renders set's catalog and writes it to workspaceDir/catalog-v001.xml.
func Write(fs afero.Fs, workspaceDir plowpath.AbsolutePath, set *workspace.RetrievedPackageSet) (plowpath.AbsolutePath, error) {
	path := workspaceDir.Join(FileName)
	contents := Render(set)
	if err := plowpath.WriteFile(fs, path, []byte(contents), 0644); err != nil {
		return "", &plowerr.CacheError{Kind: plowerr.CacheIOError, Key: path.String(), Detail: "writing catalog file", Cause: err}
	}
	return path, nil
}
