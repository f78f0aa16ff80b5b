package cmd

import (
	"github.com/spf13/afero"

	"github.com/plow-pm/plow/internal/manifest"
	"github.com/plow-pm/plow/internal/plowerr"
	"github.com/plow-pm/plow/internal/plowpath"
	"github.com/plow-pm/plow/internal/ttl"
)

// loadField reads path, parses it as Turtle, and extracts its manifest —
// the three artifacts every plow subcommand needs from a field file.
func loadField(fs afero.Fs, path plowpath.AbsolutePath) ([]byte, *ttl.Document, *ttl.Graph, *manifest.Manifest, error) {
	raw, err := plowpath.ReadFile(fs, path)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	doc, graph, err := ttl.Parse(raw)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	m, err := manifest.Extract(doc, graph)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return raw, doc, graph, m, nil
}

// resolveFieldPath returns the field file a subcommand should operate on:
// an explicit positional argument if given, otherwise the sole `.ttl`
// file directly in cwd. More than one candidate is an error; the user
// must name the field.
func resolveFieldPath(fs afero.Fs, cwd plowpath.AbsolutePath, args []string) (plowpath.AbsolutePath, error) {
	if len(args) > 0 {
		return plowpath.ResolveUnknownPath(cwd, args[0]), nil
	}
	entries, err := afero.ReadDir(fs, cwd.String())
	if err != nil {
		return "", err
	}
	var found plowpath.AbsolutePath
	count := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if len(e.Name()) > 4 && e.Name()[len(e.Name())-4:] == ".ttl" {
			found = cwd.Join(e.Name())
			count++
		}
	}
	if count != 1 {
		return "", &plowerr.ConfigError{Kind: plowerr.ConfigNotFound, Path: cwd.String(), Detail: "please provide a field (a valid .ttl file path); none or more than one .ttl file found in the current directory"}
	}
	return found, nil
}
