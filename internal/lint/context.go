// Package lint implements the composable rule engine: named
// rules run against a field's (document, graph, manifest) triple, each
// reporting an independent Success/Warning/Failure verdict that the engine
// aggregates into a LintFailure without ever aborting sibling lints.
package lint

import (
	"github.com/plow-pm/plow/internal/manifest"
	"github.com/plow-pm/plow/internal/ttl"
)

// Context is the read-only view every lint runs against. It is built once
// per field and shared across every lint in every set — lints must not
// mutate it.
type Context struct {
	Doc      *ttl.Document
	Graph    *ttl.Graph
	Manifest *manifest.Manifest
}
