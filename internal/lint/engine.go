package lint

import (
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/pyr-sh/dag"

	"github.com/plow-pm/plow/internal/plowerr"
)

// LintSet is a named, ordered collection of lints. The engine reports
// diagnostics in this insertion order regardless of completion order.
type LintSet struct {
	Name  string
	Lints []Lint
}

// Report is the outcome of running one LintSet.
type Report struct {
	SetName     string
	Results     map[string]Result
	Diagnostics []plowerr.Diagnostic
}

// AllPassed reports whether every lint in the set came back Success or
// Warning — Warning never fails a set.
func (r *Report) AllPassed() bool {
	for _, res := range r.Results {
		if res.Failed() {
			return false
		}
	}
	return true
}

// Engine runs LintSets against a Context.
type Engine struct{}

// NewEngine constructs an Engine. It carries no state: every run is a pure
// function of (set, ctx).
func NewEngine() *Engine { return &Engine{} }

// ruleGraph builds the sub-rule dependency graph of set: one vertex per
// lint name, one edge from each composite to every sub-rule it declares.
// An unknown sub-rule name or a cyclic declaration is rejected here, before
// anything runs.
func ruleGraph(set LintSet) (map[string]Lint, *dag.AcyclicGraph, error) {
	byName := make(map[string]Lint, len(set.Lints))
	g := &dag.AcyclicGraph{}
	for _, l := range set.Lints {
		if _, dup := byName[l.Name()]; dup {
			return nil, nil, errors.Errorf("lint set %s declares %s more than once", set.Name, l.Name())
		}
		byName[l.Name()] = l
		g.Add(l.Name())
	}
	for _, l := range set.Lints {
		for _, sub := range l.SubRules() {
			if _, ok := byName[sub]; !ok {
				return nil, nil, errors.Errorf("lint %s declares unknown sub-rule %s", l.Name(), sub)
			}
			g.Connect(dag.BasicEdge(l.Name(), sub))
		}
	}
	if cycles := g.Cycles(); len(cycles) > 0 {
		return nil, nil, errors.Errorf("lint set %s has cyclic sub-rule declarations", set.Name)
	}
	return byName, g, nil
}

// RunSet executes every lint in set against ctx. Execution is scheduled by
// walking the sub-rule dependency graph: a lint starts only after every
// sub-rule it declared has finished, so a composite — including one built
// on another composite — always receives its sub-rules' already-computed
// Results. Lints with no pending dependencies run concurrently when they
// are marked CanRunInParallel; the rest serialize on a shared guard.
// Composites never interrogate sibling lint values directly; the engine
// hands them a map built from real prior results.
func (e *Engine) RunSet(ctx *Context, set LintSet) (*Report, error) {
	byName, g, err := ruleGraph(set)
	if err != nil {
		return nil, err
	}

	results := make(map[string]Result, len(set.Lints))
	var resultsMu resultGuard
	var sequential sync.Mutex

	walkErrs := g.Walk(func(v dag.Vertex) error {
		l := byName[dag.VertexName(v)]
		if !l.CanRunInParallel() {
			sequential.Lock()
			defer sequential.Unlock()
		}
		var sub map[string]Result
		if names := l.SubRules(); names != nil {
			sub = make(map[string]Result, len(names))
			for _, name := range names {
				if res, ok := resultsMu.get(results, name); ok {
					sub[name] = res
				}
			}
		}
		res, err := l.Run(ctx, sub)
		if err != nil {
			return errors.Wrapf(err, "lint %s", l.Name())
		}
		resultsMu.set(results, l.Name(), res)
		return nil
	})
	if len(walkErrs) > 0 {
		return nil, multierror.Append(nil, walkErrs...)
	}

	report := &Report{SetName: set.Name, Results: results}
	for _, l := range set.Lints {
		res := results[l.Name()]
		if res.Kind == Success {
			continue
		}
		sev := plowerr.Warning
		if res.Kind == Failure {
			sev = plowerr.Failure
		}
		for _, msg := range res.Messages {
			report.Diagnostics = append(report.Diagnostics, plowerr.Diagnostic{
				Rule:     l.Name(),
				Severity: sev,
				Message:  msg,
			})
		}
	}
	return report, nil
}
