package plowerr

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Severity classifies a single lint diagnostic.
type Severity int

// Diagnostic severities; Warning does not fail a LintSet run, Failure does.
const (
	Warning Severity = iota
	Failure
)

func (s Severity) String() string {
	if s == Failure {
		return "failure"
	}
	return "warning"
}

// Diagnostic is one lint rule's verdict against a field's manifest/graph.
type Diagnostic struct {
	Rule     string
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Rule, d.Message)
}

// LintFailure aggregates the Diagnostics (failures and any warnings) of a
// LintSet run that did not pass.
// It wraps a *multierror.Error so callers that only care about "did lint
// fail" can treat it as a plain error, while callers that render a report
// can walk Diagnostics directly in the order rules were declared.
type LintFailure struct {
	Diagnostics []Diagnostic
	merr        *multierror.Error
}

// NewLintFailure builds a LintFailure from the diagnostics of a run.
// Diagnostics with Severity Warning are kept for reporting but do not change
// the fact that the set as a whole either failed or did not: callers decide
// failure (via lint.Report.AllPassed) before constructing this type.
func NewLintFailure(diags []Diagnostic) *LintFailure {
	lf := &LintFailure{Diagnostics: diags}
	for _, d := range diags {
		lf.merr = multierror.Append(lf.merr, fmt.Errorf("%s", d.String()))
	}
	return lf
}

func (e *LintFailure) Error() string {
	if e.merr != nil {
		return e.merr.Error()
	}
	var b strings.Builder
	for _, d := range e.Diagnostics {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (e *LintFailure) Unwrap() error {
	if e.merr != nil {
		return e.merr.ErrorOrNil()
	}
	return nil
}

// Render is the uniform human-facing rendering of the report: one line
// per diagnostic, failures and warnings together, in rule order.
func (e *LintFailure) Render() string {
	var b strings.Builder
	for _, d := range e.Diagnostics {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
