package lint

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/vk/pipeconf/internal/syntax"
)

// Severity ranks a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule names the check that produced a diagnostic.
type Rule string

const (
	RuleUnknownType      Rule = "unknown-type"
	RuleUnknownField     Rule = "unknown-field"
	RuleDisallowedValue  Rule = "disallowed-value"
	RuleRequiredField    Rule = "required-field"
	RuleRecommendedValue Rule = "recommended-value"
	RuleMissingInclude   Rule = "missing-include"
	RuleDataflowCycle    Rule = "dataflow-cycle"
)

// Diagnostic is one finding, located in a source file.
type Diagnostic struct {
	Severity Severity
	Rule     Rule
	Message  string
	Path     string
	Span     syntax.Span
}

// String formats d as `path:line:col: severity: message`, with one-based
// line and column.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.Path, d.Span.Line+1, d.Span.Start+1, d.Severity, d.Message)
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	return slices.ContainsFunc(diags, func(d Diagnostic) bool {
		return d.Severity == SeverityError
	})
}

// Count returns the number of diagnostics with severity s.
func Count(diags []Diagnostic, s Severity) int {
	n := 0
	for _, d := range diags {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// Sort orders diagnostics by location, then severity and message.
func Sort(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(a.Span.Line, b.Span.Line),
			cmp.Compare(a.Span.Start, b.Span.Start),
			cmp.Compare(a.Severity, b.Severity),
			cmp.Compare(a.Message, b.Message),
		)
	})
}
