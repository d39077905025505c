// Package diag defines the diagnostic record, the rule-suppression model
// (global disable set plus in-source expectation ranges), and a Sink that
// accepts diagnostics in emission order and resolves suppression at render
// time.
//
// The lexer, parser and hook runtime are all producers: they build a
// Diagnostic and hand it to a Sink. Nothing downstream of emission ever
// mutates a Diagnostic — suppression is a property computed about a
// diagnostic, not applied to it, so the same emitted set can be rendered
// once with suppressed entries hidden (CLI) and once with them shown dim
// (LSP hover, per spec.md §4.3).
package diag

import (
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
)

// Diagnostic is a single finding: rule identity, severity, the span it is
// anchored to, a message, and optional documentation/suggestion text.
// Diagnostics are immutable once constructed.
type Diagnostic struct {
	Rule rules.Rule
	// HookName is set only when Rule == rules.Hook; it names the specific
	// hook that produced the diagnostic, since Rule alone is not a unique
	// identity for the open Hook family.
	HookName string

	Severity Severity
	Primary  source.Span
	Message  string
	DocURL   string
	Notes    []string
	// Suggestion is a "did you mean X?" hint, populated by the parser for
	// UnknownKeyword diagnostics.
	Suggestion string
}

// Identity returns the diagnostic's suppression identity: the rule name,
// or "Hook(<name>)" for hook diagnostics, matching the wire form used by
// -D flags and expectation instructions.
func (d Diagnostic) Identity() string {
	if d.Rule == rules.Hook && d.HookName != "" {
		return "Hook(" + d.HookName + ")"
	}
	return d.Rule.Name()
}

func New(sev Severity, rule rules.Rule, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Rule: rule, Primary: primary, Message: msg}
}

func NewError(rule rules.Rule, primary source.Span, msg string) Diagnostic {
	return New(SevError, rule, primary, msg)
}

func NewWarning(rule rules.Rule, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, rule, primary, msg)
}

func NewHookError(hookName string, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: SevError, Rule: rules.Hook, HookName: hookName, Primary: primary, Message: msg}
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(d.Notes, msg)
	return d
}

func (d Diagnostic) WithDocURL(url string) Diagnostic {
	d.DocURL = url
	return d
}

func (d Diagnostic) WithSuggestion(s string) Diagnostic {
	d.Suggestion = s
	return d
}
