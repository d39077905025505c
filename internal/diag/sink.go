package diag

import (
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
)

// Expectation is an in-source suppression range created by an
// "@sqleibniz::expect" instruction comment: every diagnostic whose
// primary span is fully enclosed by Span is suppressed, provided its
// identity matches Rule (empty Rule means ANY, per spec.md §3).
type Expectation struct {
	Span source.Span
	Rule string
}

// covers reports whether e's range fully encloses s, and whether e's rule
// filter (if any) matches identity.
func (e Expectation) covers(s source.Span, identity string) bool {
	if s.File != e.Span.File {
		return false
	}
	if s.Start < e.Span.Start || s.End > e.Span.End {
		return false
	}
	return e.Rule == "" || e.Rule == identity
}

// Verdict pairs an emitted Diagnostic with the suppression decision
// computed for it. Diagnostic itself is never mutated; Verdict is the
// caller-visible result of asking "should this render?".
type Verdict struct {
	Diagnostic
	Suppressed bool
}

// Sink collects diagnostics in emission order and holds the suppression
// inputs (globally disabled rules, in-source expectation ranges) needed
// to compute a Verdict for each at render time. It performs no rendering
// itself; internal/diagfmt and internal/lsp consume Evaluate's output.
type Sink struct {
	config       *rules.Config
	diags        []Diagnostic
	expectations []Expectation
}

func NewSink(config *rules.Config) *Sink {
	if config == nil {
		config = rules.NewConfig()
	}
	return &Sink{config: config}
}

// Emit records d in emission order. Suppression is not evaluated here.
func (s *Sink) Emit(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// AddExpectation registers an in-source suppression range.
func (s *Sink) AddExpectation(e Expectation) {
	s.expectations = append(s.expectations, e)
}

// Diagnostics returns the raw emitted diagnostics, in emission order,
// with no suppression applied.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diags
}

// Len reports how many diagnostics have been emitted so far.
func (s *Sink) Len() int {
	return len(s.diags)
}

func (s *Sink) isSuppressed(d Diagnostic) bool {
	identity := d.Identity()
	if s.config.IsDisabled(d.Rule) {
		return true
	}
	if d.Rule == rules.Hook && s.config.IsHookDisabled(d.HookName) {
		return true
	}
	for _, e := range s.expectations {
		if e.covers(d.Primary, identity) {
			return true
		}
	}
	return false
}

// Evaluate computes a Verdict for every emitted diagnostic, in emission
// order. Suppression is evaluated fresh each call, so registering more
// expectations between calls changes the outcome — this is what lets a
// renderer request "show suppressed as dim" without a second analysis
// pass.
func (s *Sink) Evaluate() []Verdict {
	out := make([]Verdict, len(s.diags))
	for i, d := range s.diags {
		out[i] = Verdict{Diagnostic: d, Suppressed: s.isSuppressed(d)}
	}
	return out
}

// Summary is the per-file {detected, ignored} count spec.md §4.3 requires
// at the end of a render pass.
type Summary struct {
	Detected int
	Ignored  int
}

// Summarize tallies detected (all emitted) and ignored (suppressed)
// counts across the given verdicts, split by file.
func Summarize(verdicts []Verdict) map[source.FileID]Summary {
	out := make(map[source.FileID]Summary)
	for _, v := range verdicts {
		sum := out[v.Primary.File]
		sum.Detected++
		if v.Suppressed {
			sum.Ignored++
		}
		out[v.Primary.File] = sum
	}
	return out
}
