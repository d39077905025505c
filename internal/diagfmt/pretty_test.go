package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/lexer"
	"github.com/xnacly/sqleibniz/internal/parser"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
)

func analyzeSrc(t *testing.T, src string) ([]diag.Verdict, *source.FileSet, source.FileID, *rules.Config) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.sql", []byte(src))
	cfg := rules.NewConfig()
	sink := diag.NewSink(cfg)
	lx := lexer.New(fs.Get(id), sink)
	parser.ParseFile(id, lx, sink)
	return sink.Evaluate(), fs, id, cfg
}

func TestPrettyRendersHeaderExcerptAndSummary(t *testing.T) {
	verdicts, fs, id, cfg := analyzeSrc(t, "EXPLAIN QUERY PLAN 25;")

	var buf bytes.Buffer
	Pretty(&buf, verdicts, fs, cfg, []source.FileID{id}, PrettyOpts{Context: 2})

	out := buf.String()
	if !strings.Contains(out, "bad.sql") {
		t.Fatalf("expected header naming the file, got:\n%s", out)
	}
	if !strings.Contains(out, "Syntax") {
		t.Fatalf("expected the Syntax rule identity rendered, got:\n%s", out)
	}
	if !strings.Contains(out, "~") {
		t.Fatalf("expected an underline marker, got:\n%s", out)
	}
	if !strings.Contains(out, "detected") || !strings.Contains(out, "ignored") {
		t.Fatalf("expected a detected/ignored summary line, got:\n%s", out)
	}
}

func TestPrettyOmitsSuppressedVerdicts(t *testing.T) {
	verdicts, fs, id, cfg := analyzeSrc(t, "EXPLAIN QUERY PLAN 25;")
	cfg.Disable(rules.Syntax)
	// Recompute suppression under the updated config.
	sink := diag.NewSink(cfg)
	for _, v := range verdicts {
		sink.Emit(v.Diagnostic)
	}
	verdicts = sink.Evaluate()

	var buf bytes.Buffer
	Pretty(&buf, verdicts, fs, cfg, []source.FileID{id}, PrettyOpts{Context: 2})

	out := buf.String()
	if strings.Contains(out, "Literal Number") {
		t.Fatalf("expected the suppressed diagnostic's message to be omitted, got:\n%s", out)
	}
	if !strings.Contains(out, "disabled rules: syntax") {
		t.Fatalf("expected a preamble naming the disabled rule, got:\n%s", out)
	}
}

func TestPrettyOnCleanFileYieldsOnlySummary(t *testing.T) {
	verdicts, fs, id, cfg := analyzeSrc(t, "VACUUM;")

	var buf bytes.Buffer
	Pretty(&buf, verdicts, fs, cfg, []source.FileID{id}, PrettyOpts{Context: 2})

	out := buf.String()
	if strings.Contains(out, "error") || strings.Contains(out, "warning") {
		t.Fatalf("expected no diagnostics rendered for a clean file, got:\n%s", out)
	}
	if !strings.Contains(out, "0 detected, 0 ignored") {
		t.Fatalf("expected a zero summary, got:\n%s", out)
	}
}

func TestBuildUnderlineWidthMatchesSpan(t *testing.T) {
	line := "VACUUM myschema;"
	start := source.LineCol{Line: 1, Col: 8}
	end := source.LineCol{Line: 1, Col: 16}
	underline := buildUnderline(line, start, end, 1)

	if got, want := len(underline), 7+8; got != want {
		t.Fatalf("expected underline of length %d (7 spaces + 8 tildes), got %d (%q)", want, got, underline)
	}
	if !strings.HasSuffix(underline, strings.Repeat("~", 8)) {
		t.Fatalf("expected 8 trailing tildes, got %q", underline)
	}
}
