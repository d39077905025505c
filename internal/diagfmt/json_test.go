package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/lexer"
	"github.com/xnacly/sqleibniz/internal/parser"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
)

func TestJSONRoundTripsDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.sql", []byte("EXPLAIN QUERY PLAN 25;"))
	cfg := rules.NewConfig()
	sink := diag.NewSink(cfg)
	lx := lexer.New(fs.Get(id), sink)
	parser.ParseFile(id, lx, sink)
	verdicts := sink.Evaluate()

	var buf bytes.Buffer
	if err := JSON(&buf, verdicts, fs, []source.FileID{id}, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if decoded.Count != len(decoded.Diagnostics) {
		t.Fatalf("count %d does not match diagnostics length %d", decoded.Count, len(decoded.Diagnostics))
	}
	if len(decoded.Diagnostics) == 0 {
		t.Fatalf("expected at least one diagnostic")
	}
	d := decoded.Diagnostics[0]
	if d.Rule != rules.Syntax.Name() {
		t.Fatalf("expected rule %q, got %q", rules.Syntax.Name(), d.Rule)
	}
	if d.Location.StartLine == 0 {
		t.Fatalf("expected positions to be included, got %+v", d.Location)
	}
	if len(decoded.Summaries) != 1 || decoded.Summaries[0].Detected != 1 {
		t.Fatalf("expected one file summary with one detected diagnostic, got %+v", decoded.Summaries)
	}
}

func TestJSONExcludesSuppressedByDefault(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.sql", []byte("EXPLAIN QUERY PLAN 25;"))
	cfg := rules.NewConfig()
	cfg.Disable(rules.Syntax)
	sink := diag.NewSink(cfg)
	lx := lexer.New(fs.Get(id), sink)
	parser.ParseFile(id, lx, sink)
	verdicts := sink.Evaluate()

	out := BuildDiagnosticsOutput(verdicts, fs, []source.FileID{id}, JSONOpts{})
	if out.Count != 0 {
		t.Fatalf("expected 0 rendered diagnostics with the rule disabled, got %d", out.Count)
	}

	withSuppressed := BuildDiagnosticsOutput(verdicts, fs, []source.FileID{id}, JSONOpts{IncludeSuppressed: true})
	if withSuppressed.Count == 0 {
		t.Fatalf("expected suppressed diagnostics to be included when requested")
	}
	if !withSuppressed.Diagnostics[0].Suppressed {
		t.Fatalf("expected the diagnostic to be marked suppressed")
	}
}

func TestMakeLocationOmitsPositionsWhenNotRequested(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.sql", []byte("VACUUM;"))
	loc := makeLocation(source.Span{File: id, Start: 0, End: 6}, fs, PathModeBasename, false)
	if loc.StartLine != 0 || loc.StartCol != 0 {
		t.Fatalf("expected zero line/col when positions are not requested, got %+v", loc)
	}
	if loc.File != "a.sql" {
		t.Fatalf("expected basename path, got %q", loc.File)
	}
}
