package hooks

import (
	"testing"
	"time"

	"github.com/xnacly/sqleibniz/internal/ast"
	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
	"github.com/xnacly/sqleibniz/internal/token"
	"go.starlark.net/starlark"
)

type recordingSink struct{ diags []diag.Diagnostic }

func (r *recordingSink) Emit(d diag.Diagnostic) { r.diags = append(r.diags, d) }

func compileHook(t *testing.T, src string, fnName string) starlark.Callable {
	t.Helper()
	thread := &starlark.Thread{Name: "compile"}
	globals, err := starlark.ExecFile(thread, "hook.star", src, nil)
	if err != nil {
		t.Fatalf("compiling hook script: %v", err)
	}
	fn, ok := globals[fnName].(starlark.Callable)
	if !ok {
		t.Fatalf("expected global %s to be callable, got %v", fnName, globals[fnName])
	}
	return fn
}

func identToken(id source.FileID, text string, start uint32) token.Token {
	return token.Token{
		Kind: token.Ident,
		Text: text,
		Span: source.Span{File: id, Start: start, End: start + uint32(len(text))},
	}
}

// TestHookRejectsUppercaseIdent is spec.md §8 scenario 6 verbatim: a
// "lower" hook on ident nodes that fails when content isn't all
// lowercase, run against `VACUUM MySchema;`, must yield exactly one
// Hook(lower) diagnostic anchored at the identifier.
func TestHookRejectsUppercaseIdent(t *testing.T) {
	fn := compileHook(t, "def lower(node):\n\tif node.content != node.content.lower():\n\t\tfail(\"identifier must be lowercase\")\n", "lower")

	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sql", []byte("VACUUM MySchema;"))
	schemaTok := identToken(id, "MySchema", 7)
	schema := ast.NewIdent(schemaTok)
	vacTok := token.Token{Kind: token.KwVacuum, Text: "VACUUM", Span: source.Span{File: id, Start: 0, End: 6}}
	prog := &ast.Program{Stmts: []ast.Node{ast.NewVacuum(vacTok, schema, nil)}}

	sink := &recordingSink{}
	rt := New([]rules.HookDescriptor{{Name: "lower", NodeKind: "ident", Body: fn}}, rules.DefaultHookBudget, fs, sink)
	rt.Walk(prog)

	if len(sink.diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %+v", len(sink.diags), sink.diags)
	}
	d := sink.diags[0]
	if d.Rule != rules.Hook || d.HookName != "lower" {
		t.Fatalf("expected Hook(lower), got rule=%v hook=%q", d.Rule, d.HookName)
	}
	if d.Primary != schema.Span() {
		t.Fatalf("expected diagnostic anchored at the identifier span, got %v want %v", d.Primary, schema.Span())
	}
}

func TestHookPassesOnLowercaseIdent(t *testing.T) {
	fn := compileHook(t, "def lower(node):\n\tif node.content != node.content.lower():\n\t\tfail(\"identifier must be lowercase\")\n", "lower")

	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sql", []byte("VACUUM myschema;"))
	schemaTok := identToken(id, "myschema", 7)
	schema := ast.NewIdent(schemaTok)
	vacTok := token.Token{Kind: token.KwVacuum, Text: "VACUUM", Span: source.Span{File: id, Start: 0, End: 6}}
	prog := &ast.Program{Stmts: []ast.Node{ast.NewVacuum(vacTok, schema, nil)}}

	sink := &recordingSink{}
	rt := New([]rules.HookDescriptor{{Name: "lower", NodeKind: "ident", Body: fn}}, rules.DefaultHookBudget, fs, sink)
	rt.Walk(prog)

	if len(sink.diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", sink.diags)
	}
}

// TestHookNodeKindMismatchIsNotInvoked confirms a hook registered
// against a different node kind never runs.
func TestHookNodeKindMismatchIsNotInvoked(t *testing.T) {
	fn := compileHook(t, "def always_fail(node):\n\tfail(\"nope\")\n", "always_fail")

	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sql", []byte("COMMIT;"))
	tok := token.Token{Kind: token.KwCommit, Text: "COMMIT", Span: source.Span{File: id, Start: 0, End: 6}}
	prog := &ast.Program{Stmts: []ast.Node{ast.NewCommit(tok)}}

	sink := &recordingSink{}
	rt := New([]rules.HookDescriptor{{Name: "always_fail", NodeKind: "ident", Body: fn}}, rules.DefaultHookBudget, fs, sink)
	rt.Walk(prog)

	if len(sink.diags) != 0 {
		t.Fatalf("expected no diagnostics, hook should not have been invoked, got %+v", sink.diags)
	}
}

// TestHookAnyNodeKindMatchesEveryNode confirms rules.AnyNodeKind runs a
// hook against every visited node, independent of kind.
func TestHookAnyNodeKindMatchesEveryNode(t *testing.T) {
	fn := compileHook(t, "def always_fail(node):\n\tfail(\"nope\")\n", "always_fail")

	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sql", []byte("COMMIT;\nCOMMIT;"))
	a1 := token.Token{Kind: token.KwCommit, Text: "COMMIT", Span: source.Span{File: id, Start: 0, End: 6}}
	a2 := token.Token{Kind: token.KwCommit, Text: "COMMIT", Span: source.Span{File: id, Start: 8, End: 14}}
	prog := &ast.Program{Stmts: []ast.Node{ast.NewCommit(a1), ast.NewCommit(a2)}}

	sink := &recordingSink{}
	rt := New([]rules.HookDescriptor{{Name: "always_fail", NodeKind: rules.AnyNodeKind, Body: fn}}, rules.DefaultHookBudget, fs, sink)
	rt.Walk(prog)

	if len(sink.diags) != 2 {
		t.Fatalf("expected one Hook(always_fail) diagnostic per Commit node, got %d: %+v", len(sink.diags), sink.diags)
	}
	for _, d := range sink.diags {
		if d.HookName != "always_fail" {
			t.Fatalf("expected always_fail diagnostic, got %q", d.HookName)
		}
	}
}

// TestHookIsolationAcrossHooks confirms one hook raising on a node
// never prevents an unrelated hook registered against the same node
// kind from running.
func TestHookIsolationAcrossHooks(t *testing.T) {
	failing := compileHook(t, "def always_fail(node):\n\tfail(\"nope\")\n", "always_fail")
	passing := compileHook(t, "def noop(node):\n\tpass\n", "noop")

	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sql", []byte("COMMIT;"))
	tok := token.Token{Kind: token.KwCommit, Text: "COMMIT", Span: source.Span{File: id, Start: 0, End: 6}}
	prog := &ast.Program{Stmts: []ast.Node{ast.NewCommit(tok)}}

	sink := &recordingSink{}
	rt := New([]rules.HookDescriptor{
		{Name: "always_fail", NodeKind: "commit", Body: failing},
		{Name: "noop", NodeKind: "commit", Body: passing},
	}, rules.DefaultHookBudget, fs, sink)
	rt.Walk(prog)

	if len(sink.diags) != 1 || sink.diags[0].HookName != "always_fail" {
		t.Fatalf("expected exactly one always_fail diagnostic, got %+v", sink.diags)
	}
}

// TestHookStepBudgetExhaustsFile confirms a hook that blows the step
// budget yields exactly one "hook exceeded budget" diagnostic and stops
// visiting the rest of the file, per spec.md §4.4.
func TestHookStepBudgetExhaustsFile(t *testing.T) {
	fn := compileHook(t, "def spin(node):\n\tx = 0\n\tfor i in range(1000000):\n\t\tx += 1\n", "spin")

	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sql", []byte("COMMIT;\nCOMMIT;"))
	a1 := token.Token{Kind: token.KwCommit, Text: "COMMIT", Span: source.Span{File: id, Start: 0, End: 6}}
	a2 := token.Token{Kind: token.KwCommit, Text: "COMMIT", Span: source.Span{File: id, Start: 8, End: 14}}
	prog := &ast.Program{Stmts: []ast.Node{ast.NewCommit(a1), ast.NewCommit(a2)}}

	budget := rules.HookBudget{Wall: time.Second, Steps: 100}
	sink := &recordingSink{}
	rt := New([]rules.HookDescriptor{{Name: "spin", NodeKind: rules.AnyNodeKind, Body: fn}}, budget, fs, sink)
	rt.Walk(prog)

	if len(sink.diags) != 1 {
		t.Fatalf("expected exactly one diagnostic (budget stops the whole walk), got %d: %+v", len(sink.diags), sink.diags)
	}
	if sink.diags[0].Message != "hook exceeded budget" {
		t.Fatalf("expected budget-exceeded message, got %q", sink.diags[0].Message)
	}
}

// TestHookWallClockBudgetExhaustsFile confirms the wall-clock path
// (a hook that busy-loops without tripping the step counter, e.g. one
// dominated by native Starlark builtin work) is also caught.
func TestHookWallClockBudgetExhaustsFile(t *testing.T) {
	fn := compileHook(t, "def spin(node):\n\tfor i in range(100000000):\n\t\tpass\n", "spin")

	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sql", []byte("COMMIT;"))
	tok := token.Token{Kind: token.KwCommit, Text: "COMMIT", Span: source.Span{File: id, Start: 0, End: 6}}
	prog := &ast.Program{Stmts: []ast.Node{ast.NewCommit(tok)}}

	budget := rules.HookBudget{Wall: 10 * time.Millisecond, Steps: 500_000_000}
	sink := &recordingSink{}
	rt := New([]rules.HookDescriptor{{Name: "spin", NodeKind: rules.AnyNodeKind, Body: fn}}, budget, fs, sink)
	rt.Walk(prog)

	if len(sink.diags) != 1 || sink.diags[0].Message != "hook exceeded budget" {
		t.Fatalf("expected exactly one budget-exceeded diagnostic, got %+v", sink.diags)
	}
}

func TestProjectionExposesKindContentChildren(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sql", []byte("VACUUM myschema;"))
	schemaTok := identToken(id, "myschema", 7)
	schema := ast.NewIdent(schemaTok)
	vacTok := token.Token{Kind: token.KwVacuum, Text: "VACUUM", Span: source.Span{File: id, Start: 0, End: 15}}
	vac := ast.NewVacuum(vacTok, schema, nil)

	proj := newProjection(vac, fs)
	kind, err := proj.Attr("kind")
	if err != nil || kind.(starlark.String) != "vacuum" {
		t.Fatalf("expected kind=vacuum, got %v err=%v", kind, err)
	}

	children, err := proj.Attr("children")
	if err != nil {
		t.Fatalf("children: %v", err)
	}
	list, ok := children.(*starlark.List)
	if !ok || list.Len() != 1 {
		t.Fatalf("expected one child, got %v", children)
	}
	child, ok := list.Index(0).(*projection)
	if !ok {
		t.Fatalf("expected child to be a projection, got %T", list.Index(0))
	}
	content, err := child.Attr("content")
	if err != nil || content.(starlark.String) != "myschema" {
		t.Fatalf("expected child content=myschema, got %v err=%v", content, err)
	}
}
