package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/xnacly/sqleibniz/internal/ast"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
	"github.com/xnacly/sqleibniz/internal/testkit"
	"github.com/xnacly/sqleibniz/internal/trace"
	"go.starlark.net/starlark"
)

func compileTestHook(t *testing.T, src, fnName string) starlark.Callable {
	t.Helper()
	thread := &starlark.Thread{Name: "compile"}
	globals, err := starlark.ExecFile(thread, "hook.star", src, nil)
	if err != nil {
		t.Fatalf("compiling hook script: %v", err)
	}
	fn, ok := globals[fnName].(starlark.Callable)
	if !ok {
		t.Fatalf("expected global %s to be callable", fnName)
	}
	return fn
}

func TestAnalyzeBytesEmptyFileYieldsNoContent(t *testing.T) {
	fs := source.NewFileSet()
	res := AnalyzeBytes(fs, "empty.sql", nil, rules.NewConfig())

	if len(res.AST.Stmts) != 0 {
		t.Fatalf("expected empty AST, got %d stmts", len(res.AST.Stmts))
	}
	if len(res.Verdicts) != 1 || res.Verdicts[0].Rule != rules.NoContent {
		t.Fatalf("expected exactly one NoContent verdict, got %v", res.Verdicts)
	}
}

func TestAnalyzeBytesValidStatementYieldsNoDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	res := AnalyzeBytes(fs, "ok.sql", []byte("VACUUM;"), rules.NewConfig())

	for _, v := range res.Verdicts {
		if !v.Suppressed {
			t.Fatalf("expected no diagnostics, got %+v", v)
		}
	}
	if len(res.AST.Stmts) != 1 {
		t.Fatalf("expected one statement, got %d", len(res.AST.Stmts))
	}
	if _, ok := res.AST.Stmts[0].(*ast.Vacuum); !ok {
		t.Fatalf("expected *ast.Vacuum, got %T", res.AST.Stmts[0])
	}
}

func TestAnalyzeProducesSpanInvariantCleanTrees(t *testing.T) {
	srcs := []string{
		"VACUUM;",
		"EXPLAIN QUERY PLAN COMMIT;",
		"DROP TABLE IF EXISTS main.t;",
		"BEGIN; COMMIT;",
	}
	for _, src := range srcs {
		fs := source.NewFileSet()
		res := AnalyzeBytes(fs, "ok.sql", []byte(src), rules.NewConfig())
		if err := testkit.CheckSpanInvariants(res.AST, fs.Get(res.FileID)); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}

func TestAnalyzeRunsHooksWhenConfigured(t *testing.T) {
	fn := compileTestHook(t, "def always_fail(node):\n\tfail(\"nope\")\n", "always_fail")

	fs := source.NewFileSet()
	cfg := rules.NewConfig()
	cfg.Hooks = []rules.HookDescriptor{{Name: "always_fail", NodeKind: "commit", Body: fn}}

	res := AnalyzeBytes(fs, "hook.sql", []byte("COMMIT;"), cfg)

	var sawHook bool
	for _, v := range res.Verdicts {
		if v.Rule == rules.Hook && v.HookName == "always_fail" {
			sawHook = true
		}
	}
	if !sawHook {
		t.Fatalf("expected a Hook(always_fail) verdict, got %+v", res.Verdicts)
	}
}

func TestAnalyzeFilesLoadsAndAnalyzesConcurrently(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 3)
	for i, src := range []string{"VACUUM;", "COMMIT;", "BEGIN;"} {
		p := filepath.Join(dir, string(rune('a'+i))+".sql")
		if err := os.WriteFile(p, []byte(src), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		paths[i] = p
	}

	fs := source.NewFileSet()
	results, err := AnalyzeFiles(context.Background(), fs, paths, rules.NewConfig(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, res := range results {
		if res == nil {
			t.Fatalf("result %d is nil", i)
		}
		for _, v := range res.Verdicts {
			if !v.Suppressed {
				t.Fatalf("expected no diagnostics for %s, got %+v", res.Path, v)
			}
		}
	}
}

func TestAnalyzeFilesEmitsDriverAndFileSpans(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 2)
	for i, src := range []string{"VACUUM;", "COMMIT;"} {
		p := filepath.Join(dir, string(rune('a'+i))+".sql")
		if err := os.WriteFile(p, []byte(src), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		paths[i] = p
	}

	tracer := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), tracer)

	fs := source.NewFileSet()
	if _, err := AnalyzeFiles(ctx, fs, paths, rules.NewConfig(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := tracer.Snapshot()
	var sawDriverSpan, sawFileSpan bool
	for _, ev := range events {
		switch ev.Scope {
		case trace.ScopeDriver:
			sawDriverSpan = true
		case trace.ScopeFile:
			sawFileSpan = true
		}
	}
	if !sawDriverSpan {
		t.Fatalf("expected a driver-scoped span, got %+v", events)
	}
	if !sawFileSpan {
		t.Fatalf("expected a file-scoped span per analyzed file, got %+v", events)
	}
}

func TestCacheRoundTripsVerdicts(t *testing.T) {
	fs := source.NewFileSet()
	cfg := rules.NewConfig()
	content := []byte("COMMIT")
	res := AnalyzeBytes(fs, "missing-semi.sql", content, cfg)

	c := NewCache()
	if _, ok := c.Get(content, cfg, res.FileID); ok {
		t.Fatalf("expected cache miss before Put")
	}
	c.Put(content, cfg, res.Verdicts)

	cached, ok := c.Get(content, cfg, res.FileID)
	if !ok {
		t.Fatalf("expected cache hit after Put")
	}
	if len(cached) != len(res.Verdicts) {
		t.Fatalf("expected %d cached verdicts, got %d", len(res.Verdicts), len(cached))
	}
	for i := range cached {
		if cached[i].Rule != res.Verdicts[i].Rule || cached[i].Message != res.Verdicts[i].Message {
			t.Fatalf("verdict %d mismatch: got %+v want %+v", i, cached[i], res.Verdicts[i])
		}
	}
}

func TestCacheMissesOnDifferentConfig(t *testing.T) {
	content := []byte("COMMIT;")
	c := NewCache()

	fs := source.NewFileSet()
	base := rules.NewConfig()
	res := AnalyzeBytes(fs, "a.sql", content, base)
	c.Put(content, base, res.Verdicts)

	disabled := rules.NewConfig()
	disabled.Disable(rules.Semicolon)
	if _, ok := c.Get(content, disabled, res.FileID); ok {
		t.Fatalf("expected cache miss under a different configuration digest")
	}
}
