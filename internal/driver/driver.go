// Package driver implements the analysis pipeline's entrypoint: lex,
// parse, hook-walk, aggregate — spec.md §4.5's `analyze(path, bytes,
// config) → { ast?, diagnostics }` — plus the multi-file parallel
// wrapper spec.md §5 allows the CLI to use.
package driver

import (
	"github.com/xnacly/sqleibniz/internal/ast"
	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/hooks"
	"github.com/xnacly/sqleibniz/internal/lexer"
	"github.com/xnacly/sqleibniz/internal/parser"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
)

// Result is one file's analysis outcome.
type Result struct {
	FileID   source.FileID
	Path     string
	AST      *ast.Program
	Verdicts []diag.Verdict
}

// Analyze runs the full pipeline against a file already loaded into fs:
// lex, parse (parser.ParseFile itself reports NoContent/NoStatements per
// spec.md §4.2), then — if any hooks are configured — walk the resulting
// AST with a fresh hooks.Runtime. The pipeline is single-threaded and
// cooperative per file (spec.md §5): nothing here suspends internally.
func Analyze(fs *source.FileSet, id source.FileID, cfg *rules.Config) *Result {
	if cfg == nil {
		cfg = rules.NewConfig()
	}
	sink := diag.NewSink(cfg)
	file := fs.Get(id)

	lx := lexer.New(file, sink)
	prog := parser.ParseFile(id, lx, sink)

	if len(cfg.Hooks) > 0 {
		rt := hooks.New(cfg.Hooks, cfg.Budget, fs, sink)
		rt.Walk(prog)
	}

	return &Result{
		FileID:   id,
		Path:     file.Path,
		AST:      prog,
		Verdicts: sink.Evaluate(),
	}
}

// AnalyzeBytes adds an in-memory buffer to fs and analyzes it in one
// call — the driver is pure with respect to the filesystem, so callers
// (the CLI, the LSP façade, tests) are responsible for producing bytes.
func AnalyzeBytes(fs *source.FileSet, path string, content []byte, cfg *rules.Config) *Result {
	id := fs.AddVirtual(path, content)
	return Analyze(fs, id, cfg)
}
