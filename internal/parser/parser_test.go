package parser

import (
	"testing"

	"github.com/xnacly/sqleibniz/internal/ast"
	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/lexer"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.Program, []diag.Verdict) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sql", []byte(src))
	sink := diag.NewSink(rules.NewConfig())
	lx := lexer.New(fs.Get(id), sink)
	prog := ParseFile(id, lx, sink)
	return prog, sink.Evaluate()
}

func TestScenario1EmptyFile(t *testing.T) {
	prog, verdicts := parseSrc(t, "")
	if len(prog.Stmts) != 0 {
		t.Fatalf("expected empty AST, got %d stmts", len(prog.Stmts))
	}
	if len(verdicts) != 1 || verdicts[0].Rule != rules.NoContent {
		t.Fatalf("expected exactly one NoContent diagnostic, got %v", verdicts)
	}
}

func TestScenario2OnlyComment(t *testing.T) {
	prog, verdicts := parseSrc(t, "-- only a comment\n")
	if len(prog.Stmts) != 0 {
		t.Fatalf("expected empty AST, got %d stmts", len(prog.Stmts))
	}
	if len(verdicts) != 1 || verdicts[0].Rule != rules.NoStatements {
		t.Fatalf("expected exactly one NoStatements diagnostic, got %v", verdicts)
	}
}

func TestScenario3ExplainQueryPlanLiteral(t *testing.T) {
	prog, verdicts := parseSrc(t, "EXPLAIN QUERY PLAN 25;")
	if len(verdicts) != 1 || verdicts[0].Rule != rules.Syntax {
		t.Fatalf("expected exactly one Syntax diagnostic, got %v", verdicts)
	}
	if len(verdicts[0].Notes) != 1 || verdicts[0].Notes[0] != "Literal Number(25.0) can not start a statement" {
		t.Fatalf("unexpected note: %v", verdicts[0].Notes)
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected outer Explain node in AST, got %d stmts", len(prog.Stmts))
	}
	explain, ok := prog.Stmts[0].(*ast.Explain)
	if !ok {
		t.Fatalf("expected *ast.Explain, got %T", prog.Stmts[0])
	}
	if !explain.QueryPlan {
		t.Fatalf("expected QueryPlan=true")
	}
	if explain.Child != nil {
		t.Fatalf("expected recovered/missing child, got %v", explain.Child)
	}
}

func TestScenario4ExpectSuppressesOnlyScopedStatement(t *testing.T) {
	src := "-- @sqleibniz::expect reason\nEXPLAIN 25;\nEXPLAIN QUERY PLAN 25;"
	_, verdicts := parseSrc(t, src)

	var visible []diag.Verdict
	for _, v := range verdicts {
		if !v.Suppressed {
			visible = append(visible, v)
		}
	}
	if len(visible) != 1 || visible[0].Rule != rules.Syntax {
		t.Fatalf("expected exactly one visible Syntax diagnostic, got %v", visible)
	}
}

func TestScenario5VacuumVariants(t *testing.T) {
	src := "EXPLAIN VACUUM;\nEXPLAIN QUERY PLAN VACUUM my_big_schema INTO 'repacked.db';"
	prog, verdicts := parseSrc(t, src)
	for _, v := range verdicts {
		if !v.Suppressed {
			t.Fatalf("expected zero diagnostics, got %v", v)
		}
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected two statements, got %d", len(prog.Stmts))
	}

	first, ok := prog.Stmts[0].(*ast.Explain)
	if !ok {
		t.Fatalf("expected *ast.Explain, got %T", prog.Stmts[0])
	}
	if _, ok := first.Child.(*ast.Vacuum); !ok {
		t.Fatalf("expected first Explain to wrap a Vacuum, got %T", first.Child)
	}

	second, ok := prog.Stmts[1].(*ast.Explain)
	if !ok {
		t.Fatalf("expected *ast.Explain, got %T", prog.Stmts[1])
	}
	vac, ok := second.Child.(*ast.Vacuum)
	if !ok {
		t.Fatalf("expected second Explain to wrap a Vacuum, got %T", second.Child)
	}
	if vac.Schema == nil || vac.Schema.Name() != "my_big_schema" {
		t.Fatalf("expected schema my_big_schema, got %v", vac.Schema)
	}
	if vac.Filename == nil || vac.Filename.Value != "repacked.db" {
		t.Fatalf("expected filename repacked.db, got %v", vac.Filename)
	}
}

func TestRecoveryLeavesFlankingStatementsIntact(t *testing.T) {
	good := "VACUUM;\n%%% garbage %%%;\nCOMMIT;"
	prog, verdicts := parseSrc(t, good)

	var syntaxCount int
	for _, v := range verdicts {
		if v.Rule == rules.Syntax {
			syntaxCount++
		}
	}
	if syntaxCount == 0 {
		t.Fatalf("expected at least one Syntax diagnostic from the garbage statement")
	}

	if len(prog.Stmts) < 2 {
		t.Fatalf("expected the flanking VACUUM/COMMIT statements to survive, got %d stmts", len(prog.Stmts))
	}
	if _, ok := prog.Stmts[0].(*ast.Vacuum); !ok {
		t.Fatalf("expected first surviving statement to be Vacuum, got %T", prog.Stmts[0])
	}
	last := prog.Stmts[len(prog.Stmts)-1]
	if _, ok := last.(*ast.Commit); !ok {
		t.Fatalf("expected last surviving statement to be Commit, got %T", last)
	}
}

func TestMissingSemicolonReportsSemicolonRule(t *testing.T) {
	_, verdicts := parseSrc(t, "COMMIT")
	found := false
	for _, v := range verdicts {
		if v.Rule == rules.Semicolon {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a Semicolon diagnostic, got %v", verdicts)
	}
}

func TestUnimplementedLeadRecovers(t *testing.T) {
	prog, verdicts := parseSrc(t, "SELECT 1;\nCOMMIT;")
	var sawUnimplemented bool
	for _, v := range verdicts {
		if v.Rule == rules.Unimplemented {
			sawUnimplemented = true
		}
	}
	if !sawUnimplemented {
		t.Fatalf("expected an Unimplemented diagnostic, got %v", verdicts)
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected both statements represented, got %d", len(prog.Stmts))
	}
	if _, ok := prog.Stmts[1].(*ast.Commit); !ok {
		t.Fatalf("expected second statement Commit, got %T", prog.Stmts[1])
	}
}

func TestUnknownKeywordLeadSuggestsClosestKeyword(t *testing.T) {
	prog, verdicts := parseSrc(t, "SELEKT 1;\nCOMMIT;")
	var found *diag.Verdict
	for i, v := range verdicts {
		if v.Rule == rules.UnknownKeyword {
			found = &verdicts[i]
		}
	}
	if found == nil {
		t.Fatalf("expected an UnknownKeyword diagnostic, got %v", verdicts)
	}
	if found.Suggestion != "SELECT" {
		t.Fatalf("expected suggestion SELECT, got %q", found.Suggestion)
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected the flanking COMMIT to survive recovery, got %d stmts", len(prog.Stmts))
	}
	if _, ok := prog.Stmts[0].(*ast.Commit); !ok {
		t.Fatalf("expected surviving statement Commit, got %T", prog.Stmts[0])
	}
}

func TestUnknownKeywordLeadWithNoCloseMatchOmitsSuggestion(t *testing.T) {
	_, verdicts := parseSrc(t, "zzzzzzzzzz 1;")
	var found *diag.Verdict
	for i, v := range verdicts {
		if v.Rule == rules.UnknownKeyword {
			found = &verdicts[i]
		}
	}
	if found == nil {
		t.Fatalf("expected an UnknownKeyword diagnostic, got %v", verdicts)
	}
	if found.Suggestion != "" {
		t.Fatalf("expected no suggestion for a distant identifier, got %q", found.Suggestion)
	}
}

func TestDropUniformAcrossKinds(t *testing.T) {
	prog, verdicts := parseSrc(t, "DROP TABLE IF EXISTS main.users;")
	for _, v := range verdicts {
		if !v.Suppressed {
			t.Fatalf("expected zero diagnostics, got %v", v)
		}
	}
	drop, ok := prog.Stmts[0].(*ast.Drop)
	if !ok {
		t.Fatalf("expected *ast.Drop, got %T", prog.Stmts[0])
	}
	if drop.Kind() != ast.KindDropTable {
		t.Fatalf("expected KindDropTable, got %s", drop.Kind())
	}
	if !drop.IfExists {
		t.Fatalf("expected IfExists=true")
	}
	if drop.Name.String() != "main.users" {
		t.Fatalf("expected qualified name main.users, got %s", drop.Name.String())
	}
}

func TestAlterTableRenameColumn(t *testing.T) {
	prog, verdicts := parseSrc(t, "ALTER TABLE users RENAME COLUMN old_name TO new_name;")
	for _, v := range verdicts {
		if !v.Suppressed {
			t.Fatalf("expected zero diagnostics, got %v", v)
		}
	}
	alt, ok := prog.Stmts[0].(*ast.AlterTable)
	if !ok {
		t.Fatalf("expected *ast.AlterTable, got %T", prog.Stmts[0])
	}
	if alt.Op != ast.AlterRenameColumn {
		t.Fatalf("expected AlterRenameColumn, got %v", alt.Op)
	}
	if alt.OldName.Name() != "old_name" || alt.NewName.Name() != "new_name" {
		t.Fatalf("unexpected names: %v %v", alt.OldName, alt.NewName)
	}
}

func TestPragmaWithEqualsArg(t *testing.T) {
	prog, verdicts := parseSrc(t, "PRAGMA foreign_keys = 1;")
	for _, v := range verdicts {
		if !v.Suppressed {
			t.Fatalf("expected zero diagnostics, got %v", v)
		}
	}
	pragma, ok := prog.Stmts[0].(*ast.Pragma)
	if !ok {
		t.Fatalf("expected *ast.Pragma, got %T", prog.Stmts[0])
	}
	if pragma.Name.String() != "foreign_keys" {
		t.Fatalf("unexpected pragma name %s", pragma.Name.String())
	}
	num, ok := pragma.Arg.(*ast.NumberLit)
	if !ok || num.Value != 1 {
		t.Fatalf("expected Number(1), got %v", pragma.Arg)
	}
}
