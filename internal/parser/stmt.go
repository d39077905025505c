package parser

import (
	"fmt"
	"strings"

	"github.com/xnacly/sqleibniz/internal/ast"
	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/token"
)

// parseStatement parses one full statement — body plus its terminating
// ';' — and is the unit the top-level loop and panic-mode recovery both
// operate on.
func (p *Parser) parseStatement() (ast.Node, bool) {
	node, ok := p.parseStatementBody()
	p.requireSemicolon()
	return node, ok
}

// parseStatementBody dispatches on the leading token to one of the
// mandatory statement productions (spec.md §3), an Unimplemented lead,
// or a generic Syntax error for anything else. It never consumes the
// terminating ';'.
func (p *Parser) parseStatementBody() (ast.Node, bool) {
	switch p.peek().Kind {
	case token.KwExplain:
		return p.parseExplain()
	case token.KwVacuum:
		return p.parseVacuum()
	case token.KwBegin:
		return p.parseBegin()
	case token.KwCommit, token.KwEnd:
		return p.parseCommit()
	case token.KwRollback:
		return p.parseRollback()
	case token.KwSavepoint:
		return p.parseSavepoint()
	case token.KwRelease:
		return p.parseRelease()
	case token.KwDetach:
		return p.parseDetach()
	case token.KwAttach:
		return p.parseAttach()
	case token.KwAnalyze:
		return p.parseAnalyze()
	case token.KwReindex:
		return p.parseReindex()
	case token.KwDrop:
		return p.parseDrop()
	case token.KwPragma:
		return p.parsePragma()
	case token.KwAlter:
		return p.parseAlterTable()
	case token.KwSelect, token.KwInsert, token.KwUpdate, token.KwDelete, token.KwCreate:
		return p.parseUnimplemented()
	default:
		return p.parseUnexpectedStatement()
	}
}

// parseUnexpectedStatement handles a statement-leading token that isn't
// one of the mandatory productions. An Ident here is a syntactic
// position where a keyword is expected (spec.md §3, §4.1): the parser
// retroactively classifies it as an unknown keyword rather than a bare
// syntax error, and offers a "did you mean" suggestion when the
// identifier is close enough to a real keyword. Anything else (an
// operator, a stray punctuation token, EOF) is a generic Syntax error.
func (p *Parser) parseUnexpectedStatement() (ast.Node, bool) {
	tok := p.peek()
	if tok.Kind == token.Ident {
		d := diag.NewError(rules.UnknownKeyword, tok.Span,
			"'"+tok.Text+"' is not an SQL keyword").
			WithDocURL(rules.DocURL(rules.UnknownKeyword))
		if kw, ok := token.Suggest(tok.Text); ok {
			d = d.WithSuggestion(kw)
		}
		p.emit(d)
		p.resyncToSemicolon()
		return nil, false
	}
	p.emit(diag.NewError(rules.Syntax, tok.Span,
		"unexpected "+describeToken(tok)+", expected a statement").
		WithDocURL(rules.StatementDocURL("")))
	p.resyncToSemicolon()
	return nil, false
}

// parseUnimplemented handles a recognized-but-unimplemented statement
// lead (SELECT, INSERT, CREATE ..., DELETE, UPDATE): one Unimplemented
// diagnostic at the leading keyword, then recover to the next ';'.
func (p *Parser) parseUnimplemented() (ast.Node, bool) {
	anchor := p.advance()
	lead := strings.ToUpper(anchor.Text)
	p.emit(diag.NewError(rules.Unimplemented, anchor.Span,
		"sqleibniz does not yet understand "+lead+" statements").
		WithDocURL(rules.DocURL(rules.Unimplemented)))
	p.resyncToSemicolon()
	return ast.NewUnimplemented(anchor, lead), true
}

// parseExplain parses `EXPLAIN [QUERY PLAN] stmt`. Per spec.md §8
// scenario 3, a child that cannot start a statement still yields the
// outer Explain node (with a nil Child marking the recovery), not a
// fully abandoned parse.
func (p *Parser) parseExplain() (ast.Node, bool) {
	anchor := p.advance()
	queryPlan := false
	if p.at(token.KwQuery) {
		p.advance()
		queryPlan = true
		if _, ok := p.expect(token.KwPlan, "PLAN after QUERY"); !ok {
			return nil, false
		}
	}
	child, _ := p.parseExplainChild()
	return ast.NewExplain(anchor, queryPlan, child), true
}

func (p *Parser) parseExplainChild() (ast.Node, bool) {
	tok := p.peek()
	if !canStartStatement(tok.Kind) {
		p.emit(diag.NewError(rules.Syntax, tok.Span, "expected a statement after EXPLAIN").
			WithNote(fmt.Sprintf("Literal %s can not start a statement", describeToken(tok))).
			WithDocURL(rules.StatementDocURL("explain")))
		p.resyncToSemicolon()
		return nil, false
	}
	return p.parseStatementBody()
}

// parseVacuum parses `VACUUM [schema] [INTO filename]`.
func (p *Parser) parseVacuum() (ast.Node, bool) {
	anchor := p.advance()
	var schema *ast.Ident
	if p.at(token.Ident) {
		schema, _ = p.expectIdent("schema name")
	}
	var filename *ast.StringLit
	if p.at(token.KwInto) {
		p.advance()
		tok, ok := p.expect(token.String, "a filename string after INTO")
		if !ok {
			return nil, false
		}
		v, _ := tok.StringValue()
		filename = ast.NewStringLit(tok, v)
	}
	return ast.NewVacuum(anchor, schema, filename), true
}

// parseBegin parses `BEGIN [DEFERRED|IMMEDIATE|EXCLUSIVE] [TRANSACTION]`.
func (p *Parser) parseBegin() (ast.Node, bool) {
	anchor := p.advance()
	kind := ast.TxDeferred
	switch p.peek().Kind {
	case token.KwDeferred:
		p.advance()
		kind = ast.TxDeferred
	case token.KwImmediate:
		p.advance()
		kind = ast.TxImmediate
	case token.KwExclusive:
		p.advance()
		kind = ast.TxExclusive
	}
	if p.at(token.KwTransaction) {
		p.advance()
	}
	return ast.NewBegin(anchor, kind), true
}

// parseCommit parses `COMMIT|END [TRANSACTION]`.
func (p *Parser) parseCommit() (ast.Node, bool) {
	anchor := p.advance()
	if p.at(token.KwTransaction) {
		p.advance()
	}
	return ast.NewCommit(anchor), true
}

// parseRollback parses `ROLLBACK [TRANSACTION] [TO [SAVEPOINT] name]`.
func (p *Parser) parseRollback() (ast.Node, bool) {
	anchor := p.advance()
	if p.at(token.KwTransaction) {
		p.advance()
	}
	var savepoint *ast.Ident
	if p.at(token.KwTo) {
		p.advance()
		if p.at(token.KwSavepoint) {
			p.advance()
		}
		var ok bool
		savepoint, ok = p.expectIdent("after TO")
		if !ok {
			return nil, false
		}
	}
	return ast.NewRollback(anchor, savepoint), true
}

// parseSavepoint parses `SAVEPOINT name`.
func (p *Parser) parseSavepoint() (ast.Node, bool) {
	anchor := p.advance()
	name, ok := p.expectIdent("after SAVEPOINT")
	if !ok {
		return nil, false
	}
	return ast.NewSavepoint(anchor, name), true
}

// parseRelease parses `RELEASE [SAVEPOINT] name`.
func (p *Parser) parseRelease() (ast.Node, bool) {
	anchor := p.advance()
	if p.at(token.KwSavepoint) {
		p.advance()
	}
	name, ok := p.expectIdent("after RELEASE")
	if !ok {
		return nil, false
	}
	return ast.NewRelease(anchor, name), true
}

// parseDetach parses `DETACH [DATABASE] schema`.
func (p *Parser) parseDetach() (ast.Node, bool) {
	anchor := p.advance()
	if p.at(token.KwDatabase) {
		p.advance()
	}
	schema, ok := p.expectIdent("after DETACH")
	if !ok {
		return nil, false
	}
	return ast.NewDetach(anchor, schema), true
}

// parseAttach parses `ATTACH [DATABASE] source AS alias`.
func (p *Parser) parseAttach() (ast.Node, bool) {
	anchor := p.advance()
	if p.at(token.KwDatabase) {
		p.advance()
	}
	source, ok := p.parsePrimaryExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwAs, "AS after ATTACH source"); !ok {
		return nil, false
	}
	alias, ok := p.expectIdent("as ATTACH alias")
	if !ok {
		return nil, false
	}
	return ast.NewAttach(anchor, source, alias), true
}

// parseAnalyze parses `ANALYZE [target]`.
func (p *Parser) parseAnalyze() (ast.Node, bool) {
	anchor := p.advance()
	var target *ast.QualifiedName
	if p.at(token.Ident) {
		var ok bool
		target, ok = p.parseQualifiedName()
		if !ok {
			return nil, false
		}
	}
	return ast.NewAnalyze(anchor, target), true
}

// parseReindex parses `REINDEX [target]`.
func (p *Parser) parseReindex() (ast.Node, bool) {
	anchor := p.advance()
	var target *ast.QualifiedName
	if p.at(token.Ident) {
		var ok bool
		target, ok = p.parseQualifiedName()
		if !ok {
			return nil, false
		}
	}
	return ast.NewReindex(anchor, target), true
}

// parseDrop parses `DROP <INDEX|TABLE|TRIGGER|VIEW> [IF EXISTS] name`,
// uniform across the four kinds per spec.md §4.2.
func (p *Parser) parseDrop() (ast.Node, bool) {
	anchor := p.advance()
	var kind ast.DropKind
	switch p.peek().Kind {
	case token.KwIndex:
		kind = ast.DropIndexKind
	case token.KwTable:
		kind = ast.DropTableKind
	case token.KwTrigger:
		kind = ast.DropTriggerKind
	case token.KwView:
		kind = ast.DropViewKind
	default:
		p.syntaxError("expected INDEX, TABLE, TRIGGER, or VIEW after DROP")
		return nil, false
	}
	p.advance()

	ifExists := false
	if p.at(token.KwIf) {
		p.advance()
		if _, ok := p.expect(token.KwExists, "EXISTS after IF"); !ok {
			return nil, false
		}
		ifExists = true
	}

	name, ok := p.parseQualifiedName()
	if !ok {
		return nil, false
	}
	return ast.NewDrop(anchor, kind, ifExists, name), true
}

// parsePragma parses `PRAGMA name [= value | (value)]`.
func (p *Parser) parsePragma() (ast.Node, bool) {
	anchor := p.advance()
	name, ok := p.parseQualifiedName()
	if !ok {
		return nil, false
	}

	var arg ast.Node
	switch {
	case p.at(token.Eq):
		p.advance()
		arg, ok = p.parsePrimaryExpr()
		if !ok {
			return nil, false
		}
	case p.at(token.LParen):
		p.advance()
		arg, ok = p.parsePrimaryExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, "')' after pragma value"); !ok {
			return nil, false
		}
	}
	return ast.NewPragma(anchor, name, arg), true
}

// parseAlterTable parses `ALTER TABLE target <RENAME [TO new] |
// RENAME [COLUMN] old TO new | ADD [COLUMN] def | DROP [COLUMN] name>`.
func (p *Parser) parseAlterTable() (ast.Node, bool) {
	anchor := p.advance()
	if _, ok := p.expect(token.KwTable, "TABLE after ALTER"); !ok {
		return nil, false
	}
	target, ok := p.parseQualifiedName()
	if !ok {
		return nil, false
	}

	switch {
	case p.at(token.KwRename):
		p.advance()
		if p.at(token.KwTo) {
			p.advance()
			newName, ok := p.expectIdent("new table name")
			if !ok {
				return nil, false
			}
			node := ast.NewAlterTable(anchor, target, ast.AlterRenameTable)
			node.NewName = newName
			return node, true
		}
		if p.at(token.KwColumn) {
			p.advance()
		}
		oldName, ok := p.expectIdent("column to rename")
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.KwTo, "TO before new column name"); !ok {
			return nil, false
		}
		newName, ok := p.expectIdent("new column name")
		if !ok {
			return nil, false
		}
		node := ast.NewAlterTable(anchor, target, ast.AlterRenameColumn)
		node.OldName = oldName
		node.NewName = newName
		return node, true
	case p.at(token.KwAdd):
		p.advance()
		if p.at(token.KwColumn) {
			p.advance()
		}
		colDef, ok := p.expectIdent("column definition after ADD")
		if !ok {
			return nil, false
		}
		node := ast.NewAlterTable(anchor, target, ast.AlterAddColumn)
		node.ColumnDef = colDef
		return node, true
	case p.at(token.KwDrop):
		p.advance()
		if p.at(token.KwColumn) {
			p.advance()
		}
		colDef, ok := p.expectIdent("column name after DROP")
		if !ok {
			return nil, false
		}
		node := ast.NewAlterTable(anchor, target, ast.AlterDropColumn)
		node.ColumnDef = colDef
		return node, true
	default:
		p.syntaxError("expected RENAME, ADD, or DROP after ALTER TABLE target")
		return nil, false
	}
}
