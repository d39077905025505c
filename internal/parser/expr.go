package parser

import (
	"github.com/xnacly/sqleibniz/internal/ast"
	"github.com/xnacly/sqleibniz/internal/token"
)

// parseQualifiedName parses `Ident ["." Ident]`, always returning an
// ast.QualifiedName (Schema is nil for a bare name) per spec.md §4.2:
// "bare names accept a single Ident".
func (p *Parser) parseQualifiedName() (*ast.QualifiedName, bool) {
	first, ok := p.expectIdent("in qualified name")
	if !ok {
		return nil, false
	}
	if p.at(token.Dot) {
		p.advance()
		second, ok := p.expectIdent("after '.'")
		if !ok {
			return nil, false
		}
		return ast.NewQualifiedName(first.Anchor(), first, second), true
	}
	return ast.NewQualifiedName(first.Anchor(), nil, first), true
}

// parsePrimaryExpr parses a single literal or (possibly qualified)
// identifier — the whole expression grammar this analyzer needs, since
// spec.md §3 only requires expression/literal variants as PRAGMA
// arguments and ATTACH sources, never general SQL expressions.
func (p *Parser) parsePrimaryExpr() (ast.Node, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		ident := ast.NewIdent(tok)
		if p.at(token.Dot) {
			p.advance()
			second, ok := p.expectIdent("after '.'")
			if !ok {
				return nil, false
			}
			return ast.NewQualifiedName(tok, ident, second), true
		}
		return ident, true
	case token.Number:
		p.advance()
		v, _ := tok.NumberValue()
		return ast.NewNumberLit(tok, v), true
	case token.String:
		p.advance()
		v, _ := tok.StringValue()
		return ast.NewStringLit(tok, v), true
	case token.Blob:
		p.advance()
		v, _ := tok.BlobValue()
		return ast.NewBlobLit(tok, v), true
	case token.KwTrue:
		p.advance()
		return ast.NewBoolLit(tok, true), true
	case token.KwFalse:
		p.advance()
		return ast.NewBoolLit(tok, false), true
	case token.KwNull:
		p.advance()
		return ast.NewNullLit(tok), true
	default:
		p.syntaxError("expected an identifier or literal")
		return nil, false
	}
}
