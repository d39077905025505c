package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xnacly/sqleibniz/internal/ast"
	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/token"
)

// expect consumes the current token if it matches k; otherwise it reports
// a Syntax diagnostic and performs panic-mode recovery (spec.md §4.2),
// leaving the cursor positioned just before the next ';' or EOF.
func (p *Parser) expect(k token.Kind, want string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.syntaxError("expected " + want)
	return token.Token{}, false
}

// expectIdent consumes an Ident token, or reports Syntax + recovers.
func (p *Parser) expectIdent(context string) (*ast.Ident, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return ast.NewIdent(tok), true
	}
	p.syntaxError("expected identifier " + context)
	return nil, false
}

// syntaxError emits exactly one Syntax diagnostic at the current position
// and resyncs to just before the next ';' or EOF.
func (p *Parser) syntaxError(msg string) {
	sp := p.diagSpan()
	p.emit(diag.NewError(rules.Syntax, sp, msg).
		WithDocURL(rules.DocURL(rules.Syntax)))
	p.resyncToSemicolon()
}

// resyncToSemicolon discards tokens until the next ';' or EOF, without
// consuming the terminator itself — the caller's requireSemicolon call
// consumes it, so every statement (successful or recovered) reports at
// most one missing-terminator diagnostic.
func (p *Parser) resyncToSemicolon() {
	for !p.at(token.Semicolon) && !p.at(token.EOF) {
		p.advance()
	}
}

// requireSemicolon enforces the trailing ';' spec.md §4.2 requires on
// every statement.
func (p *Parser) requireSemicolon() {
	if p.at(token.Semicolon) {
		p.advance()
		return
	}
	sp := p.lastSpan
	if !p.sawToken {
		sp = p.emptySpan()
	}
	p.emit(diag.NewError(rules.Semicolon, sp, "missing ';' after statement").
		WithDocURL(rules.DocURL(rules.Semicolon)))
}

// canStartStatement reports whether k begins one of the statement forms
// this parser recognizes (implemented or Unimplemented), excluding
// EXPLAIN itself — used to validate EXPLAIN's inner statement, which the
// reference grammar never lets be another EXPLAIN.
func canStartStatement(k token.Kind) bool {
	switch k {
	case token.KwVacuum, token.KwBegin, token.KwCommit, token.KwEnd,
		token.KwRollback, token.KwSavepoint, token.KwRelease, token.KwDetach,
		token.KwAttach, token.KwAnalyze, token.KwReindex, token.KwDrop,
		token.KwPragma, token.KwAlter,
		token.KwSelect, token.KwInsert, token.KwUpdate, token.KwDelete, token.KwCreate:
		return true
	default:
		return false
	}
}

// describeToken renders a token the way spec.md §8 scenario 3's note
// text does: "Number(25.0)" for a numeric literal, and similarly for
// other literal kinds; anything else falls back to its kind name plus
// raw text.
func describeToken(tok token.Token) string {
	switch tok.Kind {
	case token.Number:
		v, _ := tok.NumberValue()
		return "Number(" + formatNumber(v) + ")"
	case token.String:
		v, _ := tok.StringValue()
		return fmt.Sprintf("String(%q)", v)
	case token.Blob:
		return "Blob(" + tok.Text + ")"
	case token.KwTrue, token.KwFalse:
		return "Boolean(" + strings.ToLower(tok.Text) + ")"
	case token.KwNull:
		return "Null"
	case token.Ident:
		return "Ident(" + tok.Text + ")"
	case token.EOF:
		return "end of file"
	default:
		return tok.Kind.String() + "(" + tok.Text + ")"
	}
}

// formatNumber renders v the way the reference implementation's Debug
// formatting for its numeric literal does: always at least one decimal
// digit, e.g. 25 -> "25.0".
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
