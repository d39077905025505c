// Package parser turns a lexer.Lexer's token stream into an ast.Program:
// a recursive-descent parser over the mandatory statement forms of
// spec.md §3, with one-token lookahead and panic-mode recovery at
// statement boundaries.
package parser

import (
	"github.com/xnacly/sqleibniz/internal/ast"
	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/lexer"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
	"github.com/xnacly/sqleibniz/internal/token"
)

// Sink is the diagnostic surface the parser needs; satisfied by *diag.Sink.
type Sink interface {
	Emit(diag.Diagnostic)
	AddExpectation(diag.Expectation)
}

// Parser holds the state needed to parse one file: the lexer, a
// one-token lookahead buffer, and the sink diagnostics/expectations are
// reported to.
type Parser struct {
	lx       *lexer.Lexer
	sink     Sink
	fileID   source.FileID
	peeked   *token.Token
	lastSpan source.Span
	lastKind token.Kind
	sawToken bool
}

// New constructs a Parser reading from lx and reporting to sink.
func New(fileID source.FileID, lx *lexer.Lexer, sink Sink) *Parser {
	return &Parser{lx: lx, sink: sink, fileID: fileID, lastKind: token.Invalid}
}

// ParseFile parses one file to completion: an empty file emits NoContent
// and returns an empty Program; otherwise the top-level statement loop
// runs to EOF.
func ParseFile(fileID source.FileID, lx *lexer.Lexer, sink Sink) *ast.Program {
	p := New(fileID, lx, sink)
	return p.parseProgram()
}

func (p *Parser) emptySpan() source.Span {
	return source.Span{File: p.fileID, Start: 0, End: 0}
}

func (p *Parser) peek() token.Token {
	if p.peeked == nil {
		t := p.lx.Next()
		p.peeked = &t
	}
	return *p.peeked
}

func (p *Parser) advance() token.Token {
	t := p.peek()
	p.peeked = nil
	p.lastKind = t.Kind
	if t.Kind != token.EOF {
		p.sawToken = true
		p.lastSpan = t.Span
	}
	return t
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *Parser) emit(d diag.Diagnostic) {
	p.sink.Emit(d)
}

// diagSpan returns the best span to anchor a diagnostic at the current
// position: the current token's span, or (for a zero-width EOF) the
// position right after the last real token consumed.
func (p *Parser) diagSpan() source.Span {
	cur := p.peek()
	if cur.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End + 1}
	}
	return cur.Span
}

// parseProgram is the top-level loop: an empty file is NoContent, a
// file that never produces a real statement (only trivia/instructions)
// is NoStatements, otherwise it parses statements until EOF.
func (p *Parser) parseProgram() *ast.Program {
	// The lexer leaves EOF at offset 0 only when the file has no bytes at
	// all; whitespace or comments move it further on.
	if p.at(token.EOF) && p.peek().Span.End == 0 {
		p.emit(diag.NewError(rules.NoContent, p.emptySpan(), "source file is empty"))
		return &ast.Program{}
	}

	prog := &ast.Program{}
	sawStatement := false
	for !p.at(token.EOF) {
		var stmt ast.Node
		var ok bool
		if p.at(token.InstructionExpect) {
			stmt, ok = p.parseExpectInstruction()
		} else {
			stmt, ok = p.parseStatement()
		}
		if ok && stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
			sawStatement = true
		}
	}

	if !sawStatement {
		p.emit(diag.NewError(rules.NoStatements, p.emptySpan(), "source file holds no statements"))
	}
	return prog
}

// parseExpectInstruction consumes a leading "@sqleibniz::expect" marker,
// parses the statement it scopes, and registers an expectation range
// spanning from the marker to that statement's terminating ';'
// (inclusive), per spec.md §4.2. Any trailing free-text reason on the
// comment line was already discarded by the lexer (internal/lexer/trivia.go),
// so the expectation always has an ANY rule filter, per the Open Question
// resolution recorded in DESIGN.md.
func (p *Parser) parseExpectInstruction() (ast.Node, bool) {
	instr := p.advance()

	if p.at(token.EOF) {
		p.emit(diag.NewError(rules.BadSqleibnizInstruction, instr.Span,
			"@sqleibniz::expect is not followed by a statement").
			WithDocURL(rules.DocURL(rules.BadSqleibnizInstruction)))
		return nil, false
	}

	stmt, ok := p.parseStatement()

	if p.lastKind != token.Semicolon {
		p.emit(diag.NewError(rules.BadSqleibnizInstruction, instr.Span,
			"@sqleibniz::expect's statement is missing a terminating ';'").
			WithDocURL(rules.DocURL(rules.BadSqleibnizInstruction)))
		return stmt, ok
	}

	sp := source.Span{File: p.fileID, Start: instr.Span.Start, End: p.lastSpan.End}
	p.sink.AddExpectation(diag.Expectation{Span: sp})
	return stmt, ok
}
