// Package lexer turns SQL source bytes into a token.Token stream with
// recovery: malformed input yields an Invalid token plus a diagnostic
// rather than aborting the scan.
package lexer

import (
	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
	"github.com/xnacly/sqleibniz/internal/token"
)

// Sink is the minimal diagnostic surface the lexer needs; satisfied by
// *diag.Sink. Kept as an interface so tests can substitute a recording
// stub without constructing a full rules.Config.
type Sink interface {
	Emit(diag.Diagnostic)
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	sink   Sink
}

func New(file *source.File, sink Sink) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), sink: sink}
}

func (lx *Lexer) emit(d diag.Diagnostic) {
	if lx.sink != nil {
		lx.sink.Emit(d)
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// Next returns the next significant token: whitespace and ordinary
// comments are skipped, and an "@sqleibniz::expect" line comment yields
// an InstructionExpect token instead of being discarded (spec.md §4.1).
func (lx *Lexer) Next() token.Token {
	if instr, ok := lx.skipTriviaUntilInstructionOrToken(); ok {
		return instr
	}

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case (ch == 'x' || ch == 'X') && lx.isBlobStart():
		return lx.scanBlob()
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()
	case ch == '\'':
		return lx.scanString()
	case ch == '"' || ch == '`' || ch == '[':
		return lx.scanQuotedIdent()
	default:
		return lx.scanPunct()
	}
}

// Tokenize drains the lexer into a slice, always ending with exactly one
// EOF token.
func Tokenize(file *source.File, sink Sink) []token.Token {
	lx := New(file, sink)
	var out []token.Token
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}

func (lx *Lexer) isBlobStart() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && (b0 == 'x' || b0 == 'X') && b1 == '\''
}

func (lx *Lexer) reportUnknownChar(sp source.Span, ch byte) {
	lx.emit(diag.NewError(rules.UnknownCharacter, sp, "unknown character '"+string(ch)+"'").
		WithDocURL(rules.DocURL(rules.UnknownCharacter)))
}
