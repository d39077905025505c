package lexer

import "github.com/xnacly/sqleibniz/internal/token"

// scanPunct scans a single punctuation byte, or reports UnknownCharacter
// and returns an Invalid token for anything outside the closed set spec.md
// §3 defines (identifiers, literals, and these seven bytes are the whole
// grammar's terminal alphabet).
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Bump()

	var kind token.Kind
	switch ch {
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '*':
		kind = token.Star
	case '=':
		kind = token.Eq
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.reportUnknownChar(sp, ch)
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(ch)}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(ch)}
}
