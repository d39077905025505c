package lexer

import (
	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/token"
)

// scanIdentOrKeyword scans [A-Za-z_][A-Za-z0-9_]* and classifies it as a
// Keyword(K) token if the lowercase form matches the keyword table,
// otherwise an Ident token (spec.md §3: "Keyword identity").
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanQuotedIdent scans a quoted identifier: "…", `…`, or […]. The
// decoded (unquoted) spelling becomes Token.Text; the raw quoted form is
// never seen downstream. SQLite doubles the closing quote character to
// escape it inside "…" and `…` (bracket identifiers have no escape).
func (lx *Lexer) scanQuotedIdent() token.Token {
	start := lx.cursor.Mark()
	open := lx.cursor.Bump()
	closeByte := open
	if open == '[' {
		closeByte = ']'
	}

	var content []byte
	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.emit(diag.NewError(rules.UnterminatedString, sp, "unterminated quoted identifier").
				WithDocURL(rules.DocURL(rules.UnterminatedString)))
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		b := lx.cursor.Peek()
		if b == closeByte {
			lx.cursor.Bump()
			if closeByte != ']' && lx.cursor.Peek() == closeByte {
				content = append(content, closeByte)
				lx.cursor.Bump()
				continue
			}
			break
		}
		content = append(content, b)
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Ident, Span: sp, Text: string(content)}
}
