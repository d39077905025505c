package lexer

import (
	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
	"github.com/xnacly/sqleibniz/internal/token"
)

// scanString scans a '...' string literal. A doubled '' inside the
// literal is the standard SQL escape for a literal single quote; there
// are no backslash escapes. A newline or EOF before the closing quote is
// an UnterminatedString.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()

	var decoded []byte
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			return lx.unterminatedString(start)
		}
		b := lx.cursor.Peek()
		if b == '\'' {
			lx.cursor.Bump()
			if lx.cursor.Peek() == '\'' {
				decoded = append(decoded, '\'')
				lx.cursor.Bump()
				continue
			}
			break
		}
		decoded = append(decoded, b)
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind:  token.String,
		Span:  sp,
		Text:  string(lx.file.Content[sp.Start:sp.End]),
		Value: string(decoded),
	}
}

func (lx *Lexer) unterminatedString(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	lx.emit(diag.NewError(rules.UnterminatedString, sp, "unterminated string literal").
		WithDocURL(rules.DocURL(rules.UnterminatedString)))
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}

// scanBlob scans an x'...' or X'...' blob literal: an even number of hex
// digits between quotes. An odd digit count or a non-hex byte is
// InvalidBlob.
func (lx *Lexer) scanBlob() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()

	digitsStart := lx.cursor.Mark()
	for isHex(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	digits := lx.file.Content[digitsStart:lx.cursor.Off]

	if lx.cursor.Peek() != '\'' {
		sp := lx.cursor.SpanFrom(start)
		return lx.invalidBlob(sp, "unterminated blob literal")
	}
	lx.cursor.Bump()

	sp := lx.cursor.SpanFrom(start)
	if len(digits)%2 != 0 {
		return lx.invalidBlob(sp, "blob literal has an odd number of hex digits")
	}

	decoded := make([]byte, len(digits)/2)
	for i := 0; i < len(digits); i += 2 {
		hi, ok1 := hexVal(digits[i])
		lo, ok2 := hexVal(digits[i+1])
		if !ok1 || !ok2 {
			return lx.invalidBlob(sp, "blob literal contains non-hex digit")
		}
		decoded[i/2] = hi<<4 | lo
	}

	return token.Token{
		Kind:  token.Blob,
		Span:  sp,
		Text:  string(lx.file.Content[sp.Start:sp.End]),
		Value: decoded,
	}
}

func (lx *Lexer) invalidBlob(sp source.Span, reason string) token.Token {
	lx.emit(diag.NewError(rules.InvalidBlob, sp, reason).
		WithDocURL(rules.DocURL(rules.InvalidBlob)))
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
