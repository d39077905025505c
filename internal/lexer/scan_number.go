package lexer

import (
	"strconv"
	"strings"

	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
	"github.com/xnacly/sqleibniz/internal/token"
)

// scanNumber scans an integer, a hex integer (0x...), or a float with an
// optional exponent. On a malformed literal (bad exponent, empty hex
// digits) it still consumes the offending run so the cursor makes
// progress, and returns a Number token carrying a best-effort value plus
// an InvalidNumericLiteral diagnostic — spec.md §4.1's "best-effort
// value is still returned".
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digitsStart := lx.cursor.Mark()
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.file.Content[sp.Start:sp.End])
		if lx.cursor.Off == uint32(digitsStart) {
			return lx.invalidNumber(sp, text, "hex literal has no digits")
		}
		v, err := strconv.ParseUint(text[2:], 16, 64)
		if err != nil {
			return lx.invalidNumber(sp, text, "hex literal out of range")
		}
		return token.Token{Kind: token.Number, Span: sp, Text: text, Value: float64(v)}
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		lx.cursor.Bump()
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			text := string(lx.file.Content[sp.Start:sp.End])
			return lx.invalidNumber(sp, text, "expected digit after exponent")
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return lx.invalidNumber(sp, text, "malformed numeric literal")
	}
	return token.Token{Kind: token.Number, Span: sp, Text: text, Value: v}
}

// invalidNumber reports InvalidNumericLiteral and still returns a Number
// token so parse recovery can keep treating the lead as a numeric literal
// rather than falling into statement-level resync. The value is a
// best-effort parse of whatever digits were consumed; malformed input
// that parses to nothing carries 0.
func (lx *Lexer) invalidNumber(sp source.Span, text, reason string) token.Token {
	lx.emit(diag.NewError(rules.InvalidNumericLiteral, sp, reason).
		WithDocURL(rules.DocURL(rules.InvalidNumericLiteral)))
	return token.Token{Kind: token.Number, Span: sp, Text: text, Value: bestEffortNumber(text)}
}

// bestEffortNumber extracts whatever leading numeric value it can from a
// malformed literal's text, defaulting to 0 when nothing parses.
func bestEffortNumber(text string) float64 {
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		if v, err := strconv.ParseUint(text[2:], 16, 64); err == nil {
			return float64(v)
		}
		return 0
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return v
	}
	// Trim a trailing malformed exponent/fraction and retry on the
	// leading run that did parse (e.g. "1e" -> "1", "1.2.3" -> "1.2").
	for i := len(text); i > 0; i-- {
		if v, err := strconv.ParseFloat(text[:i], 64); err == nil {
			return v
		}
	}
	return 0
}
