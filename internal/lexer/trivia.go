package lexer

import "github.com/xnacly/sqleibniz/internal/token"

const expectMarker = "@sqleibniz::expect"

// skipTriviaUntilInstructionOrToken consumes whitespace and comments. If
// it encounters a line comment whose trimmed payload begins with
// "@sqleibniz::expect", it stops and returns an InstructionExpect token
// spanning the marker itself (spec.md §4.1); otherwise it returns once
// positioned at the next significant byte (or EOF).
func (lx *Lexer) skipTriviaUntilInstructionOrToken() (token.Token, bool) {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if isSpace(b) {
			lx.cursor.Bump()
			continue
		}

		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '-' && b1 == '-' {
			if tok, isInstr := lx.consumeLineComment(); isInstr {
				return tok, true
			}
			continue
		}

		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '*' {
			lx.consumeBlockComment()
			continue
		}

		break
	}
	return token.Token{}, false
}

// consumeLineComment eats a "-- ..." comment up to (excluding) the
// terminating newline or EOF. If the payload starts with the expect
// marker, it returns an InstructionExpect token spanning just the
// marker; the rest of the line (a free-text reason) is consumed and
// discarded before returning.
func (lx *Lexer) consumeLineComment() (token.Token, bool) {
	lx.cursor.Bump()
	lx.cursor.Bump()

	for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
		lx.cursor.Bump()
	}

	if lx.matchesExpectMarker() {
		start := lx.cursor.Mark()
		for i := 0; i < len(expectMarker); i++ {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.consumeRestOfLine()
		return token.Token{Kind: token.InstructionExpect, Span: sp, Text: expectMarker}, true
	}

	lx.consumeRestOfLine()
	return token.Token{}, false
}

func (lx *Lexer) matchesExpectMarker() bool {
	off := lx.cursor.Off
	content := lx.cursor.File.Content
	if int(off)+len(expectMarker) > len(content) {
		return false
	}
	return string(content[off:int(off)+len(expectMarker)]) == expectMarker
}

func (lx *Lexer) consumeRestOfLine() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) consumeBlockComment() {
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return
		}
		lx.cursor.Bump()
	}
}
