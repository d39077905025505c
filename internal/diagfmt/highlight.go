package diagfmt

import (
	"github.com/fatih/color"

	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/lexer"
	"github.com/xnacly/sqleibniz/internal/source"
	"github.com/xnacly/sqleibniz/internal/token"
)

// discardSink swallows diagnostics from a throwaway re-lex done purely to
// recover token spans for excerpt coloring; the file has already been
// analyzed once by the real pipeline, so these diagnostics would be
// duplicates.
type discardSink struct{}

func (discardSink) Emit(diag.Diagnostic) {}

var (
	keywordColor = color.New(color.FgMagenta, color.Bold)
	stringColor  = color.New(color.FgGreen)
	numberColor  = color.New(color.FgCyan)
	blobColor    = color.New(color.FgCyan)
)

// colorForKind returns the color a token's kind renders in, or nil for
// kinds left uncolored (identifiers, punctuation) — supplements the pretty
// renderer with the token-kind-based coloring described in
// original_source/src/highlight/mod.rs, reusing internal/token.Kind
// instead of porting that file's own token model.
func colorForKind(k token.Kind) *color.Color {
	switch {
	case k.IsKeyword():
		return keywordColor
	case k == token.String:
		return stringColor
	case k == token.Number:
		return numberColor
	case k == token.Blob:
		return blobColor
	default:
		return nil
	}
}

// lineTokens returns every token whose span starts within [lineStart, lineEnd).
func lineTokens(toks []token.Token, lineStart, lineEnd uint32) []token.Token {
	var out []token.Token
	for _, t := range toks {
		if t.Span.Start >= lineStart && t.Span.Start < lineEnd {
			out = append(out, t)
		}
	}
	return out
}

// highlightLine recolors line's bytes using toks (already filtered to this
// line), replacing each token's span with its color-wrapped text and
// leaving everything else (whitespace, punctuation) untouched.
func highlightLine(line string, lineStart uint32, toks []token.Token) string {
	if len(toks) == 0 {
		return line
	}
	raw := []byte(line)
	out := make([]byte, 0, len(raw)+len(toks)*8)
	cursor := uint32(0)
	for _, t := range toks {
		c := colorForKind(t.Kind)
		if c == nil {
			continue
		}
		relStart := t.Span.Start - lineStart
		relEnd := t.Span.End - lineStart
		if relStart > uint32(len(raw)) || relEnd > uint32(len(raw)) || relEnd < relStart {
			continue
		}
		if relStart < cursor {
			continue
		}
		out = append(out, raw[cursor:relStart]...)
		out = append(out, []byte(c.Sprint(string(raw[relStart:relEnd])))...)
		cursor = relEnd
	}
	out = append(out, raw[cursor:]...)
	return string(out)
}

// fileLineIndex computes the byte offset a 1-based line begins at, mirroring
// internal/source's private lineStartOffset via the exported LineIdx field.
func fileLineIndex(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return uint32(len(f.Content))
}

func fileLineEnd(f *source.File, line uint32) uint32 {
	idx := line - 1
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx]
	}
	return uint32(len(f.Content))
}

// tokenizeForHighlight re-lexes file purely for excerpt coloring. Re-lexing
// is cheap relative to rendering and keeps internal/diagfmt from needing to
// thread the original token stream through internal/driver.Result just for
// this cosmetic feature.
func tokenizeForHighlight(file *source.File) []token.Token {
	return lexer.Tokenize(file, discardSink{})
}
