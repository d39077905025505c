// Package diagfmt renders diagnostics: a human-readable excerpt-based
// pretty printer (Pretty) and a machine-readable encoder (JSON), consuming
// the []diag.Verdict internal/driver.Analyze produces. Rendering never
// mutates a Diagnostic or recomputes suppression; both live only in
// internal/diag.Sink.Evaluate's output.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
	"github.com/xnacly/sqleibniz/internal/token"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	noteColor    = color.New(color.FgCyan)
	dimColor     = color.New(color.Faint)
	markerColor  = color.New(color.FgRed, color.Bold)
	suggestColor = color.New(color.FgGreen)
)

// Pretty formats verdicts in emission order, grouped by file in
// input-path order, per spec.md §4.3: a one-time preamble listing the
// globally disabled rule set, then per file a header line, a ±opts.Context
// line excerpt with a `~~~` underline of the primary span, notes, doc URL
// and "did you mean" block, and finally a {detected, ignored} summary.
// paths gives the input-path order the driver analyzed files in; a file
// with no verdicts still gets a summary line.
func Pretty(w io.Writer, verdicts []diag.Verdict, fs *source.FileSet, cfg *rules.Config, paths []source.FileID, opts PrettyOpts) {
	writePreamble(w, cfg, opts)

	byFile := make(map[source.FileID][]diag.Verdict)
	for _, v := range verdicts {
		byFile[v.Primary.File] = append(byFile[v.Primary.File], v)
	}

	summaries := diag.Summarize(verdicts)

	for _, id := range paths {
		file := fs.Get(id)
		fmt.Fprintf(w, "%s\n", formatPath(file.Path, opts.PathMode))

		var toks []token.Token
		if opts.Color && opts.Highlight {
			toks = tokenizeForHighlight(file)
		}

		for _, v := range byFile[id] {
			if v.Suppressed {
				continue
			}
			writeVerdict(w, v, fs, file, toks, opts)
		}

		sum := summaries[id]
		fmt.Fprintf(w, "  %d detected, %d ignored\n\n", sum.Detected, sum.Ignored)
	}
}

func writePreamble(w io.Writer, cfg *rules.Config, opts PrettyOpts) {
	if cfg == nil {
		return
	}
	var disabled []string
	for _, r := range rules.All() {
		if cfg.IsDisabled(r) {
			disabled = append(disabled, r.Kebab())
		}
	}
	if len(disabled) == 0 {
		return
	}
	msg := fmt.Sprintf("disabled rules: %s", joinComma(disabled))
	if opts.Color {
		msg = dimColor.Sprint(msg)
	}
	fmt.Fprintln(w, msg)
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

func writeVerdict(w io.Writer, v diag.Verdict, fs *source.FileSet, file *source.File, toks []token.Token, opts PrettyOpts) {
	start, end := fs.Resolve(v.Primary)

	sevLabel := v.Severity.String()
	if opts.Color {
		if v.Severity == diag.SevError {
			sevLabel = errorColor.Sprint(sevLabel)
		} else {
			sevLabel = warnColor.Sprint(sevLabel)
		}
	}

	fmt.Fprintf(w, "  %d:%d: %s %s: %s\n", start.Line, start.Col, sevLabel, v.Identity(), v.Message)

	ctx := opts.Context
	if ctx <= 0 {
		ctx = 2
	}
	writeExcerpt(w, fs, file, start, end, toks, opts, ctx)

	if opts.ShowNotes {
		for _, n := range v.Notes {
			note := "note: " + n
			if opts.Color {
				note = noteColor.Sprint(note)
			}
			fmt.Fprintf(w, "    %s\n", note)
		}
	}
	if v.DocURL != "" {
		fmt.Fprintf(w, "    see: %s\n", v.DocURL)
	}
	if v.Suggestion != "" {
		hint := fmt.Sprintf("did you mean %s?", v.Suggestion)
		if opts.Color {
			hint = suggestColor.Sprint(hint)
		}
		fmt.Fprintf(w, "    %s\n", hint)
	}
	fmt.Fprintln(w)
}

func writeExcerpt(w io.Writer, fs *source.FileSet, file *source.File, start, end source.LineCol, toks []token.Token, opts PrettyOpts, ctx int) {
	firstLine := int(start.Line) - ctx
	if firstLine < 1 {
		firstLine = 1
	}
	lastLine := int(end.Line) + ctx
	if maxLine := int(file.LineCount()); lastLine > maxLine {
		lastLine = maxLine
	}

	gutterWidth := len(fmt.Sprintf("%d", lastLine))

	for ln := firstLine; ln <= lastLine; ln++ {
		lineNum := uint32(ln)
		text := file.Line(lineNum)

		display := text
		if len(toks) > 0 {
			lineStart := fileLineIndex(file, lineNum)
			lineEnd := fileLineEnd(file, lineNum)
			display = highlightLine(text, lineStart, lineTokens(toks, lineStart, lineEnd))
		}

		fmt.Fprintf(w, "    %*d | %s\n", gutterWidth, ln, display)

		if lineNum == start.Line {
			underline := buildUnderline(text, start, end, lineNum)
			if opts.Color {
				underline = markerColor.Sprint(underline)
			}
			fmt.Fprintf(w, "    %s | %s\n", pad(gutterWidth), underline)
		}
	}
}

func buildUnderline(line string, start, end source.LineCol, lineNum uint32) string {
	runes := []rune(line)
	startCol := int(start.Col)
	if startCol < 1 {
		startCol = 1
	}
	if startCol-1 > len(runes) {
		startCol = len(runes) + 1
	}
	prefix := string(runes[:startCol-1])
	width := runewidth.StringWidth(prefix)

	span := 1
	if end.Line == lineNum {
		span = int(end.Col) - startCol
	} else {
		span = len(runes) - (startCol - 1)
	}
	if span < 1 {
		span = 1
	}

	out := make([]byte, 0, width+span)
	for range make([]struct{}, width) {
		out = append(out, ' ')
	}
	for range make([]struct{}, span) {
		out = append(out, '~')
	}
	return string(out)
}

func pad(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}
