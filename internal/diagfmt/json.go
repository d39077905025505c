package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/source"
)

// LocationJSON is a diagnostic's location in JSON form. Adapted from the
// teacher's diagfmt/json.go LocationJSON, trimmed of a Fix/edit concept
// this repo's diag.Diagnostic doesn't have.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON is one diagnostic's JSON encoding.
type DiagnosticJSON struct {
	Severity   string       `json:"severity"`
	Rule       string       `json:"rule"`
	Message    string       `json:"message"`
	Location   LocationJSON `json:"location"`
	Notes      []string     `json:"notes,omitempty"`
	DocURL     string       `json:"doc_url,omitempty"`
	Suggestion string       `json:"suggestion,omitempty"`
	Suppressed bool         `json:"suppressed,omitempty"`
}

// FileSummaryJSON is the per-file {detected, ignored} tally spec.md §4.3
// requires at the end of a render pass.
type FileSummaryJSON struct {
	File     string `json:"file"`
	Detected int    `json:"detected"`
	Ignored  int    `json:"ignored"`
}

// DiagnosticsOutput is the root JSON object JSON encodes.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON  `json:"diagnostics"`
	Count       int               `json:"count"`
	Summaries   []FileSummaryJSON `json:"summaries,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, mode PathMode, includePositions bool) LocationJSON {
	f := fs.Get(span.File)
	loc := LocationJSON{
		File:      formatPath(f.Path, mode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		start, end := fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// BuildDiagnosticsOutput builds the JSON-ready structure without encoding
// it, so callers (tests, the LSP façade) can inspect it directly.
func BuildDiagnosticsOutput(verdicts []diag.Verdict, fs *source.FileSet, paths []source.FileID, opts JSONOpts) DiagnosticsOutput {
	n := len(verdicts)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}

	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, n)}
	for i := 0; i < n; i++ {
		v := verdicts[i]
		if v.Suppressed && !opts.IncludeSuppressed {
			continue
		}
		dj := DiagnosticJSON{
			Severity:   v.Severity.String(),
			Rule:       v.Identity(),
			Message:    v.Message,
			Location:   makeLocation(v.Primary, fs, opts.PathMode, opts.IncludePositions),
			Suppressed: v.Suppressed,
		}
		if opts.IncludeNotes {
			dj.Notes = append([]string(nil), v.Notes...)
		}
		dj.DocURL = v.DocURL
		if opts.IncludeSuggestion {
			dj.Suggestion = v.Suggestion
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)

	summaries := diag.Summarize(verdicts)
	for _, id := range paths {
		s := summaries[id]
		out.Summaries = append(out.Summaries, FileSummaryJSON{
			File:     formatPath(fs.Get(id).Path, opts.PathMode),
			Detected: s.Detected,
			Ignored:  s.Ignored,
		})
	}

	return out
}

// JSON encodes verdicts as a single indented JSON document.
func JSON(w io.Writer, verdicts []diag.Verdict, fs *source.FileSet, paths []source.FileID, opts JSONOpts) error {
	output := BuildDiagnosticsOutput(verdicts, fs, paths, opts)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
