package lsp

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/driver"
	"github.com/xnacly/sqleibniz/internal/source"
)

// scheduleDiagnostics debounces re-analysis: every document change bumps
// analysisSeq and restarts the timer, so a burst of keystrokes triggers
// one runDiagnostics call, not one per keystroke. Grounded on the
// teacher's scheduleDiagnostics; the sequence/cancel idiom is
// domain-independent and applies here unchanged even though there is no
// project graph behind it in this repo.
func (s *Server) scheduleDiagnostics() {
	s.mu.Lock()
	seq := atomic.AddUint64(&s.analysisSeq, 1)
	atomic.StoreUint64(&s.latestSeq, seq)
	if s.diagCancel != nil {
		s.diagCancel()
	}
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	delay := s.debounce
	s.debounceTimer = time.AfterFunc(delay, func() {
		s.runDiagnostics(seq)
	})
	s.mu.Unlock()
}

// runDiagnostics re-analyzes every currently open document independently
// — there is no project graph in this domain (spec.md §5's pipeline is
// "single-threaded and cooperative per file") — and publishes the result
// for each. A stale seq (superseded by a later edit before the debounce
// timer fired) is dropped without doing any work.
func (s *Server) runDiagnostics(seq uint64) {
	if seq == 0 || !s.isLatestSeq(seq) {
		return
	}
	s.mu.Lock()
	docs := make(map[string]string, len(s.openDocs))
	for uri, text := range s.openDocs {
		docs[uri] = text
	}
	cfg := s.cfg
	s.mu.Unlock()

	if len(docs) == 0 {
		s.clearPublishedDiagnostics()
		return
	}

	uris := make([]string, 0, len(docs))
	for uri := range docs {
		uris = append(uris, uri)
	}
	sort.Strings(uris)

	// requestID has no wire meaning; it's stamped into logf so that a
	// burst of diagnostics from one debounced run can be correlated in
	// output interleaved with other requests' logging.
	requestID := uuid.NewString()

	published := make(map[string]struct{}, len(uris))
	for _, uri := range uris {
		if !s.isLatestSeq(seq) {
			return
		}
		path := uriToPath(uri)
		if path == "" {
			continue
		}
		fs := source.NewFileSet()
		result := driver.AnalyzeBytes(fs, path, []byte(docs[uri]), cfg)
		file := fs.Get(result.FileID)
		list := lspDiagnosticsForFile(result.Verdicts, file)
		if !s.isLatestSeq(seq) {
			return
		}
		if err := s.sendPublish(uri, list); err != nil {
			s.logf("[%s] failed to publish diagnostics for %s: %v", requestID, uri, err)
			continue
		}
		published[uri] = struct{}{}
	}

	s.mu.Lock()
	prev := s.published
	s.published = published
	s.mu.Unlock()

	for uri := range prev {
		if _, ok := published[uri]; ok {
			continue
		}
		if err := s.sendPublish(uri, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}

// lspDiagnosticsForFile renders non-suppressed verdicts for one file into
// the wire shape textDocument/publishDiagnostics expects.
func lspDiagnosticsForFile(verdicts []diag.Verdict, file *source.File) []lspDiagnostic {
	out := make([]lspDiagnostic, 0, len(verdicts))
	for _, v := range verdicts {
		if v.Suppressed {
			continue
		}
		out = append(out, lspDiagnostic{
			Range:    rangeForSpan(file, v.Primary),
			Severity: v.Severity.LSPSeverity(),
			Code:     v.Identity(),
			Source:   "sqleibniz",
			Message:  v.Message,
		})
	}
	return out
}

func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	if len(s.published) == 0 {
		s.mu.Unlock()
		return
	}
	prev := s.published
	s.published = make(map[string]struct{})
	s.mu.Unlock()
	for uri := range prev {
		if err := s.sendPublish(uri, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}
