package driver

import (
	"crypto/sha256"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/xnacly/sqleibniz/internal/diag"
	"github.com/xnacly/sqleibniz/internal/rules"
	"github.com/xnacly/sqleibniz/internal/source"
)

// cacheKey identifies one (file content, disabled-rule set) pair: the
// same bytes analyzed under a different set of disabled rules must not
// hit a stale entry. Hooks and disabled hooks are not part of the key. Grounded on the teacher's DiskCache, keyed by
// a ModuleHash folding content and dependency hashes together
// (internal/driver/dcache.go) — this repo has no dependency graph, so
// the key folds in the disabled-rule set instead.
type cacheKey [sha256.Size]byte

func digest(content []byte, cfg *rules.Config) cacheKey {
	h := sha256.New()
	h.Write(content)
	for _, r := range rules.All() {
		if cfg.IsDisabled(r) {
			h.Write([]byte{byte(r), 1})
		}
	}
	var out cacheKey
	copy(out[:], h.Sum(nil))
	return out
}

// wireVerdict is diag.Verdict's msgpack wire form. Diagnostic's fields
// are already plain exported values; this exists to keep the cache's
// on-wire shape independent of internal/diag's own struct layout,
// mirroring the teacher's DiskPayload/live-struct split
// (internal/driver/dcache.go).
type wireVerdict struct {
	Rule       uint8
	HookName   string
	Severity   uint8
	Start      uint32
	End        uint32
	Message    string
	DocURL     string
	Notes      []string
	Suggestion string
	Suppressed bool
}

// Cache is a process-local, msgpack-round-tripped diagnostic cache keyed
// by content+disabled-rule digest. Callers look a buffer up with Get and
// store a fresh result with Put; internal/lsp does not use it and
// re-analyzes every open document on each debounced change. Round-tripping through msgpack
// rather than storing *Result directly keeps this cache's shape ready
// to move to disk later without changing its API, the same separation
// the teacher keeps between DiskCache and the live compiler state.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey][]byte
}

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey][]byte)}
}

// Get returns cached verdicts for content under cfg, if present. fileID
// is stamped onto the decoded spans, since the cache key doesn't carry
// file identity (a cache entry can be reused across FileSet instances
// for identical bytes).
func (c *Cache) Get(content []byte, cfg *rules.Config, fileID source.FileID) ([]diag.Verdict, bool) {
	key := digest(content, cfg)

	c.mu.Lock()
	blob, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	var wire []wireVerdict
	if err := msgpack.Unmarshal(blob, &wire); err != nil {
		return nil, false
	}
	return decodeVerdicts(wire, fileID), true
}

// Put stores verdicts for content under cfg.
func (c *Cache) Put(content []byte, cfg *rules.Config, verdicts []diag.Verdict) {
	key := digest(content, cfg)

	blob, err := msgpack.Marshal(encodeVerdicts(verdicts))
	if err != nil {
		return
	}

	c.mu.Lock()
	c.entries[key] = blob
	c.mu.Unlock()
}

func encodeVerdicts(verdicts []diag.Verdict) []wireVerdict {
	out := make([]wireVerdict, len(verdicts))
	for i, v := range verdicts {
		out[i] = wireVerdict{
			Rule:       uint8(v.Rule),
			HookName:   v.HookName,
			Severity:   uint8(v.Severity),
			Start:      v.Primary.Start,
			End:        v.Primary.End,
			Message:    v.Message,
			DocURL:     v.DocURL,
			Notes:      v.Notes,
			Suggestion: v.Suggestion,
			Suppressed: v.Suppressed,
		}
	}
	return out
}

func decodeVerdicts(wire []wireVerdict, fileID source.FileID) []diag.Verdict {
	out := make([]diag.Verdict, len(wire))
	for i, w := range wire {
		out[i] = diag.Verdict{
			Diagnostic: diag.Diagnostic{
				Rule:       rules.Rule(w.Rule),
				HookName:   w.HookName,
				Severity:   diag.Severity(w.Severity),
				Primary:    source.Span{File: fileID, Start: w.Start, End: w.End},
				Message:    w.Message,
				DocURL:     w.DocURL,
				Notes:      w.Notes,
				Suggestion: w.Suggestion,
			},
			Suppressed: w.Suppressed,
		}
	}
	return out
}
