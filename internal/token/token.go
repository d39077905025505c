package token

import "github.com/xnacly/sqleibniz/internal/source"

// Token is a single lexical unit: a Kind plus its byte Span, the raw text
// slice it was lexed from, and — for the handful of kinds that need
// decoded content rather than raw text — a parsed Value.
//
// Token identity is by Kind+content (two Ident tokens with the same text
// are the "same" token for suggestion/lookup purposes); Spans are what the
// diagnostic engine actually renders against.
type Token struct {
	Kind Kind
	Span source.Span
	// Text is the raw source slice the token was lexed from (quotes and
	// escapes included for strings, the "0x"/"x'...'" prefix included for
	// hex numbers and blobs) — except for Ident, where Text is always the
	// already-unquoted spelling, since nothing downstream ever needs a
	// quoted identifier's original bracket/backtick/doublequote form.
	Text string
	// Line is a 0-based line number field. internal/lexer does not set
	// it, so it is 0 on every lexed token; callers resolve lines from Span
	// through a FileSet.
	Line uint32

	// Value holds the decoded literal payload:
	//   Number -> float64
	//   String -> string (quotes stripped, '' un-escaped to ')
	//   Blob   -> []byte (decoded hex)
	// nil for every other kind.
	Value any
}

// Ident returns the token's text, which for Ident/Keyword tokens is the
// identifier's spelling (quotes stripped for quoted identifiers).
func (t Token) Ident() string {
	return t.Text
}

// NumberValue returns the decoded numeric value and whether decoding
// succeeded (it can still fail on overflow/malformed exponent, in which
// case a best-effort value is still returned per spec.md §4.1).
func (t Token) NumberValue() (float64, bool) {
	v, ok := t.Value.(float64)
	return v, ok
}

// StringValue returns the decoded string payload.
func (t Token) StringValue() (string, bool) {
	v, ok := t.Value.(string)
	return v, ok
}

// BlobValue returns the decoded blob payload.
func (t Token) BlobValue() ([]byte, bool) {
	v, ok := t.Value.([]byte)
	return v, ok
}
