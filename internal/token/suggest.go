package token

import "strings"

// levenshtein computes the classic edit distance (insertions, deletions,
// substitutions) between a and b using the standard iterative
// dynamic-programming matrix, collapsed to two rows.
//
// The naive recursive formulation (as used by the reference implementation
// this analyzer is modeled on) is exponential in the length of its inputs;
// the parser calls Suggest, and so levenshtein(), once per unknown
// statement-leading identifier against the entire keyword table, so the
// iterative form is required, not a style preference.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// MaxSuggestionDistance is the minimum acceptable similarity for a
// "did you mean" suggestion: keywords more than this many edits away from
// the offending identifier are not suggested. spec.md §9 leaves the exact
// threshold as an open question deferred to the implementation; two edits
// catches single-character typos and transpositions ("SELCT", "SLEECT")
// without flooding short identifiers with noise.
const MaxSuggestionDistance = 2

// Suggest returns the closest keyword (by case-insensitive edit distance)
// to ident, and whether it is close enough to suggest. An exact match
// (distance zero) never suggests, since LookupKeyword would already have
// classified the token as that keyword.
func Suggest(ident string) (keyword string, ok bool) {
	folded := fold.String(ident)
	best := ""
	bestDist := MaxSuggestionDistance + 1
	for _, kw := range AllKeywords() {
		if kw == folded {
			continue
		}
		d := levenshtein(folded, kw)
		if d < bestDist {
			bestDist = d
			best = kw
		}
	}
	if best == "" || bestDist > MaxSuggestionDistance {
		return "", false
	}
	return strings.ToUpper(best), true
}
