package token

import "testing"

func TestLookupKeywordCaseInsensitive(t *testing.T) {
	cases := []string{"vacuum", "VACUUM", "Vacuum", "vAcUuM"}
	for _, c := range cases {
		k, ok := LookupKeyword(c)
		if !ok || k != KwVacuum {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want KwVacuum, true", c, k, ok)
		}
	}
}

func TestLookupKeywordNegative(t *testing.T) {
	for _, c := range []string{"vacuu", "my_table", "explainx"} {
		if _, ok := LookupKeyword(c); ok {
			t.Fatalf("LookupKeyword(%q) unexpectedly matched", c)
		}
	}
}

func TestKeywordNameCanonicalUpperCase(t *testing.T) {
	if got := KwExplain.String(); got != "EXPLAIN" {
		t.Fatalf("KwExplain.String() = %q, want EXPLAIN", got)
	}
}

func TestSuggestNearestKeyword(t *testing.T) {
	got, ok := Suggest("EXPLAI")
	if !ok || got != "EXPLAIN" {
		t.Fatalf("Suggest(EXPLAI) = %q, %v; want EXPLAIN, true", got, ok)
	}
}

func TestSuggestNoMatchBeyondThreshold(t *testing.T) {
	if _, ok := Suggest("xyzzyplugh"); ok {
		t.Fatalf("Suggest(xyzzyplugh) unexpectedly matched")
	}
}

func TestLevenshteinBasic(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"select", "selct", 1},
	}
	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Fatalf("levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
