package rules

import "testing"

func TestParseNameCamelAndKebab(t *testing.T) {
	cases := []struct {
		in   string
		want Rule
	}{
		{"NoContent", NoContent},
		{"no-content", NoContent},
		{"No-Content", NoContent},
		{"BadSqleibnizInstruction", BadSqleibnizInstruction},
		{"bad-sqleibniz-instruction", BadSqleibnizInstruction},
		{"unknown-keyword", UnknownKeyword},
		{"Hook", Hook},
	}
	for _, c := range cases {
		got, ok := ParseName(c.in)
		if !ok || got != c.want {
			t.Fatalf("ParseName(%q) = %v, %v; want %v, true", c.in, got, ok, c.want)
		}
	}
}

func TestParseNameRejectsUnknown(t *testing.T) {
	if _, ok := ParseName("not-a-rule"); ok {
		t.Fatalf("ParseName matched an unknown rule name")
	}
}

func TestKebabRoundTrip(t *testing.T) {
	for _, r := range All() {
		kebab := r.Kebab()
		got, ok := ParseName(kebab)
		if !ok || got != r {
			t.Fatalf("round trip through kebab failed for %v: got %v (%q), ok=%v", r, got, kebab, ok)
		}
	}
}

func TestAllCoversDescriptions(t *testing.T) {
	for _, r := range All() {
		if r.Description() == "" {
			t.Fatalf("rule %v has no description", r)
		}
		if r.Name() == "" {
			t.Fatalf("rule %v has no name", r)
		}
	}
}

func TestConfigHookDisabling(t *testing.T) {
	c := NewConfig()
	c.Hooks = []HookDescriptor{{Name: "no-drop-table", NodeKind: "DropTableStmt"}}

	if got := c.HooksFor("DropTableStmt"); len(got) != 1 {
		t.Fatalf("expected 1 active hook, got %d", len(got))
	}

	c.DisableHook("no-drop-table")
	if got := c.HooksFor("DropTableStmt"); len(got) != 0 {
		t.Fatalf("expected disabled hook to be filtered, got %d", len(got))
	}
}

func TestConfigDisableHookRuleSuppressesAll(t *testing.T) {
	c := NewConfig()
	c.Hooks = []HookDescriptor{{Name: "a", NodeKind: "K"}, {Name: "b", NodeKind: "K"}}
	c.Disable(Hook)
	if got := c.HooksFor("K"); len(got) != 0 {
		t.Fatalf("expected Hook rule disable to suppress all hooks, got %d", len(got))
	}
}
