package rules

// DocURL returns the documentation link attached to diagnostics of rule r.
// Statement-specific rules point at the relevant page of the target
// engine's own SQL grammar documentation (grounded on the doc links
// embedded in original_source/src/parser/nodes.rs's node docstrings);
// generic rules point at this analyzer's own rule reference.
func DocURL(r Rule) string {
	switch r {
	case SqliteUnsupported, Quirk:
		return "https://www.sqlite.org/quirks.html"
	case UnknownKeyword:
		return "https://sqlite.org/lang_keywords.html"
	default:
		return "https://sqlite.org/lang.html#rule-" + r.Kebab()
	}
}

// StatementDocURL returns the documentation link for a specific statement
// grammar, used by Syntax diagnostics raised while parsing that statement
// (spec.md §4.2 scenario 3: "doc URL pointing at the statement grammar").
func StatementDocURL(statement string) string {
	urls := map[string]string{
		"explain":    "https://www.sqlite.org/lang_explain.html",
		"vacuum":     "https://www.sqlite.org/lang_vacuum.html",
		"begin":      "https://www.sqlite.org/lang_transaction.html",
		"commit":     "https://www.sqlite.org/lang_transaction.html",
		"rollback":   "https://www.sqlite.org/lang_transaction.html",
		"savepoint":  "https://www.sqlite.org/lang_savepoint.html",
		"release":    "https://www.sqlite.org/lang_savepoint.html",
		"attach":     "https://www.sqlite.org/lang_attach.html",
		"detach":     "https://www.sqlite.org/lang_detach.html",
		"analyze":    "https://www.sqlite.org/lang_analyze.html",
		"reindex":    "https://www.sqlite.org/lang_reindex.html",
		"drop":       "https://www.sqlite.org/lang_dropindex.html",
		"pragma":     "https://www.sqlite.org/pragma.html",
		"altertable": "https://www.sqlite.org/lang_altertable.html",
	}
	if u, ok := urls[statement]; ok {
		return u
	}
	return "https://www.sqlite.org/lang.html"
}
