// Package rules defines the closed diagnostic-rule taxonomy (spec.md §6),
// the active suppression set, and the configuration model (disabled rules
// plus the hook list loaded from a configuration file) that the diagnostic
// engine and hook runtime consult.
package rules

import "strings"

// Rule is the closed-set identity for a diagnostic class — the unit of
// suppression. Hook is the one open-ended member: a Hook diagnostic's full
// identity also carries a hook name (see diag.Diagnostic.HookName), which
// is why Rule alone doesn't distinguish between different hooks.
type Rule uint8

const (
	NoContent Rule = iota
	NoStatements
	Unimplemented
	UnknownKeyword
	BadSqleibnizInstruction
	SqliteUnsupported
	Quirk
	UnterminatedString
	UnknownCharacter
	InvalidNumericLiteral
	InvalidBlob
	Syntax
	Semicolon
	Hook

	numRules
)

var camelNames = [numRules]string{
	NoContent:               "NoContent",
	NoStatements:            "NoStatements",
	Unimplemented:           "Unimplemented",
	UnknownKeyword:          "UnknownKeyword",
	BadSqleibnizInstruction: "BadSqleibnizInstruction",
	SqliteUnsupported:       "SqliteUnsupported",
	Quirk:                   "Quirk",
	UnterminatedString:      "UnterminatedString",
	UnknownCharacter:        "UnknownCharacter",
	InvalidNumericLiteral:   "InvalidNumericLiteral",
	InvalidBlob:             "InvalidBlob",
	Syntax:                  "Syntax",
	Semicolon:               "Semicolon",
	Hook:                    "Hook",
}

var descriptions = [numRules]string{
	NoContent:               "source file is empty",
	NoStatements:            "source file is not empty but holds no statements",
	Unimplemented:           "source file contains constructs sqleibniz does not yet understand",
	UnknownKeyword:          "source file contains an unknown keyword",
	BadSqleibnizInstruction: "source file contains an invalid sqleibniz instruction",
	SqliteUnsupported:       "source file uses SQL features sqlite does not support",
	Quirk:                   "sqlite or SQL quirk, see https://www.sqlite.org/quirks.html",
	UnterminatedString:      "source file contains an unterminated string",
	UnknownCharacter:        "source file contains an unknown character",
	InvalidNumericLiteral:   "source file contains an invalid numeric literal",
	InvalidBlob:             "source file contains an invalid blob literal",
	Syntax:                  "source file contains a structure with incorrect syntax",
	Semicolon:               "source file is missing a semicolon",
	Hook:                    "a user-authored hook rejected the analyzed AST node",
}

// Name returns the CamelCase canonical rule name, as used in configuration
// files.
func (r Rule) Name() string {
	if int(r) >= len(camelNames) {
		return "Unknown"
	}
	return camelNames[r]
}

// Kebab returns the kebab-case rule name, as used on the CLI (-D flag).
func (r Rule) Kebab() string {
	return camelToKebab(r.Name())
}

// Description returns a short human-readable description of the rule,
// grounded on the reference implementation's Rule::description().
func (r Rule) Description() string {
	if int(r) >= len(descriptions) {
		return ""
	}
	return descriptions[r]
}

func (r Rule) String() string {
	return r.Name()
}

func camelToKebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

func kebabToCamel(s string) string {
	parts := strings.Split(s, "-")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// ParseName accepts both accepted spellings of a rule name — CamelCase
// (as used in configuration files) and kebab-case (as used on the CLI) —
// and resolves it to a Rule. Matching is case-insensitive on the kebab
// form so "no-content", "No-Content" and "NoContent" all resolve.
func ParseName(s string) (Rule, bool) {
	camel := s
	if strings.Contains(s, "-") || s == strings.ToLower(s) {
		camel = kebabToCamel(strings.ToLower(s))
	}
	for r := Rule(0); r < numRules; r++ {
		if strings.EqualFold(camelNames[r], camel) {
			return r, true
		}
	}
	return 0, false
}

// All returns every rule in the closed taxonomy, in declaration order.
func All() []Rule {
	out := make([]Rule, 0, numRules)
	for r := Rule(0); r < numRules; r++ {
		out = append(out, r)
	}
	return out
}
