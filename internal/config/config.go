// Package config loads sqleibniz's two configuration surfaces: the
// Starlark rule/hook script (leibniz.lua, spec.md §6) and an optional
// TOML file overriding the hook runtime's resource budget. Both loaders
// are collaborators the analysis core only sees through the
// *rules.Config they produce (spec.md's OVERVIEW lists "the
// configuration-file loader" as an external collaborator); this package
// is the CLI-side implementation of that interface.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/xnacly/sqleibniz/internal/rules"
	"go.starlark.net/starlark"
)

// Load reads and evaluates the Starlark configuration script at path,
// producing a *rules.Config seeded with budget. A missing file is not
// an error: spec.md §6 says "missing fields default to empty", which
// this package extends to "a missing file defaults to an empty
// configuration". A malformed top-level shape or an individual
// malformed field is reported as a warning and dropped rather than
// aborting the whole load (spec.md §7: "the affected hook/rule is
// dropped, and analysis proceeds without it"); only a script that fails
// to parse/execute at all is a hard error, since no field extraction is
// possible from a broken script.
func Load(path string, budget rules.HookBudget) (*rules.Config, []string, error) {
	cfg := rules.NewConfig()
	cfg.Budget = budget

	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil, nil
		}
		return nil, nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	thread := &starlark.Thread{
		Name: "config:" + path,
		Print: func(*starlark.Thread, string) {
			// Configuration scripts are declarative; prints are not a
			// supported communication channel and are discarded.
		},
	}
	globals, err := starlark.ExecFile(thread, path, src, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %s: %w", path, err)
	}

	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	top, ok := globals["leibniz"]
	if !ok {
		return cfg, warnings, nil
	}
	dict, ok := top.(*starlark.Dict)
	if !ok {
		warn("%s: top-level `leibniz` must be a dict, got %s; ignoring configuration", path, top.Type())
		return cfg, warnings, nil
	}

	loadDisabledRules(dict, cfg, path, warn)
	loadHooks(dict, cfg, path, warn)

	return cfg, warnings, nil
}

func loadDisabledRules(dict *starlark.Dict, cfg *rules.Config, path string, warn func(string, ...any)) {
	v, found, _ := dict.Get(starlark.String("disabled_rules"))
	if !found {
		return
	}
	list, ok := v.(*starlark.List)
	if !ok {
		warn("%s: disabled_rules must be a list, ignoring", path)
		return
	}

	iter := list.Iterate()
	defer iter.Done()
	var item starlark.Value
	for iter.Next(&item) {
		s, ok := item.(starlark.String)
		if !ok {
			warn("%s: disabled_rules entries must be strings, skipping %v", path, item)
			continue
		}
		rule, ok := rules.ParseName(string(s))
		if !ok {
			warn("%s: unknown rule name %q in disabled_rules, skipping", path, string(s))
			continue
		}
		cfg.Disable(rule)
	}
}

func loadHooks(dict *starlark.Dict, cfg *rules.Config, path string, warn func(string, ...any)) {
	v, found, _ := dict.Get(starlark.String("hooks"))
	if !found {
		return
	}
	list, ok := v.(*starlark.List)
	if !ok {
		warn("%s: hooks must be a list, ignoring", path)
		return
	}

	iter := list.Iterate()
	defer iter.Done()
	var item starlark.Value
	for iter.Next(&item) {
		entry, ok := item.(*starlark.Dict)
		if !ok {
			warn("%s: hooks entries must be dicts, skipping %v", path, item)
			continue
		}
		desc, ok := parseHookEntry(entry, path, warn)
		if !ok {
			continue
		}
		cfg.Hooks = append(cfg.Hooks, desc)
	}
}

// parseHookEntry decodes one `{name, node?, hook}` dict per spec.md §3's
// hook descriptor shape. node defaults to rules.AnyNodeKind when absent,
// matching the descriptor's own `string | ANY` contract.
func parseHookEntry(entry *starlark.Dict, path string, warn func(string, ...any)) (rules.HookDescriptor, bool) {
	nameV, found, _ := entry.Get(starlark.String("name"))
	if !found {
		warn("%s: hook entry missing required field `name`, skipping", path)
		return rules.HookDescriptor{}, false
	}
	name, ok := nameV.(starlark.String)
	if !ok {
		warn("%s: hook `name` must be a string, skipping", path)
		return rules.HookDescriptor{}, false
	}

	nodeKind := rules.AnyNodeKind
	if nodeV, found, _ := entry.Get(starlark.String("node")); found {
		if s, ok := nodeV.(starlark.String); ok {
			// ast.Kind.String() is always lowercase; normalize here so
			// `node = "Vacuum"` and `node = "VACUUM"` both match the same
			// way `node = "vacuum"` does, per rules.HookDescriptor.NodeKind's
			// contract of matching Runtime.visit's kind.String() form.
			nodeKind = strings.ToLower(string(s))
		} else {
			warn("%s: hook %q's `node` must be a string, defaulting to any", path, string(name))
		}
	}

	hookV, found, _ := entry.Get(starlark.String("hook"))
	if !found {
		warn("%s: hook %q missing required field `hook`, skipping", path, string(name))
		return rules.HookDescriptor{}, false
	}
	callable, ok := hookV.(starlark.Callable)
	if !ok {
		warn("%s: hook %q's `hook` field must be callable, skipping", path, string(name))
		return rules.HookDescriptor{}, false
	}

	return rules.HookDescriptor{
		Name:     string(name),
		NodeKind: nodeKind,
		Body:     callable,
		Source:   path,
	}, true
}
