package rules

// AnyNodeKind is the HookDescriptor.NodeKind value meaning "invoke this
// hook for every AST node, regardless of kind".
const AnyNodeKind = "*"

// HookDescriptor names one user-authored hook: a callable, bound to an AST
// node kind, that the hook runtime invokes for every node of that kind and
// which may reject the node by returning a falsy value or raising an
// error. Body is opaque here — internal/rules only stores identity and
// wiring metadata; internal/hooks owns the Starlark callable itself, so
// this package doesn't need to import go.starlark.net.
type HookDescriptor struct {
	// Name identifies the hook in diagnostics (diag.Diagnostic.HookName)
	// and in DisabledHooks overrides.
	Name string
	// NodeKind is the AST node kind this hook is invoked against, spelled
	// the way ast.Kind.String renders it ("drop_table", "ident", ...), or
	// AnyNodeKind to match every node.
	NodeKind string
	// Body is the compiled callable; concretely a *starlark.Function.
	Body any
	// Source names the config file the hook was declared in, for error
	// messages that point back at the offending declaration.
	Source string
}

// Config is the fully-resolved rule/hook configuration for one analysis
// run: which rules are suppressed, which named hooks are suppressed, the
// hook list itself, and the resource budget hooks run under.
//
// Config is produced by internal/config from a leibniz.lua file merged
// with -D CLI flags, and is otherwise immutable for the run.
type Config struct {
	Disabled      map[Rule]bool
	DisabledHooks map[string]bool
	Hooks         []HookDescriptor
	Budget        HookBudget
}

// NewConfig returns an empty configuration: no rules disabled, no hooks
// registered, default hook budget.
func NewConfig() *Config {
	return &Config{
		Disabled:      make(map[Rule]bool),
		DisabledHooks: make(map[string]bool),
		Budget:        DefaultHookBudget,
	}
}

// Disable marks r as suppressed. NoContent and NoStatements cannot be
// disabled through this path in practice since the CLI validates against
// a fixed disable-allowlist, but Config itself doesn't enforce that; the
// allowlist lives with the CLI flag parser, closer to where the user
// actually types -D.
func (c *Config) Disable(r Rule) {
	c.Disabled[r] = true
}

// IsDisabled reports whether rule r is currently suppressed.
func (c *Config) IsDisabled(r Rule) bool {
	return c.Disabled[r]
}

// DisableHook marks a specific named hook as suppressed, independent of
// whether the Hook rule itself is disabled.
func (c *Config) DisableHook(name string) {
	c.DisabledHooks[name] = true
}

// IsHookDisabled reports whether the named hook is suppressed, either
// directly or because the Hook rule as a whole is disabled.
func (c *Config) IsHookDisabled(name string) bool {
	if c.Disabled[Hook] {
		return true
	}
	return c.DisabledHooks[name]
}

// HooksFor returns the hooks registered against the given AST node kind.
func (c *Config) HooksFor(nodeKind string) []HookDescriptor {
	var out []HookDescriptor
	for _, h := range c.Hooks {
		if (h.NodeKind == nodeKind || h.NodeKind == AnyNodeKind) && !c.IsHookDisabled(h.Name) {
			out = append(out, h)
		}
	}
	return out
}
