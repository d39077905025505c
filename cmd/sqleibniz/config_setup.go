package main

import (
	"fmt"

	"github.com/xnacly/sqleibniz/internal/config"
	"github.com/xnacly/sqleibniz/internal/rules"
)

// undisableable lists rules the CLI refuses to pass through to
// Config.Disable, per internal/rules/config.go's own comment: "the
// allowlist lives with the CLI flag parser, closer to where the user
// actually types -D". NoContent/NoStatements exist so a genuinely empty
// or content-free file is never silently accepted.
var undisableable = map[rules.Rule]bool{
	rules.NoContent:    true,
	rules.NoStatements: true,
}

// loadConfig builds the rule/hook configuration for one run: the
// leibniz.lua script at configPath (skipped entirely when
// ignoreConfig is set), the budget override file at budgetPath, and
// the -D disable list. Warnings collected along the way are returned
// for the caller to print to stderr, per spec.md §7's "configuration
// errors are reported on stderr once at startup" policy.
func loadConfig(configPath string, ignoreConfig bool, budgetPath string, disableFlags []string) (*rules.Config, []string, error) {
	budget, err := config.LoadBudget(budgetPath)
	if err != nil {
		return nil, nil, err
	}

	var cfg *rules.Config
	var warnings []string
	if ignoreConfig {
		cfg = rules.NewConfig()
		cfg.Budget = budget
	} else {
		cfg, warnings, err = config.Load(configPath, budget)
		if err != nil {
			return nil, nil, err
		}
	}

	for _, name := range disableFlags {
		rule, ok := rules.ParseName(name)
		if !ok {
			return nil, nil, fmt.Errorf("unknown rule name %q", name)
		}
		if undisableable[rule] {
			return nil, nil, fmt.Errorf("rule %q cannot be disabled", rule.Kebab())
		}
		cfg.Disable(rule)
	}

	return cfg, warnings, nil
}
