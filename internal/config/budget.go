package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xnacly/sqleibniz/internal/rules"
)

// budgetFile is the TOML shape of a hook budget override file, grounded
// on the teacher's own project-manifest TOML struct
// (cmd/surge/project_manifest.go's projectConfig/packageConfig split).
type budgetFile struct {
	Hooks hooksBudgetSection `toml:"hooks"`
}

type hooksBudgetSection struct {
	WallMS uint64 `toml:"wall_ms"`
	Steps  uint64 `toml:"steps"`
}

// LoadBudget reads hook wall-clock/step budget overrides from a TOML
// file, separate from leibniz.lua's rule/hook script (spec.md §9 open
// question: "the hook budget defaults ... must be configurable but have
// safe defaults"). A missing file, or a present file missing the
// [hooks] table or one of its two fields, falls back to
// rules.DefaultHookBudget as a whole or per-field.
func LoadBudget(path string) (rules.HookBudget, error) {
	budget := rules.DefaultHookBudget

	var f budgetFile
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		if os.IsNotExist(err) {
			return budget, nil
		}
		return budget, fmt.Errorf("config: %s: failed to parse TOML: %w", path, err)
	}

	if meta.IsDefined("hooks", "wall_ms") {
		budget.Wall = time.Duration(f.Hooks.WallMS) * time.Millisecond
	}
	if meta.IsDefined("hooks", "steps") {
		budget.Steps = f.Hooks.Steps
	}
	return budget, nil
}
