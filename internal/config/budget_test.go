package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xnacly/sqleibniz/internal/rules"
)

func TestLoadBudgetMissingFileYieldsDefault(t *testing.T) {
	budget, err := LoadBudget(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if budget != rules.DefaultHookBudget {
		t.Fatalf("expected default budget, got %+v", budget)
	}
}

func TestLoadBudgetOverridesBothFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqleibniz.toml")
	src := "[hooks]\nwall_ms = 10\nsteps = 1000\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing temp toml: %v", err)
	}

	budget, err := LoadBudget(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if budget.Wall != 10*time.Millisecond || budget.Steps != 1000 {
		t.Fatalf("unexpected budget: %+v", budget)
	}
}

func TestLoadBudgetPartialOverrideKeepsOtherDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqleibniz.toml")
	src := "[hooks]\nsteps = 42\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing temp toml: %v", err)
	}

	budget, err := LoadBudget(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if budget.Wall != rules.DefaultHookBudget.Wall {
		t.Fatalf("expected default wall budget preserved, got %v", budget.Wall)
	}
	if budget.Steps != 42 {
		t.Fatalf("expected overridden steps, got %v", budget.Steps)
	}
}

func TestLoadBudgetMalformedTomlFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqleibniz.toml")
	if err := os.WriteFile(path, []byte("[hooks\n"), 0o644); err != nil {
		t.Fatalf("writing temp toml: %v", err)
	}

	if _, err := LoadBudget(path); err == nil {
		t.Fatalf("expected a parse error")
	}
}
