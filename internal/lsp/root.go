package lsp

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// defaultConfigName is the configuration file spec.md §6 names as the CLI's
// default (`-c, --config PATH`, default `leibniz.lua`) and, per spec.md
// §6's LSP surface note, the root marker for a workspace.
const defaultConfigName = "leibniz.lua"

// findConfigPath walks up from startDir looking for defaultConfigName,
// mirroring the teacher's FindSurgeToml search (internal/project/root.go)
// but for this repo's single configuration file instead of a project
// manifest.
func findConfigPath(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolving start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, defaultConfigName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}
