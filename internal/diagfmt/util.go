package diagfmt

import (
	"os"
	"path/filepath"
)

// formatPath renders f's path according to mode. Grounded on the teacher's
// ast_util.go formatSpan helper's spirit (small, self-contained rendering
// helper) but reworked around path.PathMode since the teacher's own
// FormatPath lived on a different File type than this repo's
// internal/source.File.
func formatPath(path string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeRelative:
		if wd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(wd, path); err == nil {
				return rel
			}
		}
		return path
	case PathModeAuto:
		fallthrough
	default:
		if wd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(wd, path); err == nil && !isOutsideCwd(rel) {
				return rel
			}
		}
		return path
	}
}

func isOutsideCwd(rel string) bool {
	return len(rel) >= 2 && rel[:2] == ".."
}
