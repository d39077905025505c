package diagfmt

// PathMode controls how a file's path is displayed in rendered output.
type PathMode uint8

const (
	// PathModeAuto shows a path relative to the working directory when
	// possible, falling back to the path as given.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures Pretty's human-readable rendering.
type PrettyOpts struct {
	Color bool
	// Context is the number of lines of source shown above and below the
	// primary span's line, per spec.md §4.3 (N=2 by default).
	Context int
	PathMode PathMode
	// Highlight enables token-kind-based coloring of the excerpt line
	// (the supplemented syntax-highlighting feature, see DESIGN.md).
	// Ignored when Color is false.
	Highlight bool
	ShowNotes bool
}

// DefaultPrettyOpts matches spec.md §4.3's defaults.
func DefaultPrettyOpts() PrettyOpts {
	return PrettyOpts{Context: 2, ShowNotes: true}
}

// JSONOpts configures JSON's machine-readable rendering.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	// Max caps the number of diagnostics encoded; 0 means unlimited.
	Max              int
	IncludeNotes     bool
	IncludeSuggestion bool
	// IncludeSuppressed includes verdicts the suppression engine dropped,
	// marked via the "suppressed" field, instead of omitting them.
	IncludeSuppressed bool
}
