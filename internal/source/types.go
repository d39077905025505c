// Package source holds a byte buffer per analyzed file, a line-start index
// built once per file, and the machinery for turning a byte Span back into a
// human (line, column) position. Nothing else in this repository keeps a
// reference to source bytes: tokens and AST nodes carry Spans (indices), not
// slices, so the underlying buffer can be released once rendering has
// resolved every span it needs.
package source

type (
	// FileID identifies a source file within a FileSet.
	FileID uint32

	// FileFlags records how a file's bytes were normalized on load.
	FileFlags uint8
)

const (
	// FileVirtual marks a file added from memory (LSP overlay, test, stdin).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks a file that had a UTF-8 BOM stripped on load.
	FileHadBOM
	// FileNormalizedCRLF marks a file whose CRLF line endings were folded to LF.
	FileNormalizedCRLF
)

// File is one analyzed source file: its bytes, its line-start index, and the
// flags recorded while normalizing it.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx[i] holds the byte offset of the i-th newline in Content.
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}
