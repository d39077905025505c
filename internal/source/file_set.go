package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns the set of files under analysis in one run (CLI batch or LSP
// workspace) and resolves Spans back to file bytes and line/column
// positions. A single-file SourceMap, as spec.md calls it, is just a
// FileSet holding one File plus the accessors below.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0, 4),
		index: make(map[string]FileID),
	}
}

// Add stores already-normalized bytes and returns a new FileID. Re-adding a
// path replaces the index entry with the new ID but keeps the old File
// object alive as long as any Span still references it.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: too many files loaded: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: lineIdx,
		Flags:   flags,
	})
	fs.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, normalizes BOM/CRLF, and adds it.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is supplied by the CLI's caller, not untrusted input
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("source: reading %s: %w", path, err)
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory buffer (LSP overlay, stdin, test fixture).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileVirtual
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(name, content, flags)
}

// Get returns the file metadata for id. It panics on an out-of-range id,
// which can only happen if a Span outlives the FileSet that produced it.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// GetByPath returns the most recently added file for path, if any.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := fs.index[normalizePath(path)]
	if !ok {
		return nil, false
	}
	return &fs.files[id], true
}

// Resolve converts a Span into 1-based start/end line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Slice returns the bytes covered by span, clamped to file bounds.
func (fs *FileSet) Slice(span Span) []byte {
	f := fs.Get(span.File)
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("source: file content length overflow: %w", err))
	}
	span = span.Clamp(lenContent)
	return f.Content[span.Start:span.End]
}

// Line returns the 1-based line's raw content, without its trailing
// newline. An out-of-range lineNum returns an empty string.
func (f *File) Line(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	start := lineStartOffset(f, lineNum)
	end := lineEndOffsetExclusive(f, lineNum)
	if start > end || int(end) > len(f.Content) {
		return ""
	}
	return string(f.Content[start:end])
}

// LineCount returns the number of lines in the file (always >= 1 for
// non-empty content).
func (f *File) LineCount() uint32 {
	return uint32(len(f.LineIdx)) + 1
}

func lineStartOffset(f *File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return uint32(len(f.Content))
}

func lineEndOffsetExclusive(f *File, line uint32) uint32 {
	idx := line - 1
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx]
	}
	return uint32(len(f.Content))
}
