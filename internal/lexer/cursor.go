package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/xnacly/sqleibniz/internal/source"
)

// Cursor is a byte-accurate read position inside a single file's content.
type Cursor struct {
	File *source.File
	Off  uint32
}

func NewCursor(f *source.File) Cursor {
	return Cursor{File: f, Off: 0}
}

func (c *Cursor) limit() uint32 {
	n, err := safecast.Conv[uint32](len(c.File.Content))
	if err != nil {
		panic(fmt.Errorf("lexer: file content too large: %w", err))
	}
	return n
}

func (c *Cursor) EOF() bool {
	return c.Off >= c.limit()
}

func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.limit() {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Mark is a saved cursor position, used to compute the Span of whatever
// was scanned since it was taken.
type Mark uint32

func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// EatFold consumes the next byte if it case-insensitively matches the
// ASCII letter b (b must be lowercase).
func (c *Cursor) EatFold(b byte) bool {
	if c.EOF() {
		return false
	}
	got := c.File.Content[c.Off]
	if got|0x20 == b {
		c.Off++
		return true
	}
	return false
}
