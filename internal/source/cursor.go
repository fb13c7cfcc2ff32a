package source

import (
	"fmt"
	"io"
	"os"

	"xpresso/internal/token"
)

// EOFChar is the sentinel returned by Peek and Next past end of input.
const EOFChar byte = 0

// Cursor is a sequential, peekable character stream over a single source
// text with 1-based line and column bookkeeping. It is byte-oriented:
// multi-byte runes pass through untouched inside identifiers, strings and
// comments, and column counts advance per byte, which matches how the
// lexer slices lexemes.
type Cursor struct {
	src    string
	offset int
	line   int
	column int
}

// Mark is an opaque snapshot of cursor state, used by the lexer to undo
// a speculative scan.
type Mark struct {
	offset int
	line   int
	column int
}

func NewCursor(src string) *Cursor {
	return &Cursor{src: src, line: 1, column: 1}
}

// FromFile reads path and returns a cursor over its contents. The file
// handle is closed before returning on every path, including read errors.
func FromFile(path string) (*Cursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return NewCursor(string(data)), nil
}

func (c *Cursor) AtEnd() bool {
	return c.offset >= len(c.src)
}

// Next consumes and returns the current character, advancing line and
// column bookkeeping. Returns EOFChar at end of input.
func (c *Cursor) Next() byte {
	if c.AtEnd() {
		return EOFChar
	}
	ch := c.src[c.offset]
	c.offset++
	if ch == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	return ch
}

// Peek returns the current character without consuming it.
func (c *Cursor) Peek() byte {
	if c.AtEnd() {
		return EOFChar
	}
	return c.src[c.offset]
}

// PeekAt returns the character k positions ahead of the current one,
// so PeekAt(0) == Peek().
func (c *Cursor) PeekAt(k int) byte {
	if c.offset+k >= len(c.src) {
		return EOFChar
	}
	return c.src[c.offset+k]
}

// Match consumes the current character only if it equals expected.
func (c *Cursor) Match(expected byte) bool {
	if c.Peek() != expected {
		return false
	}
	c.Next()
	return true
}

func (c *Cursor) Offset() int {
	return c.offset
}

func (c *Cursor) Position() token.Position {
	return token.Position{Line: c.line, Column: c.column, Offset: c.offset}
}

// Slice returns the source text between two byte offsets.
func (c *Cursor) Slice(from, to int) string {
	return c.src[from:to]
}

// Snapshot captures the cursor state for later Reset.
func (c *Cursor) Snapshot() Mark {
	return Mark{offset: c.offset, line: c.line, column: c.column}
}

// Reset rewinds the cursor to a previously captured snapshot.
func (c *Cursor) Reset(m Mark) {
	c.offset = m.offset
	c.line = m.line
	c.column = m.column
}

// Source returns the full underlying text.
func (c *Cursor) Source() string {
	return c.src
}
