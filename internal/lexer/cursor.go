package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"rackpy/internal/source"
)

// Cursor walks the bytes of one file. Every lexical class except unknown
// characters is ASCII, so most steps are single bytes.
type Cursor struct {
	File  *source.File
	Off   uint32
	limit uint32
}

// Mark is a saved offset; a token is the text between a Mark and the cursor.
type Mark uint32

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, limit: limit}
}

func (c *Cursor) EOF() bool {
	return c.Off >= c.limit
}

// Peek возвращает текущий байт или 0 в конце файла.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 нужен для "-1" и двухсимвольных операторов.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.limit {
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

// BumpWhile consumes bytes while pred holds and reports how many it took.
func (c *Cursor) BumpWhile(pred func(byte) bool) int {
	n := 0
	for !c.EOF() && pred(c.File.Content[c.Off]) {
		c.Off++
		n++
	}
	return n
}

// BumpRune consumes one UTF-8 sequence (one byte for invalid input).
func (c *Cursor) BumpRune() {
	if c.EOF() {
		return
	}
	_, size := utf8.DecodeRune(c.File.Content[c.Off:])
	c.Off += uint32(size) //nolint:gosec // size <= utf8.UTFMax
}

func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// Text is the source text between m and the cursor.
func (c *Cursor) Text(m Mark) string {
	return string(c.File.Content[m:c.Off])
}
