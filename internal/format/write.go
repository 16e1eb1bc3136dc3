package format

import (
	"bytes"

	"github.com/mattn/go-runewidth"

	"rackpy/internal/source"
)

// Writer accumulates formatted output and tracks the current column so that
// broken forms can align their arguments.
type Writer struct {
	sf  *source.File
	buf []byte
	col int
}

// NewWriter creates a new formatting writer.
func NewWriter(sf *source.File) *Writer {
	return &Writer{sf: sf, buf: make([]byte, 0, len(sf.Content))}
}

// Bytes returns the accumulated formatted output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Column is the zero-based display column where the next rune lands.
func (w *Writer) Column() int {
	return w.col
}

// WriteString writes s; s may contain newlines.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.buf = append(w.buf, s...)
	w.advance([]byte(s))
}

func (w *Writer) advance(chunk []byte) {
	if i := bytes.LastIndexByte(chunk, '\n'); i >= 0 {
		w.col = runewidth.StringWidth(string(chunk[i+1:]))
		return
	}
	w.col += runewidth.StringWidth(string(chunk))
}

// Break starts a new line indented to column col.
func (w *Writer) Break(col int) {
	w.buf = bytes.TrimRight(w.buf, " \t")
	w.buf = append(w.buf, '\n')
	for range col {
		w.buf = append(w.buf, ' ')
	}
	w.col = col
}

// CopySpan copies a span from the source file to the output.
func (w *Writer) CopySpan(sp source.Span) {
	if w.sf == nil || sp.File != w.sf.ID {
		return
	}
	w.CopyRange(int(sp.Start), int(sp.End))
}

// CopyRange copies a range of bytes from the source file to the output.
func (w *Writer) CopyRange(start, end int) {
	if w.sf == nil {
		return
	}
	start = max(start, 0)
	end = min(end, len(w.sf.Content))
	if start >= end {
		return
	}
	chunk := w.sf.Content[start:end]
	w.buf = append(w.buf, chunk...)
	w.advance(chunk)
}

// Finish trims trailing blank space and terminates a non-empty output with exactly one newline.
func (w *Writer) Finish() {
	w.buf = bytes.TrimRight(w.buf, " \t\n")
	if len(w.buf) > 0 {
		w.buf = append(w.buf, '\n')
	}
	w.col = 0
}
