package lexer

import (
	"testing"

	"rackpy/internal/source"
)

func newTestCursor(src string) Cursor {
	fs := source.NewFileSet()
	return NewCursor(fs.Get(fs.Add("c.rkt", []byte(src), source.FileVirtual)))
}

func TestCursorBumpWhile(t *testing.T) {
	c := newTestCursor("abc-1 rest")
	m := c.Mark()
	if n := c.BumpWhile(isSymbolContinue); n != 5 {
		t.Fatalf("BumpWhile = %d, want 5", n)
	}
	if got := c.Text(m); got != "abc-1" {
		t.Errorf("Text = %q", got)
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 5 {
		t.Errorf("SpanFrom = %v", sp)
	}
	if n := c.BumpWhile(isDec); n != 0 || c.Peek() != ' ' {
		t.Errorf("BumpWhile on mismatch = %d, peek %q", n, c.Peek())
	}
	c.BumpWhile(func(byte) bool { return true })
	if !c.EOF() || c.Bump() != 0 || c.Peek() != 0 {
		t.Error("cursor must stop at EOF")
	}
}

func TestCursorBumpRune(t *testing.T) {
	c := newTestCursor("λ\xffx")
	c.BumpRune()
	if c.Off != 2 {
		t.Fatalf("after λ Off = %d, want 2", c.Off)
	}
	c.BumpRune()
	if c.Off != 3 {
		t.Fatalf("invalid byte must advance by one, Off = %d", c.Off)
	}
	if !c.Eat('x') || !c.EOF() {
		t.Error("expected x then EOF")
	}
	c.BumpRune()
	if c.Off != 4 {
		t.Errorf("BumpRune at EOF moved to %d", c.Off)
	}
}
