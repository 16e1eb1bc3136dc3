package parser

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"rackpy/internal/diag"
	"rackpy/internal/source"
)

// SyntaxError is returned by Parse and ParseAll when the input is not a
// derivable program. Context holds the offending line followed by a caret line.
type SyntaxError struct {
	Pos     source.LineCol
	Offset  uint32
	Context string
	Code    diag.Code
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s [%s]\n%s",
		e.Pos.Line, e.Pos.Col, e.Message, e.Code.ID(), e.Context)
}

// ErrorFromBag converts the first error in bag into a *SyntaxError, or
// returns nil when bag holds no errors.
func ErrorFromBag(fs *source.FileSet, bag *diag.Bag) error {
	if bag == nil {
		return nil
	}
	d, ok := bag.FirstError()
	if !ok {
		return nil
	}
	return newSyntaxError(fs, &d)
}

// newSyntaxError builds the error for d, resolving its position against fs.
func newSyntaxError(fs *source.FileSet, d *diag.Diagnostic) *SyntaxError {
	se := &SyntaxError{
		Offset:  d.Primary.Start,
		Code:    d.Code,
		Message: d.Message,
	}
	f := fs.Get(d.Primary.File)
	if f == nil {
		return se
	}
	se.Pos, _ = fs.Resolve(d.Primary)
	se.Context = caretContext(f, se.Pos)
	return se
}

// caretContext renders the source line of pos and a '^' under its column.
func caretContext(f *source.File, pos source.LineCol) string {
	line := f.Line(pos.Line)
	col := int(pos.Col) - 1
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(line[:col])
	var sb strings.Builder
	sb.WriteString(line)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteByte('^')
	return sb.String()
}
