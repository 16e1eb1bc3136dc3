package lexer

import (
	"rackpy/internal/token"
)

// triviaScanners: runs of blanks, runs of newlines and ';' line comments each
// fold into one Trivia.
var triviaScanners = [...]struct {
	first func(byte) bool
	rest  func(byte) bool
	kind  token.TriviaKind
}{
	{isSpace, isSpace, token.TriviaSpace},
	{isNewline, isNewline, token.TriviaNewline},
	{func(b byte) bool { return b == ';' }, notNewline, token.TriviaComment},
}

// collectLeadingTrivia fills lx.pending until a significant byte or EOF.
func (lx *Lexer) collectLeadingTrivia() {
	lx.pending = nil
scan:
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		for _, ts := range triviaScanners {
			if !ts.first(b) {
				continue
			}
			start := lx.cursor.Mark()
			lx.cursor.BumpWhile(ts.rest)
			lx.pending = append(lx.pending, token.Trivia{
				Kind: ts.kind,
				Span: lx.cursor.SpanFrom(start),
				Text: lx.cursor.Text(start),
			})
			continue scan
		}
		return
	}
}
