package lexer

import (
	"iter"

	"rackpy/internal/source"
	"rackpy/internal/token"
)

// Lexer turns one normalized file into significant tokens; comments and
// whitespace ride along as Leading trivia of the token that follows them.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	peeked  token.Token
	hasPeek bool
	pending []token.Trivia // trivia до следующего токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Next returns the next significant token. EOF repeats forever and never
// carries trivia.
func (lx *Lexer) Next() token.Token {
	if lx.hasPeek {
		lx.hasPeek = false
		return lx.peeked
	}
	lx.collectLeadingTrivia()
	if lx.cursor.EOF() {
		lx.pending = nil
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}
	tok := lx.scannerFor(lx.cursor.Peek())()
	tok.Leading, lx.pending = lx.pending, nil
	return tok
}

// scannerFor picks the scan routine by the first byte of a token.
func (lx *Lexer) scannerFor(ch byte) func() token.Token {
	switch {
	case isSymbolStart(ch):
		return lx.scanSymbolOrKeyword
	case isDec(ch), ch == '-' && lx.isNumberAfterMinus():
		// "-5" число, "- 5" оператор
		return lx.scanNumber
	case ch == '"':
		return lx.scanString
	case ch == '(' || ch == ')' || ch == '\'':
		return lx.scanPunct
	case isOperatorStart(ch):
		return lx.scanOperator
	}
	return lx.scanUnknown
}

func (lx *Lexer) Peek() token.Token {
	if !lx.hasPeek {
		lx.peeked = lx.Next()
		lx.hasPeek = true
	}
	return lx.peeked
}

// All yields the remaining tokens up to and including EOF.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := lx.Next()
			if !yield(tok) || tok.Kind == token.EOF {
				return
			}
		}
	}
}

// EmptySpan is a zero-width span at the cursor.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) File() *source.File { return lx.file }

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Text(start)}
}
