package lexer

import (
	"rackpy/internal/diag"
	"rackpy/internal/token"
)

// "..." без escape-последовательностей: строка заканчивается на первой '"'.
// Перевод строки внутри допустим.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '"' {
			return lx.emit(token.String, start)
		}
	}
	// EOF без закрывающей кавычки
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal",
		diag.Insert(`insert closing '"'`, tok.Span, `"`))
	return tok
}
