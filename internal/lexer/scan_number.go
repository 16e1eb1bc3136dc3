package lexer

import (
	"rackpy/internal/diag"
	"rackpy/internal/token"
)

// Форма: -?[0-9]+(\.[0-9]+)?
// Точка без цифр после неё — LexBadNumber, токен всё равно завершаем как Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	lx.cursor.Eat('-')
	lx.cursor.BumpWhile(isDec)
	if lx.cursor.Eat('.') && lx.cursor.BumpWhile(isDec) == 0 {
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexBadNumber, tok.Span, "expected digit after '.' in number "+tok.Text)
		return tok
	}

	return lx.emit(token.Number, start)
}
