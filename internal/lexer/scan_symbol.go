package lexer

import (
	"rackpy/internal/token"
)

// scanSymbolOrKeyword сканирует [a-zA-Z][_a-zA-Z0-9-]* и проверяет через LookupKeyword.
// Token.Text — ровно исходный срез.
func (lx *Lexer) scanSymbolOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.BumpWhile(isSymbolContinue)

	tok := lx.emit(token.Symbol, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}
