package lexer

import (
	"rackpy/internal/diag"
	"rackpy/internal/token"
)

// Жадность: сначала 2-символьные (>=, <=, !=), затем 1-символьные.
func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start)
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.try2('!', '='):
		return lx.emit(token.BangEq, start)
	}

	switch lx.cursor.Bump() {
	case '+':
		return lx.emit(token.Plus, start)
	case '-':
		return lx.emit(token.Minus, start)
	case '*':
		return lx.emit(token.Star, start)
	case '/':
		return lx.emit(token.Slash, start)
	case '>':
		return lx.emit(token.Gt, start)
	case '<':
		return lx.emit(token.Lt, start)
	case '=':
		return lx.emit(token.Eq, start)
	}

	// одиночный '!'
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexBadOperator, tok.Span, "'!' must be followed by '=' (did you mean '!=' or 'not'?)",
		diag.Replace("replace with '!='", tok.Span, "!="),
		diag.Replace("replace with 'not'", tok.Span, "not"))
	return tok
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	switch lx.cursor.Bump() {
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	default:
		return lx.emit(token.Quote, start)
	}
}

// scanUnknown съедает одну руну целиком, чтобы span указывал на весь символ.
func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpRune()
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character "+quoteChar(tok.Text))
	return tok
}
