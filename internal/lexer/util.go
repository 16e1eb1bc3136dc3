package lexer

import "strconv"

// ===== Классификаторы (только ASCII) =====

func isSymbolStart(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isSymbolContinue(b byte) bool {
	return isSymbolStart(b) || isDec(b) || b == '_' || b == '-'
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v'
}

func isNewline(b byte) bool  { return b == '\n' }
func notNewline(b byte) bool { return b != '\n' }

func isOperatorStart(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '>', '<', '=', '!':
		return true
	}
	return false
}

// "-" сразу за которым цифра?
func (lx *Lexer) isNumberAfterMinus() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '-' && isDec(b1)
}

// ===== Матчеры последовательностей операторов =====

func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}

func quoteChar(s string) string {
	return strconv.QuoteToASCII(s)
}
