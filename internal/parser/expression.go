package parser

import (
	"strings"

	"rackpy/internal/ast"
	"rackpy/internal/diag"
	"rackpy/internal/source"
	"rackpy/internal/token"
)

// parseExpr разбирает atom | "'" "(" expr* ")" | "(" form ")".
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Symbol:
		return p.parseAtom(ast.AtomSymbol), true
	case token.Number:
		return p.parseAtom(ast.AtomNumber), true
	case token.String:
		return p.parseAtom(ast.AtomString), true
	case token.Quote:
		return p.parseQuoted()
	case token.LParen:
		return p.parseForm()
	case token.RParen:
		p.emit(diag.NewError(diag.SynUnexpectedRParen, tok.Span, "unexpected ')' without matching '('").
			Suggest(diag.Delete("remove unmatched ')'", tok.Span)))
		return ast.NoExprID, false
	case token.EOF:
		p.errHere(diag.SynExpectExpression, "expected expression, got end of input")
		return ast.NoExprID, false
	case token.Invalid:
		// лексер уже сообщил об ошибке
		p.errors++
		p.advance()
		return ast.NoExprID, false
	default:
		if tok.Kind.IsKeyword() || tok.Kind.IsOperator() {
			p.emit(diag.NewError(diag.SynUnexpectedToken, tok.Span,
				tokenDesc(tok)+" may only appear at the head of a parenthesized form"))
			return ast.NoExprID, false
		}
		p.errHere(diag.SynExpectExpression, "expected expression, got "+tokenDesc(tok))
		return ast.NoExprID, false
	}
}

func (p *Parser) parseAtom(kind ast.AtomKind) ast.ExprID {
	tok := p.advance()
	text := p.arenas.Strings.Intern(tok.Text)
	return p.arenas.Exprs.NewAtom(tok.Span, kind, text)
}

// parseQuoted: "'" "(" expr* ")"
func (p *Parser) parseQuoted() (ast.ExprID, bool) {
	quote := p.advance()
	open, ok := p.expect(token.LParen, diag.SynExpectLParen, "expected '(' after quote")
	if !ok {
		return ast.NoExprID, false
	}
	elems, ok := p.parseExprsUntilClose()
	if !ok {
		return ast.NoExprID, false
	}
	closeSpan, ok := p.closeForm(open.Span, "quoted list")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewQuoted(quote.Span.Cover(closeSpan), elems), true
}

// parseExprsUntilClose разбирает expr* до ')' или EOF; саму ')' не съедает.
func (p *Parser) parseExprsUntilClose() ([]ast.ExprID, bool) {
	var out []ast.ExprID
	for !p.at(token.RParen, token.EOF) {
		id, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}

// parseExprsAtLeastOne — то же, что parseExprsUntilClose, но требует хотя бы одно выражение.
func (p *Parser) parseExprsAtLeastOne(what string) ([]ast.ExprID, bool) {
	if p.at(token.RParen) {
		p.errHere(diag.SynExpectExpression, what+" expects at least one operand")
		return nil, false
	}
	return p.parseExprsUntilClose()
}

// closeForm съедает ')' формы, открытой в open, и возвращает span всей формы.
func (p *Parser) closeForm(open source.Span, what string) (source.Span, bool) {
	switch {
	case p.at(token.RParen):
		tok := p.advance()
		return open.Cover(tok.Span), true
	case p.at(token.EOF):
		at := p.here()
		// одна правка закрывает все открытые скобки разом
		closing := strings.Repeat(")", max(1, p.depth))
		p.emit(diag.NewError(diag.SynUnclosedParen, at, "expected ')' to close "+what+", got end of input").
			WithNote(open, "opening '(' is here").
			Suggest(diag.Insert("insert "+closing, at, closing)))
		return source.Span{}, false
	default:
		tok := p.lx.Peek()
		p.errorAt(diag.SynTooManyExpressions, tok.Span, "unexpected extra expression in "+what+": "+tokenDesc(tok))
		return source.Span{}, false
	}
}

func (p *Parser) parseSymbol(what string) (source.StringID, source.Span, bool) {
	if p.at(token.Symbol) {
		tok := p.advance()
		return p.arenas.Strings.Intern(tok.Text), tok.Span, true
	}
	tok := p.lx.Peek()
	p.errorAt(diag.SynExpectSymbol, p.here(), "expected "+what+", got "+tokenDesc(tok))
	return source.NoStringID, source.Span{}, false
}

// parseParams разбирает SYMBOL* до ')' включительно.
func (p *Parser) parseParams() ([]source.StringID, bool) {
	var params []source.StringID
	for !p.at(token.RParen) {
		if p.at(token.EOF) {
			p.errHere(diag.SynUnclosedParen, "expected ')' to close parameter list, got end of input")
			return nil, false
		}
		name, _, ok := p.parseSymbol("parameter name")
		if !ok {
			return nil, false
		}
		params = append(params, name)
	}
	p.advance()
	return params, true
}
