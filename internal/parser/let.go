package parser

import (
	"rackpy/internal/ast"
	"rackpy/internal/diag"
	"rackpy/internal/source"
	"rackpy/internal/token"
)

// "let" "(" ("(" SYMBOL expr ")")+ ")" expr
func (p *Parser) parseLet(open source.Span) (ast.ExprID, bool) {
	p.advance()
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "expected '(' to start let bindings"); !ok {
		return ast.NoExprID, false
	}
	if p.at(token.RParen) {
		p.errHere(diag.SynExpectBinding, "let requires at least one binding")
		return ast.NoExprID, false
	}

	var bindings []ast.LetBinding
	for !p.at(token.RParen) {
		b, ok := p.parseLetBinding()
		if !ok {
			return ast.NoExprID, false
		}
		bindings = append(bindings, b)
	}
	p.advance()

	body, ok := p.parseBody("let")
	if !ok {
		return ast.NoExprID, false
	}
	sp, ok := p.closeForm(open, "let")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewLet(sp, bindings, body), true
}

// "(" SYMBOL expr ")"
func (p *Parser) parseLetBinding() (ast.LetBinding, bool) {
	if p.at(token.EOF) {
		p.errHere(diag.SynUnclosedParen, "expected ')' to close let bindings, got end of input")
		return ast.LetBinding{}, false
	}
	open, ok := p.expect(token.LParen, diag.SynExpectBinding, "expected binding of the form (name expr)")
	if !ok {
		return ast.LetBinding{}, false
	}
	name, _, ok := p.parseSymbol("binding name")
	if !ok {
		return ast.LetBinding{}, false
	}
	value, ok := p.parseBody("let binding")
	if !ok {
		return ast.LetBinding{}, false
	}
	sp, ok := p.closeForm(open.Span, "let binding")
	if !ok {
		return ast.LetBinding{}, false
	}
	return ast.LetBinding{Name: name, Value: value, Span: sp}, true
}
