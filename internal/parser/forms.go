package parser

import (
	"rackpy/internal/ast"
	"rackpy/internal/diag"
	"rackpy/internal/source"
	"rackpy/internal/token"
)

var operatorKinds = map[token.Kind]ast.OpKind{
	token.Plus:   ast.OpAdd,
	token.Minus:  ast.OpSub,
	token.Star:   ast.OpMul,
	token.Slash:  ast.OpDiv,
	token.Gt:     ast.OpGt,
	token.Lt:     ast.OpLt,
	token.GtEq:   ast.OpGtEq,
	token.LtEq:   ast.OpLtEq,
	token.Eq:     ast.OpEq,
	token.BangEq: ast.OpNotEq,
}

// parseForm выбирает по голове формы нужный распознаватель.
func (p *Parser) parseForm() (ast.ExprID, bool) {
	open := p.advance().Span
	head := p.lx.Peek()

	switch head.Kind {
	case token.KwDefine:
		return p.parseDefine(open)
	case token.KwLambda:
		return p.parseLambda(open)
	case token.KwIf:
		return p.parseIf(open)
	case token.KwAnd, token.KwOr:
		return p.parseLogical(open, head.Kind)
	case token.KwNot, token.KwCar, token.KwCdr:
		return p.parseUnary(open, head.Kind)
	case token.KwLet:
		return p.parseLet(open)
	case token.KwList:
		return p.parseList(open)
	case token.KwCons:
		return p.parseCons(open)
	case token.Symbol:
		return p.parseCall(open)
	case token.RParen:
		p.emit(diag.NewError(diag.SynEmptyForm, open.Cover(head.Span), "empty form '()' is not an expression"))
		p.advance()
		return ast.NoExprID, false
	case token.EOF:
		p.emit(diag.NewError(diag.SynUnclosedParen, p.here(), "expected form after '(', got end of input").
			WithNote(open, "opening '(' is here"))
		return ast.NoExprID, false
	}

	if op, ok := operatorKinds[head.Kind]; ok {
		return p.parseOperation(open, op)
	}
	p.errorAt(diag.SynUnexpectedToken, head.Span,
		"expected keyword, operator or function name after '(', got "+tokenDesc(head))
	return ast.NoExprID, false
}

// OPERATOR expr+
func (p *Parser) parseOperation(open source.Span, op ast.OpKind) (ast.ExprID, bool) {
	p.advance()
	args, ok := p.parseExprsAtLeastOne("operator '" + op.String() + "'")
	if !ok {
		return ast.NoExprID, false
	}
	sp, ok := p.closeForm(open, "operation")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewOperation(sp, op, args), true
}

// SYMBOL expr*
func (p *Parser) parseCall(open source.Span) (ast.ExprID, bool) {
	callee := p.arenas.Strings.Intern(p.advance().Text)
	args, ok := p.parseExprsUntilClose()
	if !ok {
		return ast.NoExprID, false
	}
	sp, ok := p.closeForm(open, "call")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCall(sp, callee, args), true
}

// "define" SYMBOL expr | "define" "(" SYMBOL SYMBOL* ")" expr
func (p *Parser) parseDefine(open source.Span) (ast.ExprID, bool) {
	p.advance()
	if p.at(token.LParen) {
		p.advance()
		name, _, ok := p.parseSymbol("function name")
		if !ok {
			return ast.NoExprID, false
		}
		params, ok := p.parseParams()
		if !ok {
			return ast.NoExprID, false
		}
		body, ok := p.parseBody("define")
		if !ok {
			return ast.NoExprID, false
		}
		sp, ok := p.closeForm(open, "define")
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewDefineFunction(sp, name, params, body), true
	}

	name, _, ok := p.parseSymbol("name or '(' after define")
	if !ok {
		return ast.NoExprID, false
	}
	value, ok := p.parseBody("define")
	if !ok {
		return ast.NoExprID, false
	}
	sp, ok := p.closeForm(open, "define")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewDefine(sp, name, value), true
}

// "lambda" "(" SYMBOL* ")" expr
func (p *Parser) parseLambda(open source.Span) (ast.ExprID, bool) {
	p.advance()
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "expected '(' to start lambda parameter list"); !ok {
		return ast.NoExprID, false
	}
	params, ok := p.parseParams()
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseBody("lambda")
	if !ok {
		return ast.NoExprID, false
	}
	sp, ok := p.closeForm(open, "lambda")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewLambda(sp, params, body), true
}

// "if" expr expr expr?
func (p *Parser) parseIf(open source.Span) (ast.ExprID, bool) {
	p.advance()
	cond, ok := p.parseBody("if")
	if !ok {
		return ast.NoExprID, false
	}
	then, ok := p.parseBody("if")
	if !ok {
		return ast.NoExprID, false
	}
	els := ast.NoExprID
	if !p.at(token.RParen, token.EOF) {
		els, ok = p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
	}
	sp, ok := p.closeForm(open, "if")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewIf(sp, cond, then, els), true
}

// "and" expr+ | "or" expr+
func (p *Parser) parseLogical(open source.Span, kw token.Kind) (ast.ExprID, bool) {
	name := p.advance().Text
	operands, ok := p.parseExprsAtLeastOne("'" + name + "'")
	if !ok {
		return ast.NoExprID, false
	}
	sp, ok := p.closeForm(open, name)
	if !ok {
		return ast.NoExprID, false
	}
	if kw == token.KwAnd {
		return p.arenas.Exprs.NewAnd(sp, operands), true
	}
	return p.arenas.Exprs.NewOr(sp, operands), true
}

// "not" expr | "car" expr | "cdr" expr
func (p *Parser) parseUnary(open source.Span, kw token.Kind) (ast.ExprID, bool) {
	name := p.advance().Text
	operand, ok := p.parseBody(name)
	if !ok {
		return ast.NoExprID, false
	}
	sp, ok := p.closeForm(open, name)
	if !ok {
		return ast.NoExprID, false
	}
	switch kw {
	case token.KwNot:
		return p.arenas.Exprs.NewNot(sp, operand), true
	case token.KwCar:
		return p.arenas.Exprs.NewCar(sp, operand), true
	default:
		return p.arenas.Exprs.NewCdr(sp, operand), true
	}
}

// "list" expr*
func (p *Parser) parseList(open source.Span) (ast.ExprID, bool) {
	p.advance()
	elems, ok := p.parseExprsUntilClose()
	if !ok {
		return ast.NoExprID, false
	}
	sp, ok := p.closeForm(open, "list")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewList(sp, elems), true
}

// "cons" expr expr
func (p *Parser) parseCons(open source.Span) (ast.ExprID, bool) {
	p.advance()
	head, ok := p.parseBody("cons")
	if !ok {
		return ast.NoExprID, false
	}
	tail, ok := p.parseBody("cons")
	if !ok {
		return ast.NoExprID, false
	}
	sp, ok := p.closeForm(open, "cons")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCons(sp, head, tail), true
}

// parseBody разбирает обязательное выражение внутри формы what.
// ')' на его месте — SynExpectBody, а не общая ошибка.
func (p *Parser) parseBody(what string) (ast.ExprID, bool) {
	if p.at(token.RParen) {
		p.errHere(diag.SynExpectBody, "'"+what+"' is missing an expression")
		return ast.NoExprID, false
	}
	return p.parseExpr()
}
