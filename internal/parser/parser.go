package parser

import (
	"slices"

	"rackpy/internal/ast"
	"rackpy/internal/diag"
	"rackpy/internal/lexer"
	"rackpy/internal/source"
	"rackpy/internal/token"
)

// Options tunes ParseFile. MaxErrors 0 means no limit.
type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
	// Single принимает ровно одно выражение: пустой ввод и вторая форма - ошибки
	Single bool
}

type Result struct {
	Roots []ast.ExprID
	Bag   *diag.Bag // the reporter's bag when it is a BagReporter
}

// Parser holds the state of one file: the token stream, the arenas nodes
// go into and what error recovery needs.
type Parser struct {
	lx     *lexer.Lexer
	arenas *ast.Builder
	opts   Options
	errors uint        // включая Invalid-токены, о которых сообщил лексер
	last   source.Span // последний съеденный токен
	depth  int         // открытые '(' для восстановления
}

func newParser(lx *lexer.Lexer, arenas *ast.Builder, opts Options) *Parser {
	return &Parser{lx: lx, arenas: arenas, opts: opts, last: lx.EmptySpan()}
}

// ParseFile parses every top-level form. After an error the rest of the
// broken form is skipped and parsing resumes with the next one until
// MaxErrors is reached. With Options.Single the input must hold exactly one
// expression, as Parse requires.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := newParser(lx, arenas, opts)
	if !opts.Single {
		return Result{Roots: p.parseForms(), Bag: bagOf(opts.Reporter)}
	}
	var roots []ast.ExprID
	if id, ok := p.parseSingle(); ok {
		roots = append(roots, id)
	}
	return Result{Roots: roots, Bag: bagOf(opts.Reporter)}
}

func bagOf(r diag.Reporter) *diag.Bag {
	switch r := r.(type) {
	case diag.BagReporter:
		return r.Bag
	case *diag.BagReporter:
		if r != nil {
			return r.Bag
		}
	}
	return nil
}

func (p *Parser) at(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// exhausted reports whether the error budget is spent.
func (p *Parser) exhausted() bool {
	return p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors
}

func (p *Parser) parseForms() []ast.ExprID {
	var roots []ast.ExprID
	for !p.at(token.EOF) {
		if id, ok := p.parseExpr(); ok {
			roots = append(roots, id)
			continue
		}
		if p.exhausted() {
			break
		}
		p.resync()
	}
	return roots
}

// parseSingle parses exactly one expression followed by EOF.
func (p *Parser) parseSingle() (ast.ExprID, bool) {
	if p.at(token.EOF) {
		p.errHere(diag.SynEmptyInput, "expected an expression, got empty input")
		return ast.NoExprID, false
	}
	id, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if tok := p.lx.Peek(); tok.Kind != token.EOF {
		if tok.Kind != token.Invalid {
			p.emit(diag.NewError(diag.SynTrailingInput, tok.Span, "unexpected input after expression: \""+tok.Text+"\""))
		}
		return ast.NoExprID, false
	}
	return id, true
}

// resync skips to the end of the broken top-level form. At depth zero (a
// stray ')') one token is dropped.
func (p *Parser) resync() {
	if p.depth == 0 {
		if !p.at(token.EOF) {
			p.advance()
		}
		return
	}
	for p.depth > 0 && !p.at(token.EOF) {
		p.advance()
	}
}
