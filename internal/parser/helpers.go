package parser

import (
	"rackpy/internal/diag"
	"rackpy/internal/source"
	"rackpy/internal/token"
)

// advance съедает токен и ведёт учёт глубины скобок.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	switch tok.Kind {
	case token.LParen:
		p.depth++
	case token.RParen:
		p.depth = max(0, p.depth-1)
	case token.EOF, token.Invalid:
		return tok
	}
	p.last = tok.Span
	return tok
}

// here is where a diagnostic about the next token points. At EOF that is
// just past the last consumed token, not the end of trailing comments.
func (p *Parser) here() source.Span {
	if next := p.lx.Peek(); next.Kind != token.EOF || p.last.End == 0 {
		return next.Span
	}
	return p.last.EndPoint()
}

// expect consumes a k token or reports msg and returns an Invalid token.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.here()
	p.errorAt(code, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.lx.Peek().Text}, false
}

func (p *Parser) errHere(code diag.Code, msg string) bool {
	return p.errorAt(code, p.here(), msg)
}

// errorAt stays silent on an Invalid token: the lexer has reported it, only
// the error budget is charged.
func (p *Parser) errorAt(code diag.Code, sp source.Span, msg string) bool {
	if p.at(token.Invalid) {
		p.errors++
		return false
	}
	return p.emit(diag.NewError(code, sp, msg))
}

// emit forwards d to the reporter; errors past MaxErrors are dropped.
func (p *Parser) emit(d diag.Diagnostic) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if d.Severity == diag.SevError {
		if p.exhausted() {
			return false
		}
		p.errors++
	}
	p.opts.Reporter.Report(d)
	return true
}

// tokenDesc describes a token for messages.
func tokenDesc(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Invalid:
		return "invalid token"
	}
	return "\"" + tok.Text + "\""
}
