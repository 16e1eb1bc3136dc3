package token

import (
	"rackpy/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a number or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == Number || t.Kind == String
}

// IsAtom reports whether the token can stand alone as an atom expression.
func (t Token) IsAtom() bool {
	return t.Kind == Symbol || t.IsLiteral()
}

func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

func (t Token) IsOperator() bool { return t.Kind.IsOperator() }
