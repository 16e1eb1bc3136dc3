package token_test

import (
	"testing"

	"rackpy/internal/token"
)

func TestKindClass(t *testing.T) {
	tests := []struct {
		kind token.Kind
		want token.Class
	}{
		{token.Symbol, token.ClassSymbol},
		{token.KwDefine, token.ClassSymbol},
		{token.KwCons, token.ClassSymbol},
		{token.Number, token.ClassNumber},
		{token.String, token.ClassString},
		{token.Plus, token.ClassMathOperator},
		{token.Slash, token.ClassMathOperator},
		{token.Gt, token.ClassComparisonOperator},
		{token.BangEq, token.ClassComparisonOperator},
		{token.LParen, token.ClassPunctuation},
		{token.Quote, token.ClassPunctuation},
		{token.EOF, token.ClassNone},
		{token.Invalid, token.ClassNone},
	}
	for _, tt := range tests {
		if got := tt.kind.Class(); got != tt.want {
			t.Errorf("%v.Class() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	for _, k := range []token.Kind{token.Plus, token.Minus, token.Star, token.Slash} {
		if !k.IsMathOp() || !k.IsOperator() || k.IsComparisonOp() {
			t.Fatalf("%v must be a math operator only", k)
		}
	}
	for _, k := range []token.Kind{token.Gt, token.Lt, token.GtEq, token.LtEq, token.Eq, token.BangEq} {
		if !k.IsComparisonOp() || !k.IsOperator() || k.IsMathOp() {
			t.Fatalf("%v must be a comparison operator only", k)
		}
	}
	if token.Symbol.IsKeyword() || !token.KwLet.IsKeyword() {
		t.Fatalf("keyword predicate broken")
	}
}

func TestKindString(t *testing.T) {
	if token.KwLambda.String() != "KwLambda" || token.Quote.String() != "Quote" {
		t.Fatalf("unexpected names: %s %s", token.KwLambda, token.Quote)
	}
	if token.Kind(200).String() != "Kind(?)" {
		t.Fatalf("unknown kind should render as Kind(?)")
	}
}

func TestTokenPredicates(t *testing.T) {
	if !(token.Token{Kind: token.Number}).IsAtom() || !(token.Token{Kind: token.Symbol}).IsAtom() {
		t.Fatalf("numbers and symbols are atoms")
	}
	if (token.Token{Kind: token.KwCar}).IsAtom() {
		t.Fatalf("keywords are not atoms")
	}
}
