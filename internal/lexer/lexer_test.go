package lexer

import (
	"slices"
	"testing"

	"rackpy/internal/diag"
	"rackpy/internal/source"
	"rackpy/internal/token"
)

type testReporter struct {
	codes []diag.Code
	msgs  []string
	fixes [][]diag.Fix
}

func (r *testReporter) Report(d diag.Diagnostic) {
	r.codes = append(r.codes, d.Code)
	r.msgs = append(r.msgs, d.Message)
	r.fixes = append(r.fixes, d.Fixes)
}

func makeTestLexer(input string) (*Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rkt", []byte(input))
	file := fs.Get(fileID)
	reporter := &testReporter{}
	return New(file, Options{Reporter: reporter}), reporter
}

func collectAllTokens(lx *Lexer) []token.Token {
	return slices.Collect(lx.All())
}

func TestLexer_AllStopsEarly(t *testing.T) {
	lx, _ := makeTestLexer("(a b c)")
	var seen int
	for tok := range lx.All() {
		seen++
		if tok.Text == "b" {
			break
		}
	}
	if seen != 3 {
		t.Fatalf("seen = %d, want 3", seen)
	}
	if next := lx.Next(); next.Text != "c" {
		t.Errorf("after break Next() = %q, want c", next.Text)
	}
	if p := lx.Peek(); p.Kind != token.RParen || lx.Next().Kind != token.RParen {
		t.Errorf("Peek() = %+v, want RParen twice", p)
	}
}

func TestLexer_Kinds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{"symbol", "foo", []token.Kind{token.Symbol, token.EOF}},
		{"keywords", "define lambda if and or not let list car cdr cons", []token.Kind{
			token.KwDefine, token.KwLambda, token.KwIf, token.KwAnd, token.KwOr, token.KwNot,
			token.KwLet, token.KwList, token.KwCar, token.KwCdr, token.KwCons, token.EOF,
		}},
		{"keyword prefix is symbol", "defined lets", []token.Kind{token.Symbol, token.Symbol, token.EOF}},
		{"call", "(+ 1 2)", []token.Kind{token.LParen, token.Plus, token.Number, token.Number, token.RParen, token.EOF}},
		{"comparison", ">= <= != > < =", []token.Kind{token.GtEq, token.LtEq, token.BangEq, token.Gt, token.Lt, token.Eq, token.EOF}},
		{"math", "+ - * /", []token.Kind{token.Plus, token.Minus, token.Star, token.Slash, token.EOF}},
		{"negative number", "-5", []token.Kind{token.Number, token.EOF}},
		{"minus then number", "- 5", []token.Kind{token.Minus, token.Number, token.EOF}},
		{"quote", "'(1 2)", []token.Kind{token.Quote, token.LParen, token.Number, token.Number, token.RParen, token.EOF}},
		{"string", `"hi there"`, []token.Kind{token.String, token.EOF}},
		{"comment skipped", "; note\nx", []token.Kind{token.Symbol, token.EOF}},
		{"number then symbol", "12abc", []token.Kind{token.Number, token.Symbol, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			tokens := collectAllTokens(lx)
			if len(tokens) != len(tt.expected) {
				t.Fatalf("expected %d tokens, got %d: %v", len(tt.expected), len(tokens), tokens)
			}
			for i, tok := range tokens {
				if tok.Kind != tt.expected[i] {
					t.Errorf("token %d: expected %v, got %v (%q)", i, tt.expected[i], tok.Kind, tok.Text)
				}
			}
			if len(rep.codes) != 0 {
				t.Errorf("unexpected diagnostics: %v", rep.msgs)
			}
		})
	}
}

func TestLexer_Text(t *testing.T) {
	lx, _ := makeTestLexer(`(define my-var_2 -3.25 "a;b")`)
	want := []string{"(", "define", "my-var_2", "-3.25", `"a;b"`, ")", ""}
	tokens := collectAllTokens(lx)
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, tok := range tokens {
		if tok.Text != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], tok.Text)
		}
	}
}

func TestLexer_Spans(t *testing.T) {
	lx, _ := makeTestLexer("(foo 12)")
	tokens := collectAllTokens(lx)
	spans := [][2]uint32{{0, 1}, {1, 4}, {5, 7}, {7, 8}, {8, 8}}
	for i, sp := range spans {
		if tokens[i].Span.Start != sp[0] || tokens[i].Span.End != sp[1] {
			t.Errorf("token %d: expected span %v, got %d..%d", i, sp, tokens[i].Span.Start, tokens[i].Span.End)
		}
	}
}

func TestLexer_LeadingTrivia(t *testing.T) {
	lx, _ := makeTestLexer("  ; comment\n\n\tx")
	tok := lx.Next()
	if tok.Kind != token.Symbol {
		t.Fatalf("expected symbol, got %v", tok.Kind)
	}
	kinds := []token.TriviaKind{token.TriviaSpace, token.TriviaComment, token.TriviaNewline, token.TriviaSpace}
	if len(tok.Leading) != len(kinds) {
		t.Fatalf("expected %d trivia, got %d", len(kinds), len(tok.Leading))
	}
	for i, k := range kinds {
		if tok.Leading[i].Kind != k {
			t.Errorf("trivia %d: expected %v, got %v", i, k, tok.Leading[i].Kind)
		}
	}
	if tok.Leading[1].Text != "; comment" {
		t.Errorf("comment text = %q", tok.Leading[1].Text)
	}
}

func TestLexer_Peek(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next after peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second = %q", n.Text)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", n.Kind)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("expected EOF to repeat, got %v", n.Kind)
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"unterminated string", `"abc`, diag.LexUnterminatedString},
		{"bare bang", "!", diag.LexBadOperator},
		{"unknown char", "#", diag.LexUnknownChar},
		{"unicode char", "λ", diag.LexUnknownChar},
		{"trailing dot", "1.", diag.LexBadNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			tokens := collectAllTokens(lx)
			if tokens[0].Kind != token.Invalid {
				t.Errorf("expected Invalid token, got %v", tokens[0].Kind)
			}
			if tokens[len(tokens)-1].Kind != token.EOF {
				t.Errorf("lexer must finish with EOF")
			}
			if len(rep.codes) != 1 || rep.codes[0] != tt.code {
				t.Errorf("expected diagnostic %v, got %v", tt.code, rep.codes)
			}
		})
	}
}

func TestLexer_ErrorFixes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []diag.FixEdit
	}{
		{"unterminated string", `(f "abc`, []diag.FixEdit{{Span: source.Span{Start: 7, End: 7}, NewText: `"`}}},
		{"bare bang", "(! a)", []diag.FixEdit{
			{Span: source.Span{Start: 1, End: 2}, NewText: "!="},
			{Span: source.Span{Start: 1, End: 2}, NewText: "not"},
		}},
		{"unknown char", "#", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			collectAllTokens(lx)
			if len(rep.fixes) != 1 {
				t.Fatalf("expected one diagnostic, got %v", rep.codes)
			}
			var got []diag.FixEdit
			for _, f := range rep.fixes[0] {
				if f.Title == "" || len(f.Edits) != 1 {
					t.Fatalf("malformed fix %+v", f)
				}
				got = append(got, f.Edits[0])
			}
			if len(got) != len(tt.want) {
				t.Fatalf("edits = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i].Span.Start != tt.want[i].Span.Start || got[i].Span.End != tt.want[i].Span.End || got[i].NewText != tt.want[i].NewText {
					t.Errorf("edit %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexer_UnknownCharCoversRune(t *testing.T) {
	lx, _ := makeTestLexer("λx")
	tok := lx.Next()
	if tok.Span.Len() != 2 {
		t.Fatalf("expected 2-byte span, got %d", tok.Span.Len())
	}
	if next := lx.Next(); next.Kind != token.Symbol || next.Text != "x" {
		t.Fatalf("expected symbol x after unknown rune, got %v %q", next.Kind, next.Text)
	}
}
