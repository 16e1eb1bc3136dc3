package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"rackpy/internal/ast"
	"rackpy/internal/lexer"
	"rackpy/internal/parser"
	"rackpy/internal/source"
	"rackpy/internal/token"
)

func parseProgram(t *testing.T, src string) (*ast.Builder, []ast.ExprID) {
	t.Helper()
	b, roots, err := parser.ParseAll(src)
	if err != nil {
		t.Fatalf("ParseAll(%q): %v", src, err)
	}
	return b, roots
}

func TestFormatASTTree(t *testing.T) {
	b, roots := parseProgram(t, "(define x (+ 1 2))")
	var buf bytes.Buffer
	if err := FormatASTTree(&buf, b, roots, nil); err != nil {
		t.Fatalf("FormatASTTree: %v", err)
	}
	want := strings.Join([]string{
		"   Define x",
		"       |",
		"  Operation +",
		"   /   |    \\",
		"Atom 1   Atom 2",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Errorf("tree mismatch:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatASTPretty(t *testing.T) {
	b, roots := parseProgram(t, "(define (f a b) (let ((c a)) c))\n(f 1 2)")
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, b, roots, nil); err != nil {
		t.Fatalf("FormatASTPretty: %v", err)
	}
	want := strings.Join([]string{
		"Program (2 forms)",
		"├─ DefineFunction f (a b)",
		"│  └─ Let",
		"│     ├─ Binding c",
		"│     │  └─ Atom a",
		"│     └─ Atom c",
		"└─ Call f",
		"   ├─ Atom 1",
		"   └─ Atom 2",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Errorf("pretty mismatch:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatASTIndented(t *testing.T) {
	b, roots := parseProgram(t, "(define x (+ 1 2))")
	var buf bytes.Buffer
	if err := FormatASTIndented(&buf, b, roots); err != nil {
		t.Fatalf("FormatASTIndented: %v", err)
	}
	want := strings.Join([]string{
		"start",
		"  Define x",
		"    Operation +",
		"      Atom 1",
		"      Atom 2",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Errorf("indented mismatch:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatASTJSON(t *testing.T) {
	b, roots := parseProgram(t, "(if (> x 0) '(pos))")
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, b, roots); err != nil {
		t.Fatalf("FormatASTJSON: %v", err)
	}
	var out ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Type != "Program" || len(out.Children) != 1 {
		t.Fatalf("unexpected root %+v", out)
	}
	ifNode := out.Children[0]
	if ifNode.Type != "If" || len(ifNode.Children) != 2 {
		t.Fatalf("unexpected if node %+v", ifNode)
	}
	if ifNode.Children[0].Text != ">" {
		t.Errorf("cond operator = %q", ifNode.Children[0].Text)
	}
	if ifNode.Children[1].Type != "Quoted" {
		t.Errorf("then branch = %q, want Quoted", ifNode.Children[1].Type)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.rkt", []byte("; c\n(+ 1 \"s\")")))
	lx := lexer.New(file, lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	if !strings.Contains(pretty.String(), "at 2:1-2:2 (leading:") {
		t.Errorf("leading trivia not shown:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks, fs); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out []TokenJSON
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(toks) {
		t.Fatalf("got %d tokens, want %d", len(out), len(toks))
	}
	classes := []string{"PUNCTUATION", "MATH_OPERATOR", "NUMBER", "STRING", "PUNCTUATION", ""}
	for i, want := range classes {
		if out[i].Class != want {
			t.Errorf("token %d class = %q, want %q", i, out[i].Class, want)
		}
	}
	if open := out[0]; open.Start != (PositionJSON{Line: 2, Col: 1}) || open.Bytes != [2]uint32{4, 5} {
		t.Errorf("first token position = %+v", open)
	}
}
