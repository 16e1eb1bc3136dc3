package testkit

import (
	"testing"

	"rackpy/internal/ast"
	"rackpy/internal/diag"
	"rackpy/internal/lexer"
	"rackpy/internal/parser"
	"rackpy/internal/source"
)

func parseVirtual(t *testing.T, src string) (*ast.Builder, []ast.ExprID, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("inv.rkt", []byte(src)))
	reporter := &diag.BagReporter{Bag: diag.NewBag(16)}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lexer.New(file, lexer.Options{Reporter: reporter}), b, parser.Options{Reporter: reporter})
	if reporter.Bag.HasErrors() {
		t.Fatalf("parse %q: %v", src, reporter.Bag.Items())
	}
	return b, res.Roots, file
}

func TestSpanInvariantsHoldForParsedPrograms(t *testing.T) {
	programs := []string{
		"(define x (+ 1 2))",
		"(define (f a b) (if (> a b) a b))\n(f 1 2)",
		"(let ((a 1) (b (+ a 1))) (+ a b))",
		"(cons 1 '(2 (list 3 4)))  (car (list 1 2)) (cdr '())",
		"(cons 1 '(2 '(3 4)))",
		"(lambda (x) (and x (or x (not x))))",
	}
	for _, src := range programs {
		b, roots, file := parseVirtual(t, src)
		if err := CheckSpanInvariants(b, roots, file); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestSpanInvariantsCatchBadSpans(t *testing.T) {
	b, roots, file := parseVirtual(t, "(+ 1 2)")
	expr := b.Exprs.Get(roots[0])
	expr.Span.End = expr.Span.Start + 2 // операнды выпадают из родителя
	if err := CheckSpanInvariants(b, roots, file); err == nil {
		t.Fatal("expected child-outside-parent error")
	}
	if err := CheckSpanInvariants(nil, roots, file); err == nil {
		t.Fatal("expected nil builder error")
	}
}
