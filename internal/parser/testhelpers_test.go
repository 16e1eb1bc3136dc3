package parser

import (
	"fmt"
	"strings"
	"testing"

	"rackpy/internal/ast"
	"rackpy/internal/diag"
	"rackpy/internal/lexer"
	"rackpy/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// parseFileSource runs ParseFile over src with full error recovery.
func parseFileSource(t *testing.T, src string) (*ast.Builder, Result) {
	t.Helper()
	return parseFileWith(t, src, Options{MaxErrors: 100})
}

// parseFileWith runs ParseFile with opts; the reporter is always a fresh bag.
func parseFileWith(t *testing.T, src string, opts Options) (*ast.Builder, Result) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.rkt", []byte(src)))
	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	opts.Reporter = reporter
	return builder, ParseFile(lx, builder, opts)
}

func mustParse(t *testing.T, src string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	b, id, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return b, id
}

// sexpr renders a tree back into a canonical parenthesized form for comparisons.
func sexpr(b *ast.Builder, id ast.ExprID) string {
	e := b.Exprs
	expr := e.Get(id)
	if expr == nil {
		return "<nil>"
	}
	join := func(head string, ids []ast.ExprID) string {
		parts := []string{head}
		for _, c := range ids {
			parts = append(parts, sexpr(b, c))
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	switch expr.Kind {
	case ast.ExprAtom:
		d, _ := e.Atom(id)
		return b.Name(d.Text)
	case ast.ExprOperation:
		d, _ := e.Operation(id)
		return join(d.Op.String(), d.Args)
	case ast.ExprCall:
		d, _ := e.Call(id)
		return join("call "+b.Name(d.Callee), d.Args)
	case ast.ExprDefine:
		d, _ := e.Define(id)
		return join("define "+b.Name(d.Name), []ast.ExprID{d.Value})
	case ast.ExprDefineFunction:
		d, _ := e.DefineFunction(id)
		return join("define-fn "+b.Name(d.Name)+" ["+strings.Join(b.Names(d.Params), " ")+"]", []ast.ExprID{d.Body})
	case ast.ExprLambda:
		d, _ := e.Lambda(id)
		return join("lambda ["+strings.Join(b.Names(d.Params), " ")+"]", []ast.ExprID{d.Body})
	case ast.ExprLet:
		d, _ := e.Let(id)
		parts := make([]string, 0, len(d.Bindings))
		for _, bind := range d.Bindings {
			parts = append(parts, b.Name(bind.Name)+"="+sexpr(b, bind.Value))
		}
		return join("let ["+strings.Join(parts, " ")+"]", []ast.ExprID{d.Body})
	default:
		return join(strings.ToLower(expr.Kind.String()), e.Children(id))
	}
}
