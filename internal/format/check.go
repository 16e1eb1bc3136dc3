package format

import (
	"rackpy/internal/ast"
	"rackpy/internal/diag"
	"rackpy/internal/lexer"
	"rackpy/internal/parser"
	"rackpy/internal/source"
)

// CheckRoundTrip formats the file and re-parses the result, ensuring that the
// forms read back are the same as the original ones.
func CheckRoundTrip(sf *source.File, opt Options, maxDiag int) (ok bool, msg string) {
	origBag := diag.NewBag(maxDiag)
	origBuilder, origRoots := parseOnce(sf, origBag)
	if origBag.HasErrors() {
		return false, "fmt-check: initial parse has errors"
	}

	formatted, err := FormatFile(sf, origBuilder, origRoots, opt)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}

	fs2 := source.NewFileSet()
	rebuilt := fs2.Get(fs2.AddVirtual(sf.Path, formatted))
	newBag := diag.NewBag(maxDiag)
	newBuilder, newRoots := parseOnce(rebuilt, newBag)
	if newBag.HasErrors() {
		return false, "fmt-check: reparse failed"
	}

	if !sameForms(origBuilder, origRoots, newBuilder, newRoots) {
		return false, "fmt-check: forms differ after round-trip"
	}
	return true, "fmt-check: OK"
}

func parseOnce(sf *source.File, bag *diag.Bag) (*ast.Builder, []ast.ExprID) {
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(sf, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter})
	return builder, res.Roots
}

// sameForms сравнивает плоскую запись форм: она однозначно задаёт дерево.
func sameForms(b1 *ast.Builder, r1 []ast.ExprID, b2 *ast.Builder, r2 []ast.ExprID) bool {
	if len(r1) != len(r2) {
		return false
	}
	p1 := printer{builder: b1}
	p2 := printer{builder: b2}
	for i := range r1 {
		if p1.flat(r1[i]) != p2.flat(r2[i]) {
			return false
		}
	}
	return true
}
