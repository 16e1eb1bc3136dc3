package translate

import (
	"strings"

	"rackpy/internal/ast"
	"rackpy/internal/diag"
	"rackpy/internal/source"
)

// position - где окажется Python-текст узла.
type position uint8

const (
	posModule   position = iota // оператор верхнего уровня модуля
	posFunction                 // оператор внутри def
	posExpr                     // часть выражения
)

type linter struct {
	b *ast.Builder
	r diag.Reporter
}

// Lint reports source forms whose translation diverges from Racket
// semantics: let bindings that outlive their body, let forms that end up
// inside a Python expression, quoted data that gets evaluated, repeated
// parameter names and if forms without an else branch. Lint never changes
// the translation.
func Lint(b *ast.Builder, roots []ast.ExprID, r diag.Reporter) {
	if b == nil || r == nil {
		return
	}
	l := linter{b: b, r: diag.NewDedupReporter(r)}
	for _, id := range roots {
		l.walk(id, posModule)
	}
}

func (l *linter) walk(id ast.ExprID, pos position) {
	b := l.b
	expr := b.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprOperation:
		if d, ok := b.Exprs.Operation(id); ok {
			l.walkAll(d.Args)
		}
	case ast.ExprCall:
		if d, ok := b.Exprs.Call(id); ok {
			l.walkAll(d.Args)
		}
	case ast.ExprDefine:
		if d, ok := b.Exprs.Define(id); ok {
			// присваивания из let поднимаются перед "name = value"
			l.walk(d.Value, pos)
		}
	case ast.ExprDefineFunction:
		if d, ok := b.Exprs.DefineFunction(id); ok {
			l.checkParams(expr.Span, b.Names(d.Params))
			l.walk(d.Body, posFunction)
		}
	case ast.ExprLambda:
		if d, ok := b.Exprs.Lambda(id); ok {
			l.checkParams(expr.Span, b.Names(d.Params))
			l.walk(d.Body, posExpr)
		}
	case ast.ExprIf:
		if d, ok := b.Exprs.If(id); ok {
			if !d.Else.IsValid() {
				diag.ReportInfo(l.r, diag.TrnImplicitNone, expr.Span,
					"if without else evaluates to None when the condition is false").Emit()
			}
			l.walk(d.Cond, posExpr)
			l.walk(d.Then, posExpr)
			l.walk(d.Else, posExpr)
		}
	case ast.ExprAnd, ast.ExprOr:
		if d, ok := b.Exprs.Logical(id); ok {
			l.walkAll(d.Operands)
		}
	case ast.ExprNot, ast.ExprCar, ast.ExprCdr:
		if d, ok := b.Exprs.Unary(id); ok {
			l.walk(d.Operand, posExpr)
		}
	case ast.ExprLet:
		if d, ok := b.Exprs.Let(id); ok {
			l.checkLet(expr.Span, d, pos)
			// вложенный let поднимается туда же, куда и внешний
			for _, bind := range d.Bindings {
				l.walk(bind.Value, pos)
			}
			l.walk(d.Body, pos)
		}
	case ast.ExprList:
		if d, ok := b.Exprs.List(id); ok {
			l.walkAll(d.Elems)
		}
	case ast.ExprCons:
		if d, ok := b.Exprs.Cons(id); ok {
			l.walk(d.Head, posExpr)
			l.walk(d.Tail, posExpr)
		}
	case ast.ExprQuoted:
		if d, ok := b.Exprs.List(id); ok {
			l.checkQuoted(d.Elems)
		}
	}
}

func (l *linter) walkAll(ids []ast.ExprID) {
	for _, id := range ids {
		l.walk(id, posExpr)
	}
}

func (l *linter) checkLet(sp source.Span, d *ast.ExprLetData, pos position) {
	switch pos {
	case posModule:
		names := make([]string, 0, len(d.Bindings))
		for _, bind := range d.Bindings {
			names = append(names, l.b.Name(bind.Name))
		}
		rb := diag.ReportWarning(l.r, diag.TrnLetLeak, sp,
			"let bindings "+strings.Join(names, ", ")+" become module-level names in Python")
		for _, bind := range d.Bindings {
			rb.WithNote(bind.Span, "in Racket '"+l.b.Name(bind.Name)+"' is visible only in the let body")
		}
		rb.Emit()
	case posExpr:
		diag.ReportWarning(l.r, diag.TrnLetInExpression, sp,
			"let inside an expression is translated to assignment statements; the Python output will not parse").
			WithNote(sp, "move the let to the top of a function body or to the top level").
			Emit()
	}
}

// checkQuoted: элементы quoted-списка транслируются как выражения.
func (l *linter) checkQuoted(elems []ast.ExprID) {
	for _, id := range elems {
		expr := l.b.Exprs.Get(id)
		if expr == nil {
			continue
		}
		switch expr.Kind {
		case ast.ExprAtom:
			atom, ok := l.b.Exprs.Atom(id)
			if !ok || atom.Kind != ast.AtomSymbol {
				continue
			}
			diag.ReportWarning(l.r, diag.TrnQuotedForm, expr.Span,
				"quoted symbol '"+l.b.Name(atom.Text)+"' is translated as a Python name, not as data").Emit()
		case ast.ExprQuoted:
			if d, ok := l.b.Exprs.List(id); ok {
				l.checkQuoted(d.Elems)
			}
		default:
			diag.ReportWarning(l.r, diag.TrnQuotedForm, expr.Span,
				"quoted "+strings.ToLower(expr.Kind.String())+" form is evaluated by the translation").Emit()
			l.walk(id, posExpr)
		}
	}
}

func (l *linter) checkParams(sp source.Span, names []string) {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			diag.ReportWarning(l.r, diag.TrnDuplicateParam, sp,
				"duplicate parameter '"+name+"'; Python rejects repeated argument names").Emit()
			continue
		}
		seen[name] = struct{}{}
	}
}
