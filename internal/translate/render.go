package translate

import (
	"strings"

	"rackpy/internal/ast"
)

type renderer struct {
	b    *ast.Builder
	opts Options
}

// pyOperator spells a source operator in Python.
func pyOperator(op ast.OpKind) string {
	if op == ast.OpEq {
		return "=="
	}
	return op.String()
}

func unsupported(kind ast.ExprKind, id ast.ExprID) error {
	return &UnsupportedFormError{Kind: kind, ID: id}
}

// render — единая точка диспетчеризации по виду узла.
func (r *renderer) render(id ast.ExprID) (string, error) {
	expr := r.b.Exprs.Get(id)
	if expr == nil {
		return "", unsupported(danglingKind, id)
	}

	switch expr.Kind {
	case ast.ExprAtom:
		d, ok := r.b.Exprs.Atom(id)
		if !ok {
			break
		}
		return r.b.Name(d.Text), nil

	case ast.ExprOperation:
		d, ok := r.b.Exprs.Operation(id)
		if !ok {
			break
		}
		return r.renderOperation(d)

	case ast.ExprCall:
		d, ok := r.b.Exprs.Call(id)
		if !ok {
			break
		}
		args, err := r.renderEach(d.Args)
		if err != nil {
			return "", err
		}
		return r.b.Name(d.Callee) + "(" + strings.Join(args, ", ") + ")", nil

	case ast.ExprDefine:
		d, ok := r.b.Exprs.Define(id)
		if !ok {
			break
		}
		stmts, value, err := r.renderValue(d.Value)
		if err != nil {
			return "", err
		}
		return joinLines(stmts, r.b.Name(d.Name)+" = "+value), nil

	case ast.ExprDefineFunction:
		d, ok := r.b.Exprs.DefineFunction(id)
		if !ok {
			break
		}
		return r.renderDefineFunction(d)

	case ast.ExprLambda:
		d, ok := r.b.Exprs.Lambda(id)
		if !ok {
			break
		}
		body, err := r.render(d.Body)
		if err != nil {
			return "", err
		}
		if len(d.Params) == 0 {
			return "lambda: " + body, nil
		}
		return "lambda " + strings.Join(r.b.Names(d.Params), ", ") + ": " + body, nil

	case ast.ExprIf:
		d, ok := r.b.Exprs.If(id)
		if !ok {
			break
		}
		return r.renderIf(d)

	case ast.ExprAnd, ast.ExprOr:
		d, ok := r.b.Exprs.Logical(id)
		if !ok {
			break
		}
		operands, err := r.renderEach(d.Operands)
		if err != nil {
			return "", err
		}
		sep := ") and ("
		if expr.Kind == ast.ExprOr {
			sep = ") or ("
		}
		return "(" + strings.Join(operands, sep) + ")", nil

	case ast.ExprNot, ast.ExprCar, ast.ExprCdr:
		d, ok := r.b.Exprs.Unary(id)
		if !ok {
			break
		}
		operand, err := r.renderOperand(d.Operand)
		if err != nil {
			return "", err
		}
		switch expr.Kind {
		case ast.ExprNot:
			return "not " + operand, nil
		case ast.ExprCar:
			return operand + "[0]", nil
		default:
			return operand + "[1:]", nil
		}

	case ast.ExprLet:
		stmts, value, err := r.renderValue(id)
		if err != nil {
			return "", err
		}
		return joinLines(stmts, value), nil

	case ast.ExprList, ast.ExprQuoted:
		// quoted-список рендерится так же, как (list ...)
		d, ok := r.b.Exprs.List(id)
		if !ok {
			break
		}
		elems, err := r.renderEach(d.Elems)
		if err != nil {
			return "", err
		}
		return "[" + strings.Join(elems, ", ") + "]", nil

	case ast.ExprCons:
		d, ok := r.b.Exprs.Cons(id)
		if !ok {
			break
		}
		head, err := r.render(d.Head)
		if err != nil {
			return "", err
		}
		tail, err := r.renderOperand(d.Tail)
		if err != nil {
			return "", err
		}
		return "[" + head + "] + " + tail, nil
	}

	return "", unsupported(expr.Kind, id)
}

func (r *renderer) renderEach(ids []ast.ExprID) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		s, err := r.render(id)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Операция с двумя аргументами — инфикс в скобках, иначе — вызов оператора.
func (r *renderer) renderOperation(d *ast.ExprOperationData) (string, error) {
	op := pyOperator(d.Op)
	if len(d.Args) == 2 {
		lhs, err := r.renderOperand(d.Args[0])
		if err != nil {
			return "", err
		}
		rhs, err := r.renderOperand(d.Args[1])
		if err != nil {
			return "", err
		}
		return "(" + lhs + " " + op + " " + rhs + ")", nil
	}
	args, err := r.renderEach(d.Args)
	if err != nil {
		return "", err
	}
	return op + "(" + strings.Join(args, ", ") + ")", nil
}

func (r *renderer) renderIf(d *ast.ExprIfData) (string, error) {
	cond, err := r.renderOperand(d.Cond)
	if err != nil {
		return "", err
	}
	then, err := r.renderOperand(d.Then)
	if err != nil {
		return "", err
	}
	els := r.opts.NoneLiteral
	if d.Else.IsValid() {
		els, err = r.render(d.Else)
		if err != nil {
			return "", err
		}
	}
	return then + " if " + cond + " else " + els, nil
}

// Тело функции: присваивания из let, затем return значения.
func (r *renderer) renderDefineFunction(d *ast.ExprDefineFunctionData) (string, error) {
	stmts, value, err := r.renderValue(d.Body)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("def ")
	sb.WriteString(r.b.Name(d.Name))
	sb.WriteByte('(')
	sb.WriteString(strings.Join(r.b.Names(d.Params), ", "))
	sb.WriteString("):")
	for _, stmt := range stmts {
		sb.WriteByte('\n')
		sb.WriteString(r.indent(stmt))
	}
	sb.WriteByte('\n')
	sb.WriteString(r.indent("return " + value))
	return sb.String(), nil
}

// renderValue splits a Let into its assignment statements and the final value
// expression. Nested lets in the body or in binding values are flattened in
// evaluation order. Any other node has no statements.
func (r *renderer) renderValue(id ast.ExprID) ([]string, string, error) {
	d, ok := r.b.Exprs.Let(id)
	if !ok {
		v, err := r.render(id)
		return nil, v, err
	}
	var stmts []string
	for _, bind := range d.Bindings {
		pre, v, err := r.renderValue(bind.Value)
		if err != nil {
			return nil, "", err
		}
		stmts = append(stmts, pre...)
		stmts = append(stmts, r.b.Name(bind.Name)+" = "+v)
	}
	pre, body, err := r.renderValue(d.Body)
	if err != nil {
		return nil, "", err
	}
	return append(stmts, pre...), body, nil
}

// renderOperand renders id for use inside a larger Python expression,
// parenthesizing the forms whose Python rendering binds looser than
// subscription and arithmetic.
func (r *renderer) renderOperand(id ast.ExprID) (string, error) {
	s, err := r.render(id)
	if err != nil {
		return "", err
	}
	expr := r.b.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIf, ast.ExprLambda, ast.ExprNot, ast.ExprCons, ast.ExprAnd, ast.ExprOr:
		return "(" + s + ")", nil
	}
	return s, nil
}

func (r *renderer) indent(s string) string {
	return r.opts.Indent + strings.ReplaceAll(s, "\n", "\n"+r.opts.Indent)
}

func joinLines(stmts []string, last string) string {
	if len(stmts) == 0 {
		return last
	}
	return strings.Join(stmts, "\n") + "\n" + last
}
