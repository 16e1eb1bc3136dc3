package ast

// Children returns the direct sub-expressions of id in source order.
// Let bindings contribute their value expressions before the body.
func (e *Exprs) Children(id ExprID) []ExprID {
	expr := e.Get(id)
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case ExprOperation:
		if d, ok := e.Operation(id); ok {
			return d.Args
		}
	case ExprCall:
		if d, ok := e.Call(id); ok {
			return d.Args
		}
	case ExprDefine:
		if d, ok := e.Define(id); ok {
			return []ExprID{d.Value}
		}
	case ExprDefineFunction:
		if d, ok := e.DefineFunction(id); ok {
			return []ExprID{d.Body}
		}
	case ExprLambda:
		if d, ok := e.Lambda(id); ok {
			return []ExprID{d.Body}
		}
	case ExprIf:
		if d, ok := e.If(id); ok {
			if d.Else.IsValid() {
				return []ExprID{d.Cond, d.Then, d.Else}
			}
			return []ExprID{d.Cond, d.Then}
		}
	case ExprAnd, ExprOr:
		if d, ok := e.Logical(id); ok {
			return d.Operands
		}
	case ExprNot, ExprCar, ExprCdr:
		if d, ok := e.Unary(id); ok {
			return []ExprID{d.Operand}
		}
	case ExprLet:
		if d, ok := e.Let(id); ok {
			out := make([]ExprID, 0, len(d.Bindings)+1)
			for _, b := range d.Bindings {
				out = append(out, b.Value)
			}
			return append(out, d.Body)
		}
	case ExprList, ExprQuoted:
		if d, ok := e.List(id); ok {
			return d.Elems
		}
	case ExprCons:
		if d, ok := e.Cons(id); ok {
			return []ExprID{d.Head, d.Tail}
		}
	}
	return nil
}

// Walk visits id and its descendants depth-first, pre-order. Returning false
// from visit skips the children of that node.
func (e *Exprs) Walk(id ExprID, visit func(id ExprID, depth int) bool) {
	e.walk(id, 0, visit)
}

func (e *Exprs) walk(id ExprID, depth int, visit func(ExprID, int) bool) {
	if !id.IsValid() {
		return
	}
	if !visit(id, depth) {
		return
	}
	for _, child := range e.Children(id) {
		e.walk(child, depth+1, visit)
	}
}
