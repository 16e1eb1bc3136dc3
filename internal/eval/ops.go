package eval

import (
	"rackpy/internal/ast"
)

func (ev *evaluator) apply(id ast.ExprID, op ast.OpKind, args []Value) (Value, error) {
	if op == ast.OpEq || op == ast.OpNotEq {
		return ev.equality(op, args), nil
	}
	for _, a := range args {
		if !a.IsNumber() {
			return Value{}, ev.fail(ErrType, id, "%s: expected number, got %s", op, a.Kind)
		}
	}
	if op.IsComparison() {
		return compareChain(op, args), nil
	}

	acc := args[0].Num
	if len(args) == 1 {
		switch op {
		case ast.OpSub:
			return Number(-acc), nil
		case ast.OpDiv:
			if acc == 0 {
				return Value{}, ev.fail(ErrDivByZero, id, "/: division by zero")
			}
			return Number(1 / acc), nil
		default:
			return Number(acc), nil
		}
	}
	for _, a := range args[1:] {
		switch op {
		case ast.OpAdd:
			acc += a.Num
		case ast.OpSub:
			acc -= a.Num
		case ast.OpMul:
			acc *= a.Num
		case ast.OpDiv:
			if a.Num == 0 {
				return Value{}, ev.fail(ErrDivByZero, id, "/: division by zero")
			}
			acc /= a.Num
		}
	}
	return Number(acc), nil
}

// compareChain: (< a b c) — истина, если каждая соседняя пара упорядочена.
func compareChain(op ast.OpKind, args []Value) Value {
	for i := 0; i+1 < len(args); i++ {
		a, b := args[i].Num, args[i+1].Num
		var ok bool
		switch op {
		case ast.OpGt:
			ok = a > b
		case ast.OpLt:
			ok = a < b
		case ast.OpGtEq:
			ok = a >= b
		case ast.OpLtEq:
			ok = a <= b
		}
		if !ok {
			return False
		}
	}
	return True
}

func (ev *evaluator) equality(op ast.OpKind, args []Value) Value {
	for i := 0; i+1 < len(args); i++ {
		eq := args[i].Equal(args[i+1])
		if eq != (op == ast.OpEq) {
			return False
		}
	}
	return True
}
