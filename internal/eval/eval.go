package eval

import (
	"fmt"
	"strconv"

	"rackpy/internal/ast"
	"rackpy/internal/parser"
	"rackpy/internal/source"
)

// DefaultMaxDepth bounds nested evaluation so runaway recursion fails with
// ErrDepthExceeded instead of exhausting the goroutine stack.
const DefaultMaxDepth = 10_000

type Options struct {
	MaxDepth int
}

type evaluator struct {
	b     *ast.Builder
	opts  Options
	depth int
}

// Eval evaluates one form in env. Definitions are added to env.
func Eval(b *ast.Builder, id ast.ExprID, env *Env) (Value, error) {
	return EvalWith(b, id, env, Options{})
}

// EvalWith is Eval with explicit options.
func EvalWith(b *ast.Builder, id ast.ExprID, env *Env, opts Options) (Value, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	ev := evaluator{b: b, opts: opts}
	return ev.eval(id, env)
}

// EvalAll evaluates forms in order, stopping at the first error.
func EvalAll(b *ast.Builder, ids []ast.ExprID, env *Env) ([]Value, error) {
	out := make([]Value, 0, len(ids))
	for _, id := range ids {
		v, err := Eval(b, id, env)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Run parses src as a program and evaluates it in a fresh environment.
func Run(src string) ([]Value, error) {
	b, ids, err := parser.ParseAll(src)
	if err != nil {
		return nil, err
	}
	return EvalAll(b, ids, NewEnv())
}

func (ev *evaluator) fail(err error, id ast.ExprID, format string, args ...any) error {
	var sp source.Span
	if e := ev.b.Exprs.Get(id); e != nil {
		sp = e.Span
	}
	return &Error{Err: err, Span: sp, Detail: fmt.Sprintf(format, args...)}
}

func (ev *evaluator) eval(id ast.ExprID, env *Env) (Value, error) {
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.depth > ev.opts.MaxDepth {
		return Value{}, ev.fail(ErrDepthExceeded, id, "more than %d nested evaluations", ev.opts.MaxDepth)
	}

	ex := ev.b.Exprs
	expr := ex.Get(id)
	if expr == nil {
		return Value{}, ev.fail(ErrMalformed, id, "expression %d does not exist", id)
	}

	switch expr.Kind {
	case ast.ExprAtom:
		if d, ok := ex.Atom(id); ok {
			return ev.evalAtom(id, d, env)
		}
	case ast.ExprOperation:
		if d, ok := ex.Operation(id); ok {
			args, err := ev.evalEach(d.Args, env)
			if err != nil {
				return Value{}, err
			}
			return ev.apply(id, d.Op, args)
		}
	case ast.ExprCall:
		if d, ok := ex.Call(id); ok {
			return ev.evalCall(id, d, env)
		}
	case ast.ExprDefine:
		if d, ok := ex.Define(id); ok {
			v, err := ev.eval(d.Value, env)
			if err != nil {
				return Value{}, err
			}
			env.Define(ev.b.Name(d.Name), v)
			return Void, nil
		}
	case ast.ExprDefineFunction:
		if d, ok := ex.DefineFunction(id); ok {
			name := ev.b.Name(d.Name)
			fn := &Closure{Name: name, Params: ev.b.Names(d.Params), Body: d.Body, Env: env, b: ev.b}
			env.Define(name, Value{Kind: KindClosure, Fn: fn})
			return Void, nil
		}
	case ast.ExprLambda:
		if d, ok := ex.Lambda(id); ok {
			fn := &Closure{Params: ev.b.Names(d.Params), Body: d.Body, Env: env, b: ev.b}
			return Value{Kind: KindClosure, Fn: fn}, nil
		}
	case ast.ExprIf:
		if d, ok := ex.If(id); ok {
			cond, err := ev.eval(d.Cond, env)
			if err != nil {
				return Value{}, err
			}
			if cond.Truthy() {
				return ev.eval(d.Then, env)
			}
			if !d.Else.IsValid() {
				return Void, nil
			}
			return ev.eval(d.Else, env)
		}
	case ast.ExprAnd:
		if d, ok := ex.Logical(id); ok {
			last := True
			for _, op := range d.Operands {
				v, err := ev.eval(op, env)
				if err != nil {
					return Value{}, err
				}
				if !v.Truthy() {
					return v, nil
				}
				last = v
			}
			return last, nil
		}
	case ast.ExprOr:
		if d, ok := ex.Logical(id); ok {
			for _, op := range d.Operands {
				v, err := ev.eval(op, env)
				if err != nil {
					return Value{}, err
				}
				if v.Truthy() {
					return v, nil
				}
			}
			return False, nil
		}
	case ast.ExprNot:
		if d, ok := ex.Unary(id); ok {
			v, err := ev.eval(d.Operand, env)
			if err != nil {
				return Value{}, err
			}
			return Bool(!v.Truthy()), nil
		}
	case ast.ExprCar, ast.ExprCdr:
		if d, ok := ex.Unary(id); ok {
			return ev.evalCarCdr(id, expr.Kind, d, env)
		}
	case ast.ExprLet:
		if d, ok := ex.Let(id); ok {
			scope := env.Child()
			for _, bind := range d.Bindings {
				v, err := ev.eval(bind.Value, scope)
				if err != nil {
					return Value{}, err
				}
				scope.Define(ev.b.Name(bind.Name), v)
			}
			return ev.eval(d.Body, scope)
		}
	case ast.ExprList:
		if d, ok := ex.List(id); ok {
			elems, err := ev.evalEach(d.Elems, env)
			if err != nil {
				return Value{}, err
			}
			return List(elems...), nil
		}
	case ast.ExprQuoted:
		if d, ok := ex.List(id); ok {
			return ev.evalQuoted(d, env)
		}
	case ast.ExprCons:
		if d, ok := ex.Cons(id); ok {
			head, err := ev.eval(d.Head, env)
			if err != nil {
				return Value{}, err
			}
			tail, err := ev.eval(d.Tail, env)
			if err != nil {
				return Value{}, err
			}
			if !tail.IsList() {
				return Value{}, ev.fail(ErrType, id, "cons: expected list as second argument, got %s", tail.Kind)
			}
			out := make([]Value, 0, len(tail.List)+1)
			out = append(out, head)
			return List(append(out, tail.List...)...), nil
		}
	}
	return Value{}, ev.fail(ErrMalformed, id, "no evaluation rule for %s", expr.Kind)
}

func (ev *evaluator) evalEach(ids []ast.ExprID, env *Env) ([]Value, error) {
	out := make([]Value, 0, len(ids))
	for _, id := range ids {
		v, err := ev.eval(id, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (ev *evaluator) evalAtom(id ast.ExprID, d *ast.ExprAtomData, env *Env) (Value, error) {
	text := ev.b.Name(d.Text)
	switch d.Kind {
	case ast.AtomNumber:
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, ev.fail(ErrMalformed, id, "bad number literal %q", text)
		}
		return Number(n), nil
	case ast.AtomString:
		if len(text) >= 2 {
			text = text[1 : len(text)-1]
		}
		return String(text), nil
	default:
		v, ok := env.Lookup(text)
		if !ok {
			return Value{}, ev.fail(ErrUnbound, id, "%s", text)
		}
		return v, nil
	}
}

// Атомы внутри '( ... ) — данные: символы не разыменовываются.
// Вложенные формы вычисляются, как и в переводе на Python.
func (ev *evaluator) evalQuoted(d *ast.ExprListData, env *Env) (Value, error) {
	out := make([]Value, 0, len(d.Elems))
	for _, el := range d.Elems {
		if atom, ok := ev.b.Exprs.Atom(el); ok && atom.Kind == ast.AtomSymbol {
			out = append(out, Symbol(ev.b.Name(atom.Text)))
			continue
		}
		v, err := ev.eval(el, env)
		if err != nil {
			return Value{}, err
		}
		out = append(out, v)
	}
	return List(out...), nil
}

func (ev *evaluator) evalCarCdr(id ast.ExprID, kind ast.ExprKind, d *ast.ExprUnaryData, env *Env) (Value, error) {
	name := "car"
	if kind == ast.ExprCdr {
		name = "cdr"
	}
	v, err := ev.eval(d.Operand, env)
	if err != nil {
		return Value{}, err
	}
	if !v.IsList() {
		return Value{}, ev.fail(ErrType, id, "%s: expected list, got %s", name, v.Kind)
	}
	if len(v.List) == 0 {
		return Value{}, ev.fail(ErrEmptyList, id, "%s of empty list", name)
	}
	if kind == ast.ExprCar {
		return v.List[0], nil
	}
	return List(v.List[1:]...), nil
}

func (ev *evaluator) evalCall(id ast.ExprID, d *ast.ExprCallData, env *Env) (Value, error) {
	name := ev.b.Name(d.Callee)
	callee, ok := env.Lookup(name)
	if !ok {
		return Value{}, ev.fail(ErrUnbound, id, "%s", name)
	}
	if callee.Kind != KindClosure {
		return Value{}, ev.fail(ErrNotCallable, id, "%s is a %s", name, callee.Kind)
	}
	args, err := ev.evalEach(d.Args, env)
	if err != nil {
		return Value{}, err
	}
	return ev.call(id, callee.Fn, args)
}

func (ev *evaluator) call(id ast.ExprID, fn *Closure, args []Value) (Value, error) {
	if len(args) != len(fn.Params) {
		name := fn.Name
		if name == "" {
			name = "lambda"
		}
		return Value{}, ev.fail(ErrArity, id, "%s expects %d argument(s), got %d", name, len(fn.Params), len(args))
	}
	scope := fn.Env.Child()
	for i, p := range fn.Params {
		scope.Define(p, args[i])
	}
	// тело может жить в другом дереве (REPL разбирает каждую строку отдельно)
	saved := ev.b
	ev.b = fn.b
	defer func() { ev.b = saved }()
	return ev.eval(fn.Body, scope)
}
