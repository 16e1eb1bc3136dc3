package ast

import (
	"rackpy/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena           *Arena[Expr]
	Atoms           *Arena[ExprAtomData]
	Operations      *Arena[ExprOperationData]
	Calls           *Arena[ExprCallData]
	Defines         *Arena[ExprDefineData]
	DefineFunctions *Arena[ExprDefineFunctionData]
	Lambdas         *Arena[ExprLambdaData]
	Ifs             *Arena[ExprIfData]
	Logicals        *Arena[ExprLogicalData]
	Unaries         *Arena[ExprUnaryData]
	Lets            *Arena[ExprLetData]
	Lists           *Arena[ExprListData]
	Conses          *Arena[ExprConsData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 6
	}
	small := capHint/4 + 1
	return &Exprs{
		Arena:           NewArena[Expr](capHint),
		Atoms:           NewArena[ExprAtomData](capHint),
		Operations:      NewArena[ExprOperationData](small),
		Calls:           NewArena[ExprCallData](small),
		Defines:         NewArena[ExprDefineData](small),
		DefineFunctions: NewArena[ExprDefineFunctionData](small),
		Lambdas:         NewArena[ExprLambdaData](small),
		Ifs:             NewArena[ExprIfData](small),
		Logicals:        NewArena[ExprLogicalData](small),
		Unaries:         NewArena[ExprUnaryData](small),
		Lets:            NewArena[ExprLetData](small),
		Lists:           NewArena[ExprListData](small),
		Conses:          NewArena[ExprConsData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kinds ...ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil {
		return 0, false
	}
	for _, k := range kinds {
		if expr.Kind == k {
			return uint32(expr.Payload), true
		}
	}
	return 0, false
}

func lookup[T any](a *Arena[T], index uint32) (*T, bool) {
	data := a.Get(index)
	return data, data != nil
}

// NewAtom creates a symbol, number or string expression.
func (e *Exprs) NewAtom(span source.Span, kind AtomKind, text source.StringID) ExprID {
	return e.new(ExprAtom, span, e.Atoms.Allocate(ExprAtomData{Kind: kind, Text: text}))
}

// Atom returns the atom data for the given expression ID.
func (e *Exprs) Atom(id ExprID) (*ExprAtomData, bool) {
	p, ok := e.payload(id, ExprAtom)
	if !ok {
		return nil, false
	}
	return lookup(e.Atoms, p)
}

// NewOperation creates an operator application.
func (e *Exprs) NewOperation(span source.Span, op OpKind, args []ExprID) ExprID {
	payload := e.Operations.Allocate(ExprOperationData{Op: op, Args: append([]ExprID(nil), args...)})
	return e.new(ExprOperation, span, payload)
}

// Operation returns the operation data for the given expression ID.
func (e *Exprs) Operation(id ExprID) (*ExprOperationData, bool) {
	p, ok := e.payload(id, ExprOperation)
	if !ok {
		return nil, false
	}
	return lookup(e.Operations, p)
}

// NewCall creates a call of a named function.
func (e *Exprs) NewCall(span source.Span, callee source.StringID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: append([]ExprID(nil), args...)})
	return e.new(ExprCall, span, payload)
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return lookup(e.Calls, p)
}

// NewDefine creates a variable definition.
func (e *Exprs) NewDefine(span source.Span, name source.StringID, value ExprID) ExprID {
	return e.new(ExprDefine, span, e.Defines.Allocate(ExprDefineData{Name: name, Value: value}))
}

// Define returns the definition data for the given expression ID.
func (e *Exprs) Define(id ExprID) (*ExprDefineData, bool) {
	p, ok := e.payload(id, ExprDefine)
	if !ok {
		return nil, false
	}
	return lookup(e.Defines, p)
}

// NewDefineFunction creates a named function definition.
func (e *Exprs) NewDefineFunction(span source.Span, name source.StringID, params []source.StringID, body ExprID) ExprID {
	payload := e.DefineFunctions.Allocate(ExprDefineFunctionData{
		Name:   name,
		Params: append([]source.StringID(nil), params...),
		Body:   body,
	})
	return e.new(ExprDefineFunction, span, payload)
}

// DefineFunction returns the function definition data for the given expression ID.
func (e *Exprs) DefineFunction(id ExprID) (*ExprDefineFunctionData, bool) {
	p, ok := e.payload(id, ExprDefineFunction)
	if !ok {
		return nil, false
	}
	return lookup(e.DefineFunctions, p)
}

// NewLambda creates an anonymous function.
func (e *Exprs) NewLambda(span source.Span, params []source.StringID, body ExprID) ExprID {
	payload := e.Lambdas.Allocate(ExprLambdaData{Params: append([]source.StringID(nil), params...), Body: body})
	return e.new(ExprLambda, span, payload)
}

// Lambda returns the lambda data for the given expression ID.
func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	p, ok := e.payload(id, ExprLambda)
	if !ok {
		return nil, false
	}
	return lookup(e.Lambdas, p)
}

// NewIf creates a conditional; pass NoExprID as els when there is no else branch.
func (e *Exprs) NewIf(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprIf, span, e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: els}))
}

// If returns the conditional data for the given expression ID.
func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	p, ok := e.payload(id, ExprIf)
	if !ok {
		return nil, false
	}
	return lookup(e.Ifs, p)
}

// NewAnd creates a conjunction.
func (e *Exprs) NewAnd(span source.Span, operands []ExprID) ExprID {
	return e.newLogical(ExprAnd, span, operands)
}

// NewOr creates a disjunction.
func (e *Exprs) NewOr(span source.Span, operands []ExprID) ExprID {
	return e.newLogical(ExprOr, span, operands)
}

func (e *Exprs) newLogical(kind ExprKind, span source.Span, operands []ExprID) ExprID {
	payload := e.Logicals.Allocate(ExprLogicalData{Operands: append([]ExprID(nil), operands...)})
	return e.new(kind, span, payload)
}

// Logical returns the operands of an And or Or expression.
func (e *Exprs) Logical(id ExprID) (*ExprLogicalData, bool) {
	p, ok := e.payload(id, ExprAnd, ExprOr)
	if !ok {
		return nil, false
	}
	return lookup(e.Logicals, p)
}

// NewNot creates a negation.
func (e *Exprs) NewNot(span source.Span, operand ExprID) ExprID {
	return e.newUnary(ExprNot, span, operand)
}

// NewCar creates a first-element access.
func (e *Exprs) NewCar(span source.Span, operand ExprID) ExprID {
	return e.newUnary(ExprCar, span, operand)
}

// NewCdr creates a rest-of-list access.
func (e *Exprs) NewCdr(span source.Span, operand ExprID) ExprID {
	return e.newUnary(ExprCdr, span, operand)
}

func (e *Exprs) newUnary(kind ExprKind, span source.Span, operand ExprID) ExprID {
	return e.new(kind, span, e.Unaries.Allocate(ExprUnaryData{Operand: operand}))
}

// Unary returns the operand of a Not, Car or Cdr expression.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprNot, ExprCar, ExprCdr)
	if !ok {
		return nil, false
	}
	return lookup(e.Unaries, p)
}

// NewLet creates a let expression; bindings are evaluated in order.
func (e *Exprs) NewLet(span source.Span, bindings []LetBinding, body ExprID) ExprID {
	payload := e.Lets.Allocate(ExprLetData{Bindings: append([]LetBinding(nil), bindings...), Body: body})
	return e.new(ExprLet, span, payload)
}

// Let returns the let data for the given expression ID.
func (e *Exprs) Let(id ExprID) (*ExprLetData, bool) {
	p, ok := e.payload(id, ExprLet)
	if !ok {
		return nil, false
	}
	return lookup(e.Lets, p)
}

// NewList creates a (list ...) expression.
func (e *Exprs) NewList(span source.Span, elems []ExprID) ExprID {
	return e.newList(ExprList, span, elems)
}

// NewQuoted creates a quoted list '(...).
func (e *Exprs) NewQuoted(span source.Span, elems []ExprID) ExprID {
	return e.newList(ExprQuoted, span, elems)
}

func (e *Exprs) newList(kind ExprKind, span source.Span, elems []ExprID) ExprID {
	payload := e.Lists.Allocate(ExprListData{Elems: append([]ExprID(nil), elems...)})
	return e.new(kind, span, payload)
}

// List returns the elements of a List or Quoted expression.
func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	p, ok := e.payload(id, ExprList, ExprQuoted)
	if !ok {
		return nil, false
	}
	return lookup(e.Lists, p)
}

// NewCons creates a cons cell.
func (e *Exprs) NewCons(span source.Span, head, tail ExprID) ExprID {
	return e.new(ExprCons, span, e.Conses.Allocate(ExprConsData{Head: head, Tail: tail}))
}

// Cons returns the cons data for the given expression ID.
func (e *Exprs) Cons(id ExprID) (*ExprConsData, bool) {
	p, ok := e.payload(id, ExprCons)
	if !ok {
		return nil, false
	}
	return lookup(e.Conses, p)
}
