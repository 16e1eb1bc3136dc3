package ast

import "rackpy/internal/source"

type AtomKind uint8

const (
	AtomSymbol AtomKind = iota
	AtomNumber
	AtomString
)

func (k AtomKind) String() string {
	switch k {
	case AtomSymbol:
		return "Symbol"
	case AtomNumber:
		return "Number"
	case AtomString:
		return "String"
	default:
		return "AtomKind(?)"
	}
}

type OpKind uint8

const (
	OpAdd OpKind = iota
	OpSub
	OpMul
	OpDiv
	OpGt
	OpLt
	OpGtEq
	OpLtEq
	OpEq
	OpNotEq
)

var opSpellings = [...]string{
	OpAdd:   "+",
	OpSub:   "-",
	OpMul:   "*",
	OpDiv:   "/",
	OpGt:    ">",
	OpLt:    "<",
	OpGtEq:  ">=",
	OpLtEq:  "<=",
	OpEq:    "=",
	OpNotEq: "!=",
}

// String returns the operator as it is written in source.
func (op OpKind) String() string {
	if int(op) < len(opSpellings) {
		return opSpellings[op]
	}
	return "?"
}

// IsComparison reports whether op yields a boolean.
func (op OpKind) IsComparison() bool {
	return op >= OpGt && op <= OpNotEq
}

type ExprAtomData struct {
	Kind AtomKind
	Text source.StringID // исходный текст; строки вместе с кавычками
}

type ExprOperationData struct {
	Op   OpKind
	Args []ExprID
}

type ExprCallData struct {
	Callee source.StringID
	Args   []ExprID
}

type ExprDefineData struct {
	Name  source.StringID
	Value ExprID
}

type ExprDefineFunctionData struct {
	Name   source.StringID
	Params []source.StringID
	Body   ExprID
}

type ExprLambdaData struct {
	Params []source.StringID
	Body   ExprID
}

type ExprIfData struct {
	Cond ExprID
	Then ExprID
	Else ExprID // NoExprID, если ветки нет
}

// ExprLogicalData is shared by And and Or.
type ExprLogicalData struct {
	Operands []ExprID
}

// ExprUnaryData is shared by Not, Car and Cdr.
type ExprUnaryData struct {
	Operand ExprID
}

type LetBinding struct {
	Name  source.StringID
	Value ExprID
	Span  source.Span
}

type ExprLetData struct {
	Bindings []LetBinding
	Body     ExprID
}

// ExprListData is shared by List and Quoted.
type ExprListData struct {
	Elems []ExprID
}

type ExprConsData struct {
	Head ExprID
	Tail ExprID
}
