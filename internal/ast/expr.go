package ast

import (
	"rackpy/internal/source"
)

type ExprKind uint8

const (
	ExprAtom ExprKind = iota
	ExprOperation
	ExprCall
	ExprDefine
	ExprDefineFunction
	ExprLambda
	ExprIf
	ExprAnd
	ExprOr
	ExprNot
	ExprCar
	ExprCdr
	ExprLet
	ExprList
	ExprCons
	ExprQuoted
)

var exprKindNames = [...]string{
	ExprAtom:           "Atom",
	ExprOperation:      "Operation",
	ExprCall:           "Call",
	ExprDefine:         "Define",
	ExprDefineFunction: "DefineFunction",
	ExprLambda:         "Lambda",
	ExprIf:             "If",
	ExprAnd:            "And",
	ExprOr:             "Or",
	ExprNot:            "Not",
	ExprCar:            "Car",
	ExprCdr:            "Cdr",
	ExprLet:            "Let",
	ExprList:           "List",
	ExprCons:           "Cons",
	ExprQuoted:         "Quoted",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) && exprKindNames[k] != "" {
		return exprKindNames[k]
	}
	return "ExprKind(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}
