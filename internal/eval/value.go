package eval

import (
	"strconv"
	"strings"

	"rackpy/internal/ast"
)

type Kind uint8

const (
	KindVoid Kind = iota
	KindNumber
	KindString
	KindBool
	KindSymbol
	KindList
	KindClosure
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindSymbol:
		return "symbol"
	case KindList:
		return "list"
	case KindClosure:
		return "procedure"
	default:
		return "Kind(?)"
	}
}

// Value is a tagged union; only the field matching Kind is meaningful.
type Value struct {
	Kind Kind
	Num  float64
	Str  string // содержимое строки без кавычек или имя символа
	Bool bool
	List []Value
	Fn   *Closure
}

// Closure is a lambda or a function introduced by define.
type Closure struct {
	Name   string // "" для lambda
	Params []string
	Body   ast.ExprID
	Env    *Env
	b      *ast.Builder // дерево, которому принадлежит Body
}

var (
	Void  = Value{Kind: KindVoid}
	True  = Value{Kind: KindBool, Bool: true}
	False = Value{Kind: KindBool, Bool: false}
)

func Number(n float64) Value   { return Value{Kind: KindNumber, Num: n} }
func String(s string) Value    { return Value{Kind: KindString, Str: s} }
func Symbol(s string) Value    { return Value{Kind: KindSymbol, Str: s} }
func Bool(b bool) Value        { return Value{Kind: KindBool, Bool: b} }
func List(vs ...Value) Value   { return Value{Kind: KindList, List: vs} }
func (v Value) Truthy() bool   { return v.Kind != KindBool || v.Bool }
func (v Value) IsVoid() bool   { return v.Kind == KindVoid }
func (v Value) IsList() bool   { return v.Kind == KindList }
func (v Value) IsNumber() bool { return v.Kind == KindNumber }

// String prints v the way the source language displays it.
func (v Value) String() string {
	switch v.Kind {
	case KindVoid:
		return "#<void>"
	case KindNumber:
		return formatNumber(v.Num)
	case KindString:
		return `"` + v.Str + `"`
	case KindBool:
		if v.Bool {
			return "#t"
		}
		return "#f"
	case KindSymbol:
		return v.Str
	case KindList:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	case KindClosure:
		if v.Fn.Name != "" {
			return "#<procedure:" + v.Fn.Name + ">"
		}
		return "#<procedure>"
	default:
		return "#<unknown>"
	}
}

// Python prints v the way Python's print would show the translated value.
// Strings use single quotes inside lists, as repr does.
func (v Value) Python() string {
	return v.python(false)
}

func (v Value) python(nested bool) string {
	switch v.Kind {
	case KindVoid:
		return "None"
	case KindNumber:
		return formatNumber(v.Num)
	case KindString:
		if nested {
			return "'" + v.Str + "'"
		}
		return v.Str
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case KindSymbol:
		return v.Str
	case KindList:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = e.python(true)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return v.String()
	}
}

// Equal is structural equality; closures compare by identity.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindVoid:
		return true
	case KindNumber:
		return v.Num == o.Num
	case KindString, KindSymbol:
		return v.Str == o.Str
	case KindBool:
		return v.Bool == o.Bool
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	case KindClosure:
		return v.Fn == o.Fn
	}
	return false
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
