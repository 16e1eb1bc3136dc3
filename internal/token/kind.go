package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Symbol represents a bare name such as `x` or `list-length`.
	Symbol
	// Number represents a numeric literal (optional '-', digits, optional fraction).
	Number
	// String represents a double-quoted string literal.
	String

	// KwDefine represents the 'define' keyword.
	KwDefine // define
	// KwLambda represents the 'lambda' keyword.
	KwLambda // lambda
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwNot represents the 'not' keyword.
	KwNot // not
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwList represents the 'list' keyword.
	KwList // list
	// KwCar represents the 'car' keyword.
	KwCar // car
	// KwCdr represents the 'cdr' keyword.
	KwCdr // cdr
	// KwCons represents the 'cons' keyword.
	KwCons // cons

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /

	// Gt represents the greater-than operator token.
	Gt // >
	// Lt represents the less-than operator token.
	Lt // <
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Eq represents the equality operator token.
	Eq // =
	// BangEq represents the inequality operator token.
	BangEq // !=

	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// Quote represents the quote mark introducing a literal list.
	Quote // '
)

var kindNames = [...]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	Symbol:   "Symbol",
	Number:   "Number",
	String:   "String",
	KwDefine: "KwDefine",
	KwLambda: "KwLambda",
	KwIf:     "KwIf",
	KwAnd:    "KwAnd",
	KwOr:     "KwOr",
	KwNot:    "KwNot",
	KwLet:    "KwLet",
	KwList:   "KwList",
	KwCar:    "KwCar",
	KwCdr:    "KwCdr",
	KwCons:   "KwCons",
	Plus:     "Plus",
	Minus:    "Minus",
	Star:     "Star",
	Slash:    "Slash",
	Gt:       "Gt",
	Lt:       "Lt",
	GtEq:     "GtEq",
	LtEq:     "LtEq",
	Eq:       "Eq",
	BangEq:   "BangEq",
	LParen:   "LParen",
	RParen:   "RParen",
	Quote:    "Quote",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsEOF reports whether k terminates the token stream.
func (k Kind) IsEOF() bool { return k == EOF }

// IsKeyword reports whether k is one of the form keywords.
func (k Kind) IsKeyword() bool { return k >= KwDefine && k <= KwCons }

// IsMathOp reports whether k is an arithmetic operator.
func (k Kind) IsMathOp() bool { return k >= Plus && k <= Slash }

// IsComparisonOp reports whether k is a comparison operator.
func (k Kind) IsComparisonOp() bool { return k >= Gt && k <= BangEq }

// IsOperator reports whether k may head an operation form.
func (k Kind) IsOperator() bool { return k.IsMathOp() || k.IsComparisonOp() }
