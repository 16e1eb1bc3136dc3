package token

// Class is the coarse lexical category of a token.
type Class uint8

const (
	ClassNone Class = iota
	ClassSymbol
	ClassNumber
	ClassString
	ClassMathOperator
	ClassComparisonOperator
	ClassPunctuation
)

func (c Class) String() string {
	switch c {
	case ClassSymbol:
		return "SYMBOL"
	case ClassNumber:
		return "NUMBER"
	case ClassString:
		return "STRING"
	case ClassMathOperator:
		return "MATH_OPERATOR"
	case ClassComparisonOperator:
		return "COMPARISON_OPERATOR"
	case ClassPunctuation:
		return "PUNCTUATION"
	default:
		return "NONE"
	}
}

// Class maps k onto its lexical category. Keywords are symbols lexically;
// Invalid and EOF have no class.
func (k Kind) Class() Class {
	switch {
	case k == Symbol || k.IsKeyword():
		return ClassSymbol
	case k == Number:
		return ClassNumber
	case k == String:
		return ClassString
	case k.IsMathOp():
		return ClassMathOperator
	case k.IsComparisonOp():
		return ClassComparisonOperator
	case k == LParen || k == RParen || k == Quote:
		return ClassPunctuation
	default:
		return ClassNone
	}
}
