package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadOperator        Code = 1004

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedParen      Code = 2002
	SynUnexpectedRParen   Code = 2003
	SynExpectExpression   Code = 2004
	SynExpectSymbol       Code = 2005
	SynExpectLParen       Code = 2006
	SynExpectRParen       Code = 2007
	SynExpectBody         Code = 2008
	SynTooManyExpressions Code = 2009
	SynEmptyForm          Code = 2010
	SynExpectBinding      Code = 2011
	SynTrailingInput      Code = 2012
	SynEmptyInput         Code = 2013

	// Трансляция
	TrnUnsupportedForm Code = 3001
	TrnLetLeak         Code = 3002
	TrnLetInExpression Code = 3003
	TrnQuotedForm      Code = 3004
	TrnDuplicateParam  Code = 3005
	TrnImplicitNone    Code = 3006

	// Ошибки I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexBadNumber:          "Malformed number literal",
	LexBadOperator:        "Malformed operator",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnclosedParen:      "Unclosed parenthesis",
	SynUnexpectedRParen:   "Unexpected closing parenthesis",
	SynExpectExpression:   "Expected expression",
	SynExpectSymbol:       "Expected symbol",
	SynExpectLParen:       "Expected '('",
	SynExpectRParen:       "Expected ')'",
	SynExpectBody:         "Expected body expression",
	SynTooManyExpressions: "Too many expressions in form",
	SynEmptyForm:          "Empty form",
	SynExpectBinding:      "Expected let binding",
	SynTrailingInput:      "Unexpected input after top-level form",
	SynEmptyInput:         "No top-level form",
	TrnUnsupportedForm:    "Unsupported syntax form",
	TrnLetLeak:            "Let bindings leak into module scope",
	TrnLetInExpression:    "Let inside an expression",
	TrnQuotedForm:         "Quoted element is evaluated",
	TrnDuplicateParam:     "Duplicate parameter name",
	TrnImplicitNone:       "If without else yields None",
	IOLoadFileError:       "I/O error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TRN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
