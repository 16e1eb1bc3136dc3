package parser

import (
	"rackpy/internal/ast"
	"rackpy/internal/diag"
	"rackpy/internal/lexer"
	"rackpy/internal/source"
)

// inputName is the virtual path used for strings handed to Parse and ParseAll.
const inputName = "<input>"

type session struct {
	fs      *source.FileSet
	bag     *diag.Bag
	builder *ast.Builder
	parser  *Parser
}

func newSession(src string) *session {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(inputName, []byte(src)))
	bag := diag.NewBag(0)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	return &session{
		fs:      fs,
		bag:     bag,
		builder: builder,
		parser:  newParser(lx, builder, Options{MaxErrors: 1, Reporter: reporter}),
	}
}

// failure converts the first reported error into a *SyntaxError.
func (s *session) failure() error {
	return ErrorFromBag(s.fs, s.bag)
}

// Parse parses exactly one expression. Anything after it, including a second
// form, is a syntax error. On error the builder is nil.
func Parse(src string) (*ast.Builder, ast.ExprID, error) {
	s := newSession(src)
	root, ok := s.parser.parseSingle()
	if err := s.failure(); err != nil || !ok {
		if err == nil {
			err = &SyntaxError{Message: "invalid input"}
		}
		return nil, ast.NoExprID, err
	}
	return s.builder, root, nil
}

// ParseAll parses a whole program: zero or more top-level forms.
func ParseAll(src string) (*ast.Builder, []ast.ExprID, error) {
	s := newSession(src)
	roots := s.parser.parseForms()
	if err := s.failure(); err != nil {
		return nil, nil, err
	}
	return s.builder, roots, nil
}
