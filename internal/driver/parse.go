package driver

import (
	"context"
	"fmt"

	"rackpy/internal/ast"
	"rackpy/internal/diag"
	"rackpy/internal/lexer"
	"rackpy/internal/parser"
	"rackpy/internal/source"
	"rackpy/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Roots   []ast.ExprID
	Bag     *diag.Bag
}

// Err returns the first syntax error as *parser.SyntaxError, or nil.
func (r *ParseResult) Err() error {
	return parser.ErrorFromBag(r.FileSet, r.Bag)
}

func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseFile(ctx, fs, fs.Get(fileID), opts)
}

// ParseSource parses src as the virtual file name.
func ParseSource(ctx context.Context, name string, src []byte, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	return parseFile(ctx, fs, fs.Get(fs.AddVirtual(name, src)), opts)
}

func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*ParseResult, error) {
	maxErrors, err := opts.maxErrors()
	if err != nil {
		return nil, err
	}
	if trace.UnitFromContext(ctx) == "" {
		ctx = trace.WithUnit(ctx, file.Path)
	}
	span, _ := trace.BeginCtx(ctx, trace.ScopePass, "parse")

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)

	result := parser.ParseFile(lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
		Single:    opts.Single,
	})

	span.WithExtra("forms", fmt.Sprint(len(result.Roots))).
		WithExtra("diagnostics", fmt.Sprint(bag.Len())).
		End(file.Path)

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		Roots:   result.Roots,
		Bag:     bag,
	}, nil
}
