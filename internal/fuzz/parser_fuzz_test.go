package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"rackpy/internal/ast"
	"rackpy/internal/diag"
	"rackpy/internal/lexer"
	"rackpy/internal/parser"
	"rackpy/internal/source"
	"rackpy/internal/testkit"
	"rackpy/internal/translate"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func parseInput(input []byte) (*ast.Builder, parser.Result, *source.File) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.rkt", input))

	reporter := &diag.BagReporter{Bag: diag.NewBag(128)}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: 128,
	})
	return builder, res, file
}

// FuzzParserBuildsAST checks that clean parses keep span invariants and that
// the translator accepts every tree the parser produces.
func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		builder, res, file := parseInput(clampInput(input))
		if res.Bag.HasErrors() {
			return
		}
		if err := testkit.CheckSpanInvariants(builder, res.Roots, file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, input)
		}
		if _, err := translate.New(translate.DefaultOptions()).TranslateAll(builder, res.Roots); err != nil {
			var ue *translate.UnsupportedFormError
			if errors.As(err, &ue) {
				t.Fatalf("parser produced an untranslatable tree: %v\ninput: %q", err, input)
			}
			t.Fatalf("translate: %v", err)
		}
		lints := diag.NewBag(0)
		translate.Lint(builder, res.Roots, diag.BagReporter{Bag: lints})
		if lints.HasErrors() {
			t.Fatalf("lint reported errors: %+v\ninput: %q", lints.Items(), input)
		}
		for _, d := range lints.Items() {
			if int(d.Primary.End) > len(file.Content) {
				t.Fatalf("lint span %v outside input of %d bytes", d.Primary, len(file.Content))
			}
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// It uses a timeout to detect infinite loops in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// глубокая вложенность и обрывы посреди формы
	f.Add([]byte("((((((((((((((((((((1))))))))))))))))))))"))
	f.Add([]byte("(define (f) (let ((a (if"))
	f.Add([]byte(")))) (+ 1 2) ((("))
	f.Add([]byte("'(1 '(2 '(3"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _, _ = parseInput(input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzTranspileMatchesParse checks the public API agrees with itself: a
// program either fails with a *parser.SyntaxError or translates.
func FuzzTranspileMatchesParse(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := string(clampInput(input))
		_, err := translate.TranspileAll(src)
		if err == nil {
			return
		}
		var se *parser.SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("TranspileAll(%q) error %T is not a syntax error: %v", src, err, err)
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
