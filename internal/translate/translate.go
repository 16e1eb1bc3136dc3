package translate

import (
	"strings"

	"rackpy/internal/ast"
	"rackpy/internal/parser"
)

// Translator is stateless apart from its options and may be shared between goroutines.
type Translator struct {
	opts Options
}

func New(opts Options) *Translator {
	return &Translator{opts: opts.withDefaults()}
}

var std = New(DefaultOptions())

// Options returns the effective options.
func (t *Translator) Options() Options {
	return t.opts
}

// Translate renders the tree rooted at id. On error the result is "".
func (t *Translator) Translate(b *ast.Builder, id ast.ExprID) (string, error) {
	r := renderer{b: b, opts: t.opts}
	out, err := r.render(id)
	if err != nil {
		return "", err
	}
	return out, nil
}

// TranslateAll renders several top-level forms, one after another, separated by newlines.
func (t *Translator) TranslateAll(b *ast.Builder, ids []ast.ExprID) (string, error) {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		out, err := t.Translate(b, id)
		if err != nil {
			return "", err
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, "\n"), nil
}

// Transpile parses exactly one form and translates it.
func (t *Translator) Transpile(src string) (string, error) {
	b, id, err := parser.Parse(src)
	if err != nil {
		return "", err
	}
	return t.Translate(b, id)
}

// TranspileAll parses a whole program and translates every form.
func (t *Translator) TranspileAll(src string) (string, error) {
	b, ids, err := parser.ParseAll(src)
	if err != nil {
		return "", err
	}
	return t.TranslateAll(b, ids)
}

// Translate renders id with the default options.
func Translate(b *ast.Builder, id ast.ExprID) (string, error) {
	return std.Translate(b, id)
}

// Transpile is Translate(Parse(src)) with the default options.
func Transpile(src string) (string, error) {
	return std.Transpile(src)
}

// TranspileAll translates every top-level form of src, joined by newlines.
func TranspileAll(src string) (string, error) {
	return std.TranspileAll(src)
}
