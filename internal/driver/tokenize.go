package driver

import (
	"fmt"
	"slices"

	"rackpy/internal/diag"
	"rackpy/internal/lexer"
	"rackpy/internal/source"
	"rackpy/internal/token"
)

// TokenizeResult is the full token stream of one file, EOF included.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes the file at path.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return lexAll(fs, id, maxDiagnostics), nil
}

// TokenizeSource lexes src as the virtual file name.
func TokenizeSource(name string, src []byte, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	return lexAll(fs, fs.AddVirtual(name, src), maxDiagnostics)
}

func lexAll(fs *source.FileSet, id source.FileID, maxDiagnostics int) *TokenizeResult {
	res := &TokenizeResult{FileSet: fs, File: fs.Get(id), Bag: diag.NewBag(maxDiagnostics)}
	lx := lexer.New(res.File, lexer.Options{Reporter: diag.BagReporter{Bag: res.Bag}})
	res.Tokens = slices.Collect(lx.All())
	return res
}
