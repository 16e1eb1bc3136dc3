// Package translate renders rackpy syntax trees as Python source text.
//
// Every expression kind has exactly one rendering rule; dispatch is a closed
// switch over ast.ExprKind. Let bindings become plain assignment statements
// placed before the value that uses them, so they stay visible to the rest of
// the enclosing Python block. Lint reports such places as warnings without
// changing the output.
package translate
