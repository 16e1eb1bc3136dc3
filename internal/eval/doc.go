// Package eval is a reference interpreter for rackpy source forms.
//
// It follows the source language: only #f is false, let binds sequentially in
// a fresh scope, and numbers are float64 printed without a trailing ".0" when
// integral. Tests use it to check that the Python produced by package
// translate computes the same values.
package eval
