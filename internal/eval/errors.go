package eval

import (
	"errors"

	"rackpy/internal/source"
)

var (
	ErrUnbound       = errors.New("unbound symbol")
	ErrArity         = errors.New("arity mismatch")
	ErrType          = errors.New("type mismatch")
	ErrEmptyList     = errors.New("empty list")
	ErrDivByZero     = errors.New("division by zero")
	ErrNotCallable   = errors.New("not a procedure")
	ErrDepthExceeded = errors.New("recursion too deep")
	ErrMalformed     = errors.New("malformed tree")
)

// Error carries the failing node's span. errors.Is matches the Err sentinel.
type Error struct {
	Err    error
	Span   source.Span
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *Error) Unwrap() error { return e.Err }
