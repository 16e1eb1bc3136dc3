package eval

import (
	"errors"
	"testing"

	"rackpy/internal/parser"
)

func evalLast(t *testing.T, src string) Value {
	t.Helper()
	vals, err := Run(src)
	if err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	if len(vals) == 0 {
		t.Fatalf("Run(%q) produced no values", src)
	}
	return vals[len(vals)-1]
}

func TestEval_Values(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"number", "42", "42"},
		{"fraction", "-2.5", "-2.5"},
		{"string", `"hi"`, `"hi"`},
		{"add", "(+ 1 2)", "3"},
		{"variadic add", "(+ 1 2 3 4)", "10"},
		{"negate", "(- 5)", "-5"},
		{"sub chain", "(- 10 1 2)", "7"},
		{"mul", "(* 2 3.5)", "7"},
		{"div", "(/ 7 2)", "3.5"},
		{"compare", "(< 1 2 3)", "#t"},
		{"compare false", "(> 1 2)", "#f"},
		{"equal", "(= 2 2)", "#t"},
		{"not equal", "(!= 2 3)", "#t"},
		{"if then", "(if (> 2 1) 10 20)", "10"},
		{"if else", "(if (> 1 2) 10 20)", "20"},
		{"if missing else", "(if (> 1 2) 10)", "#<void>"},
		{"zero is true", "(if 0 1 2)", "1"},
		{"and last", "(and 1 2)", "2"},
		{"and short", "(and (> 1 2) (car (list)))", "#f"},
		{"or first", "(or (> 1 2) 7)", "7"},
		{"or none", "(or (> 1 2) (< 2 1))", "#f"},
		{"not", "(not (> 1 2))", "#t"},
		{"car", "(car (list 1 2 3))", "1"},
		{"cdr", "(cdr (list 1 2 3))", "(2 3)"},
		{"cons", "(cons 1 (list 2 3))", "(1 2 3)"},
		{"cons empty", "(cons 1 (list))", "(1)"},
		{"let sequential", "(let ((a 1) (b (+ a 1))) (+ a b))", "3"},
		{"let shadow", "(define a 10) (let ((a 1)) a)", "1"},
		{"let does not leak", "(define a 10) (let ((a 1)) a) a", "10"},
		{"define", "(define x (+ 1 2)) x", "3"},
		{"function", "(define (sq x) (* x x)) (sq 4)", "16"},
		{"recursion", "(define (fact n) (if (<= n 1) 1 (* n (fact (- n 1))))) (fact 5)", "120"},
		{"lambda", "(define add (lambda (a b) (+ a b))) (add 2 3)", "5"},
		{"closure", "(define (adder n) (lambda (x) (+ x n))) (define inc (adder 1)) (inc 41)", "42"},
		{"quoted", "'(1 2 3)", "(1 2 3)"},
		{"quoted symbols", "'(a b)", "(a b)"},
		{"list of strings", `(list "a" "b")`, `("a" "b")`},
		{"nested list", "(list 1 (list 2 3))", "(1 (2 3))"},
		{"list equality", "(= (list 1 2) (cdr (list 0 1 2)))", "#t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalLast(t, tt.src).String(); got != tt.want {
				t.Errorf("eval %q = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unbound", "x", ErrUnbound},
		{"unbound call", "(f 1)", ErrUnbound},
		{"arity", "(define (f a) a) (f 1 2)", ErrArity},
		{"not callable", "(define f 1) (f)", ErrNotCallable},
		{"add string", `(+ 1 "a")`, ErrType},
		{"car number", "(car 1)", ErrType},
		{"car empty", "(car (list))", ErrEmptyList},
		{"cdr empty", "(cdr '())", ErrEmptyList},
		{"cons non list", "(cons 1 2)", ErrType},
		{"div zero", "(/ 1 0)", ErrDivByZero},
		{"invert zero", "(/ 0)", ErrDivByZero},
		{"runaway", "(define (loop n) (loop n)) (loop 1)", ErrDepthExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Run(%q) error = %v, want %v", tt.src, err, tt.want)
			}
			var ee *Error
			if !errors.As(err, &ee) {
				t.Fatalf("error %T is not *eval.Error", err)
			}
		})
	}
}

func TestEval_SyntaxErrorPassesThrough(t *testing.T) {
	_, err := Run("(+ 1")
	var se *parser.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *parser.SyntaxError, got %v", err)
	}
}

// Функции, определённые в одном дереве, вызываются из другого (как в REPL).
func TestEval_ClosureAcrossTrees(t *testing.T) {
	env := NewEnv()
	for _, line := range []string{"(define (twice x) (* 2 x))", "(define y 5)"} {
		b, id, err := parser.Parse(line)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Eval(b, id, env); err != nil {
			t.Fatal(err)
		}
	}
	b, id, err := parser.Parse("(+ 1 (twice y))")
	if err != nil {
		t.Fatal(err)
	}
	v, err := Eval(b, id, env)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "11" {
		t.Errorf("got %s, want 11", v)
	}
}

func TestEvalWith_MaxDepth(t *testing.T) {
	b, id, err := parser.Parse("(+ 1 (+ 2 (+ 3 4)))")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := EvalWith(b, id, NewEnv(), Options{MaxDepth: 2}); !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("expected ErrDepthExceeded, got %v", err)
	}
	if _, err := EvalWith(b, id, NewEnv(), Options{MaxDepth: 8}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValue_Python(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Number(3), "3"},
		{Number(2.5), "2.5"},
		{True, "True"},
		{Void, "None"},
		{String("hi"), "hi"},
		{List(Number(1), String("a"), List()), "[1, 'a', []]"},
	}
	for _, tt := range tests {
		if got := tt.v.Python(); got != tt.want {
			t.Errorf("Python() = %q, want %q", got, tt.want)
		}
	}
}
