package eval

import (
	"os/exec"
	"strings"
	"testing"

	"rackpy/internal/translate"
)

// pythonValue executes the translated program and prints the value of its
// last line.
func pythonValue(t *testing.T, python, src string) string {
	t.Helper()
	out, err := translate.TranspileAll(src)
	if err != nil {
		t.Fatalf("TranspileAll(%q): %v", src, err)
	}
	lines := strings.Split(out, "\n")
	last := len(lines) - 1
	lines[last] = "print(" + lines[last] + ")"
	script := strings.Join(lines, "\n")

	// #nosec G204 -- test-only invocation with generated code
	res, err := exec.Command(python, "-c", script).CombinedOutput()
	if err != nil {
		t.Fatalf("python failed on\n%s\n%s: %v", script, res, err)
	}
	return strings.TrimSpace(string(res))
}

// The rendered Python must compute the same value as the source form.
func TestTranslatedPythonMatchesEval(t *testing.T) {
	python, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not found in PATH")
	}

	programs := []string{
		"(+ 1 2)",
		"(* (+ 1 2) (- 10 4))",
		"(- 5)",
		"(define x (+ 1 2)) x",
		"(if (> 3 1) 10 20)",
		"(if (< 3 1) 10 20)",
		"(if (< 3 1) 10)",
		"(and (> 2 1) (< 1 2))",
		"(or (> 1 2) (= 1 1))",
		"(not (= 1 2))",
		"(car (list 1 2 3))",
		"(cdr (list 1 2 3))",
		"(cons 1 (list 2 3))",
		"(car (cons 7 (list 8)))",
		"(cons 1 (cons 2 (list)))",
		"'(1 2 3)",
		"(let ((a 1) (b (+ a 1))) (+ a b))",
		"(define (sq x) (* x x)) (sq 9)",
		"(define (f x) (let ((a 1) (b (+ a x))) (+ a b))) (f 10)",
		"(define add (lambda (a b) (+ a b))) (add 2 3)",
		"(define (fact n) (if (<= n 1) 1 (* n (fact (- n 1))))) (fact 6)",
		"(define (adder n) (lambda (x) (+ x n))) (define inc (adder 1)) (inc 41)",
		`(list "a" "b")`,
		"(+ (if (> 1 0) 1 2) 3)",
	}

	for _, src := range programs {
		t.Run(src, func(t *testing.T) {
			want := evalLast(t, src).Python()
			if got := pythonValue(t, python, src); got != want {
				t.Errorf("python printed %q, evaluator produced %q", got, want)
			}
		})
	}
}
