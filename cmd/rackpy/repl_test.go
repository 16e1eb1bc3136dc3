package main

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestREPLSession(t *testing.T) {
	dir := t.TempDir()
	linesPath := filepath.Join(dir, "lines.rkt")
	writeTestFile(t, linesPath, "(define x 1)\n\n(+ 1\n")
	writeTestFile(t, filepath.Join(dir, "notes.txt"), "")

	input := strings.Join([]string{
		"(define x (+ 1 2))",
		"",
		"files",
		filepath.Join(dir, "missing.RKT"),
		linesPath,
		"(car)",
		"STOP",
		"(+ 1 1)",
	}, "\n") + "\n"

	var out strings.Builder
	session := &replSession{out: &out, dir: dir}
	if err := session.run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()

	for _, want := range []string{
		"x = (1 + 2)\n",
		"Available Files to Test:\n" + linesPath + "\n",
		"File not found.\n",
		"Running line: (define x 1)\nx = 1\n\nRunning line: (+ 1\nError running line: syntax error at line 1",
		"Error: syntax error",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "notes.txt") {
		t.Errorf("FILES must list only source files:\n%s", got)
	}
	if strings.Contains(got, "(1 + 1)") {
		t.Errorf("input after STOP was processed:\n%s", got)
	}
}

func TestREPLShowTree(t *testing.T) {
	var out strings.Builder
	session := &replSession{out: &out, dir: t.TempDir(), showTree: true}
	if err := session.run(context.Background(), strings.NewReader("(define x (+ 1 2))\n")); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	wantTree := "Parsed Racket code:\nstart\n  Define x\n    Operation +\n      Atom 1\n      Atom 2\n"
	if !strings.HasPrefix(got, wantTree) {
		t.Errorf("tree missing:\n%s", got)
	}
	if !strings.HasSuffix(got, "\nTranslated Python code:\nx = (1 + 2)\n") {
		t.Errorf("translation missing:\n%s", got)
	}
}

func TestREPLOneFormPerLine(t *testing.T) {
	var out strings.Builder
	session := &replSession{out: &out, dir: t.TempDir()}
	if err := session.run(context.Background(), strings.NewReader("1 2\n(car x) (cdr x)\n42\n")); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"Error: syntax error at line 1, column 3",
		"Error: syntax error at line 1, column 9",
		"42\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestREPLPromptAndEOF(t *testing.T) {
	var out strings.Builder
	session := &replSession{out: &out, dir: t.TempDir(), prompt: "> "}
	if err := session.run(context.Background(), strings.NewReader("(not 1)")); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := out.String(), "> not 1\n> \n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestREPLCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pr, pw := io.Pipe()
	defer pw.Close()

	var out strings.Builder
	session := &replSession{out: &out, dir: t.TempDir()}
	if err := session.run(ctx, pr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "\nExiting...\n" {
		t.Errorf("output = %q", out.String())
	}
}
