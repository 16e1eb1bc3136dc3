package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"rackpy/internal/diag"
	"rackpy/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("(define s \"unterminated\n")
	fileID := fs.Add("/home/user/project/src/test.rkt", content, 0)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 10, End: 23},
		"unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.rkt:1:11"},
		{"Relative path", PathModeRelative, "src/test.rkt:1:11"},
		{"Basename only", PathModeBasename, "test.rkt:1:11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "unterminated string literal"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output, got:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettyCaretUsesDisplayWidth(t *testing.T) {
	fs := source.NewFileSet()
	src := "(f \"日本\" x)"
	fileID := fs.AddVirtual("wide.rkt", []byte(src))
	start := uint32(strings.Index(src, "x"))

	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: start, End: start + 1}, "unexpected symbol"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header, source and caret lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[1] != "1 | "+src {
		t.Errorf("source line = %q", lines[1])
	}
	want := "  | " + strings.Repeat(" ", 10) + "^"
	if lines[2] != want {
		t.Errorf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPrettyUnderlinesWholeSpan(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.rkt", []byte("(car)\n(define)\n(+ 1 2)\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynExpectSymbol, source.Span{File: fileID, Start: 7, End: 13}, "expected a name").
		WithNote(source.Span{File: fileID, Start: 6, End: 7}, "form starts here"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true})
	out := buf.String()

	for _, want := range []string{
		"a.rkt:2:2: ERROR SYN2005: expected a name",
		"1 | (car)",
		"2 | (define)",
		"  |  ^~~~~~",
		"3 | (+ 1 2)",
		"= note: form starts here (2:1)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrettyColorToggle(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.rkt", []byte("(+ 1"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnclosedParen, source.Span{File: fileID, Start: 4, End: 4}, "missing )"))

	var plainBuf, colorBuf bytes.Buffer
	Pretty(&plainBuf, bag, fs, PrettyOpts{Color: false})
	Pretty(&colorBuf, bag, fs, PrettyOpts{Color: true})

	if strings.Contains(plainBuf.String(), "\x1b[") {
		t.Errorf("plain output contains escape codes: %q", plainBuf.String())
	}
	if !strings.Contains(colorBuf.String(), "\x1b[") {
		t.Errorf("colored output has no escape codes: %q", colorBuf.String())
	}
}

func TestJSONDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("j.rkt", []byte("(+ 1\n"))
	bag := diag.NewBag(5)
	eof := source.Span{File: fileID, Start: 5, End: 5}
	bag.Add(diag.NewError(diag.SynUnclosedParen, eof, "missing )").
		WithNote(source.Span{File: fileID, Start: 0, End: 1}, "opened here").
		WithFix("insert )", diag.FixEdit{Span: eof, NewText: ")"}))
	bag.Add(diag.NewError(diag.SynTrailingInput, eof, "trailing"))
	bag.Add(diag.New(diag.SevWarning, diag.TrnLetLeak, eof, "leak"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, IncludeFixes: true, Max: 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 || !out.Truncated {
		t.Fatalf("Max not applied: %+v", out)
	}
	if out.Errors != 2 || out.Warnings != 1 {
		t.Errorf("totals = %d errors, %d warnings", out.Errors, out.Warnings)
	}
	d := out.Diagnostics[0]
	if d.Code != "SYN2002" || d.Severity != "ERROR" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if d.Location.File != "j.rkt" || d.Location.Start == nil || *d.Location.Start != (PositionJSON{Line: 2, Col: 1}) {
		t.Errorf("unexpected location %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.Start.Col != 1 {
		t.Errorf("unexpected notes %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].Text != ")" || d.Fixes[0].Edits[0].Location.StartByte != 5 {
		t.Errorf("unexpected fixes %+v", d.Fixes)
	}

	buf.Reset()
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `"start":`) || strings.Contains(buf.String(), `"notes"`) {
		t.Errorf("positions and notes must be opt-in:\n%s", buf.String())
	}
}

func TestPrettyShowsFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("open.rkt", []byte("(+ 1 2))"))
	stray := source.Span{File: fileID, Start: 7, End: 8}

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnexpectedRParen, stray, "unexpected ')'").
		WithFix("remove unmatched ')'", diag.FixEdit{Span: stray}).
		WithFix("insert (", diag.FixEdit{Span: source.Span{File: fileID}, NewText: "("}))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowFixes: true})
	out := buf.String()
	for _, want := range []string{"remove unmatched ')'", "remove at 1:8", `insert "(" at 1:1`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "remove at") {
		t.Errorf("fixes printed without ShowFixes:\n%s", buf.String())
	}
}
