package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("repl", []byte("(define x 1)\n(+ x 2)\n"))
	f := fs.Get(id)

	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag, got %b", f.Flags)
	}
	if len(f.LineIdx) != 2 {
		t.Fatalf("expected 2 newline offsets, got %v", f.LineIdx)
	}
	if got := f.Line(2); got != "(+ x 2)" {
		t.Fatalf("Line(2) = %q", got)
	}
	if got := f.Line(9); got != "" {
		t.Fatalf("Line(9) = %q, want empty", got)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.rkt", []byte("(+ 1\n  2)"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{3, LineCol{Line: 1, Col: 4}},
		{4, LineCol{Line: 1, Col: 5}}, // сам '\n'
		{5, LineCol{Line: 2, Col: 1}},
		{7, LineCol{Line: 2, Col: 3}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestCRLFNormalization(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("crlf.rkt", []byte("(car x)\r\n(cdr x)\r\n"))
	f := fs.Get(id)
	if string(f.Content) != "(car x)\n(cdr x)\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected FileNormalizedCRLF flag")
	}
}

func TestBOMRemoval(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("bom.rkt", append([]byte{0xEF, 0xBB, 0xBF}, []byte("x")...))
	f := fs.Get(id)
	if string(f.Content) != "x" || f.Flags&FileHadBOM == 0 {
		t.Fatalf("BOM not removed: %q flags=%b", f.Content, f.Flags)
	}
}

func TestNFCNormalization(t *testing.T) {
	// "é" как e + combining acute
	decomposed := []byte("\"e\u0301\"")
	content, flags := Normalize(decomposed)
	if string(content) != "\"\u00e9\"" {
		t.Fatalf("expected composed form, got %q", content)
	}
	if flags&FileNormalizedNFC == 0 {
		t.Fatalf("expected FileNormalizedNFC flag")
	}
}

func TestFileVersioning(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("a.rkt", []byte("1"))
	second := fs.AddVirtual("a.rkt", []byte("2"))
	if first == second {
		t.Fatalf("expected new id for new version")
	}
	if string(fs.Get(first).Content) != "1" || string(fs.Get(second).Content) != "2" {
		t.Fatalf("versions must keep their own content")
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d", fs.Len())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.rkt")
	if err := os.WriteFile(path, []byte("(list 1 2)\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "(list 1 2)\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileVirtual != 0 {
		t.Fatalf("loaded file must not be virtual")
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.rkt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")
	inside := filepath.Join(base, "sub", "x.rkt")
	outside := filepath.Join(tmp, "other", "y.rkt")

	got, err := relativeTo(inside, base)
	if err != nil || got != "sub/x.rkt" {
		t.Fatalf("relativeTo(inside) = %q, %v", got, err)
	}
	got, err = relativeTo(outside, base)
	if err != nil {
		t.Fatalf("relativeTo(outside): %v", err)
	}
	if got != normalizePath(outside) {
		t.Fatalf("expected absolute fallback %q, got %q", normalizePath(outside), got)
	}
}

func TestFileFlagsString(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("crlf.rkt", []byte("\xef\xbb\xbf(a)\r\n")))
	if got := f.Flags.String(); got != "virtual|bom|crlf" {
		t.Errorf("Flags = %q", got)
	}
	if !f.Virtual() {
		t.Error("AddVirtual must mark the file virtual")
	}
	if got := FileFlags(0).String(); got != "-" {
		t.Errorf("empty flags = %q", got)
	}
	if got := (LineCol{Line: 3, Col: 7}).String(); got != "3:7" {
		t.Errorf("LineCol = %q", got)
	}
}

func TestDisplayPath(t *testing.T) {
	long := "/very/long/absolute/directory/name/for/testing/prog.rkt"
	f := &File{Path: "/home/user/project/src/x.rkt"}
	tests := []struct {
		style PathStyle
		file  *File
		want  string
	}{
		{PathAbsolute, f, "/home/user/project/src/x.rkt"},
		{PathRelative, f, "src/x.rkt"},
		{PathBasename, f, "x.rkt"},
		{PathAuto, f, "/home/user/project/src/x.rkt"},
		{PathAuto, &File{Path: long}, "prog.rkt"},
		{PathAuto, &File{Path: "rel/y.rkt"}, "rel/y.rkt"},
	}
	for _, tt := range tests {
		if got := tt.file.DisplayPath(tt.style, "/home/user/project"); got != tt.want {
			t.Errorf("DisplayPath(%v, %q) = %q, want %q", tt.style, tt.file.Path, got, tt.want)
		}
	}
}

func TestParsePathStyle(t *testing.T) {
	for in, want := range map[string]PathStyle{
		"absolute": PathAbsolute,
		"ABS":      PathAbsolute,
		"rel":      PathRelative,
		"basename": PathBasename,
		"base":     PathBasename,
		"":         PathAuto,
		"weird":    PathAuto,
	} {
		if got := ParsePathStyle(in); got != want {
			t.Errorf("ParsePathStyle(%q) = %v, want %v", in, got, want)
		}
	}
}
