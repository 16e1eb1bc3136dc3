package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// FileSet owns every file of one run and resolves spans against them.
// Adding the same path twice yields two IDs; spans keep pointing at the
// version they were lexed from.
type FileSet struct {
	files   []File
	baseDir string // для относительных путей; пусто - рабочая директория
}

func NewFileSet() *FileSet {
	return &FileSet{}
}

func (fset *FileSet) SetBaseDir(dir string) {
	fset.baseDir = dir
}

// BaseDir returns the configured base directory or the working directory.
func (fset *FileSet) BaseDir() string {
	if fset.baseDir != "" {
		return fset.baseDir
	}
	wd, _ := os.Getwd()
	return wd
}

// Add stores content as is; callers that read untrusted bytes go through
// Load or AddVirtual, which normalize first.
func (fset *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fset.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	fset.files = append(fset.files, File{
		ID:      FileID(n),
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return FileID(n)
}

// Load reads path from disk and normalizes it.
func (fset *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := Normalize(content)
	return fset.Add(path, content, flags), nil
}

// AddVirtual adds stdin, a REPL or batch line, or test input.
func (fset *FileSet) AddVirtual(name string, content []byte) FileID {
	content, flags := Normalize(content)
	return fset.Add(name, content, flags|FileVirtual)
}

// Normalize strips a UTF-8 BOM, folds CRLF and rewrites to NFC, reporting
// which of those changed the bytes.
func Normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := cutBOM(content); ok {
		content, flags = rest, flags|FileHadBOM
	}
	if folded, ok := foldCRLF(content); ok {
		content, flags = folded, flags|FileNormalizedCRLF
	}
	if !norm.NFC.IsNormal(content) {
		content, flags = norm.NFC.Bytes(content), flags|FileNormalizedNFC
	}
	return content, flags
}

// Get panics on an ID that did not come from this set.
func (fset *FileSet) Get(id FileID) *File {
	return &fset.files[id]
}

func (fset *FileSet) Len() int {
	return len(fset.files)
}

// Resolve converts a span into 1-based start and end positions.
func (fset *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fset.files[span.File]
	return f.position(span.Start), f.position(span.End)
}
