package source

import (
	"fmt"
	"strings"
)

type (
	// FileID indexes FileSet.files; IDs are dense and never reused.
	FileID uint32
	// FileFlags records where a file came from and what Normalize changed.
	FileFlags uint8
)

const (
	FileVirtual        FileFlags = 1 << iota // stdin, REPL or batch line, test input
	FileHadBOM                               // UTF-8 BOM stripped
	FileNormalizedCRLF                       // \r\n folded to \n
	FileNormalizedNFC                        // content rewritten to NFC
)

var fileFlagNames = [...]struct {
	flag FileFlags
	name string
}{
	{FileVirtual, "virtual"},
	{FileHadBOM, "bom"},
	{FileNormalizedCRLF, "crlf"},
	{FileNormalizedNFC, "nfc"},
}

// String lists the set flags as "virtual|crlf"; "-" when none are set.
func (f FileFlags) String() string {
	var parts []string
	for _, fn := range fileFlagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "|")
}

// File is one loaded source: normalized content plus its line index and hash.
// Spans and cache keys always refer to the normalized bytes.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // смещения '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// Virtual reports whether the file has no backing path on disk.
func (f *File) Virtual() bool {
	return f.Flags&FileVirtual != 0
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}
