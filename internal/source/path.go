package source

import (
	"path/filepath"
	"strings"
)

// PathStyle selects how DisplayPath renders a file path in diagnostics.
type PathStyle uint8

const (
	PathAuto PathStyle = iota // short paths as given, long absolute ones as basename
	PathAbsolute
	PathRelative // relative to FileSet.BaseDir, absolute when outside it
	PathBasename
)

var pathStyleNames = [...]string{
	PathAuto:     "auto",
	PathAbsolute: "absolute",
	PathRelative: "relative",
	PathBasename: "basename",
}

func (s PathStyle) String() string {
	if int(s) < len(pathStyleNames) {
		return pathStyleNames[s]
	}
	return "auto"
}

var pathStyleAliases = map[string]PathStyle{
	"abs":  PathAbsolute,
	"rel":  PathRelative,
	"base": PathBasename,
}

// ParsePathStyle accepts full names and abs|rel|base; anything else is auto.
func ParsePathStyle(s string) PathStyle {
	s = strings.ToLower(strings.TrimSpace(s))
	if style, ok := pathStyleAliases[s]; ok {
		return style
	}
	for style, name := range pathStyleNames {
		if s == name {
			return PathStyle(style)
		}
	}
	return PathAuto
}

// DisplayPath renders f.Path in style; errors fall back to f.Path.
func (f *File) DisplayPath(style PathStyle, baseDir string) string {
	switch style {
	case PathAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return normalizePath(abs)
		}
	case PathRelative:
		if rel, err := relativeTo(f.Path, baseDir); err == nil {
			return rel
		}
	case PathBasename:
		return filepath.Base(f.Path)
	default:
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

// relativeTo returns path relative to baseDir, or its absolute form when
// path lies outside baseDir.
func relativeTo(path, baseDir string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absPath), nil
	}
	return normalizePath(rel), nil
}

// normalizePath gives one spelling across platforms.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
