package diag

import (
	"rackpy/internal/source"
)

// Note points at a related place, e.g. where an unclosed list opened.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit replaces Span with NewText; an empty Span inserts, empty NewText deletes.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is one suggestion. `rackpy fix` applies its edits together or not at all.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Replace is a single-edit fix rewriting sp to text.
func Replace(title string, sp source.Span, text string) Fix {
	return Fix{Title: title, Edits: []FixEdit{{Span: sp, NewText: text}}}
}

// Insert puts text right after sp.
func Insert(title string, sp source.Span, text string) Fix {
	return Replace(title, sp.EndPoint(), text)
}

// Delete removes sp.
func Delete(title string, sp source.Span) Fix {
	return Replace(title, sp, "")
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}

// Suggest attaches a ready-made fix such as one from Insert or Delete.
func (d Diagnostic) Suggest(f Fix) Diagnostic {
	d.Fixes = append(d.Fixes, f)
	return d
}
