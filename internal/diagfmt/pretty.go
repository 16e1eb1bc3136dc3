package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rackpy/internal/diag"
	"rackpy/internal/source"
)

type palette struct {
	err, warn, info func(a ...any) string
	code, path      func(a ...any) string
	gutter, caret   func(a ...any) string
	note            func(a ...any) string
}

func plain(a ...any) string { return fmt.Sprint(a...) }

func newPalette(enabled bool) palette {
	if !enabled {
		return palette{plain, plain, plain, plain, plain, plain, plain, plain}
	}
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		path:   mk(color.FgWhite, color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.err(sev.String())
	case diag.SevWarning:
		return p.warn(sev.String())
	default:
		return p.info(sev.String())
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	if !hasFile(fs, d.Primary) {
		fmt.Fprintf(w, "%s %s: %s\n", p.severity(d.Severity), p.code(d.Code.ID()), d.Message)
		return
	}
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path(fmt.Sprintf("%s:%d:%d", formatPath(file, fs, opts.PathMode), start.Line, start.Col)),
		p.severity(d.Severity), p.code(d.Code.ID()), d.Message)

	writeSnippet(w, file, start, end, opts.Context, p)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			loc := ""
			if hasFile(fs, n.Span) {
				ns, _ := fs.Resolve(n.Span)
				loc = " (" + ns.String() + ")"
			}
			fmt.Fprintf(w, "  %s %s%s\n", p.note("= note:"), n.Msg, loc)
		}
	}
	if opts.ShowFixes {
		for _, f := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", p.note("= fix:"), f.Title)
			for _, e := range f.Edits {
				fmt.Fprintf(w, "      %s\n", describeEdit(fs, e))
			}
		}
	}
}

func writeSnippet(w io.Writer, file *source.File, start, end source.LineCol, context int8, p palette) {
	ctx := uint32(0)
	if context > 0 {
		ctx = uint32(context)
	}
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx
	gw := len(strconv.FormatUint(uint64(last), 10))

	for ln := first; ln <= last; ln++ {
		if ln > lineCount(file) && ln != start.Line {
			break
		}
		text := file.Line(ln)
		fmt.Fprintf(w, "%s %s\n", p.gutter(fmt.Sprintf("%*d |", gw, ln)), text)
		if ln == start.Line {
			pad, width := caretGeometry(text, start, end)
			marker := "^" + strings.Repeat("~", width-1)
			fmt.Fprintf(w, "%s %s%s\n", p.gutter(strings.Repeat(" ", gw)+" |"), strings.Repeat(" ", pad), p.caret(marker))
		}
	}
}

// caretGeometry переводит байтовые колонки в экранные.
func caretGeometry(line string, start, end source.LineCol) (pad, width int) {
	from := clampCol(line, start.Col)
	to := len(line)
	if end.Line == start.Line {
		to = clampCol(line, end.Col)
	}
	pad = runewidth.StringWidth(line[:from])
	if to > from {
		width = runewidth.StringWidth(line[from:to])
	}
	if width < 1 {
		width = 1
	}
	return pad, width
}

func clampCol(line string, col uint32) int {
	if col == 0 {
		return 0
	}
	i := int(col - 1)
	if i > len(line) {
		return len(line)
	}
	return i
}

func lineCount(file *source.File) uint32 {
	n := uint32(1)
	for _, off := range file.LineIdx {
		// завершающий перевод строки не открывает новую строку
		if int(off)+1 < len(file.Content) {
			n++
		}
	}
	return n
}

func describeEdit(fs *source.FileSet, e diag.FixEdit) string {
	loc := ""
	if hasFile(fs, e.Span) {
		start, _ := fs.Resolve(e.Span)
		loc = " at " + start.String()
	}
	switch {
	case e.Span.Empty():
		return fmt.Sprintf("insert %q%s", e.NewText, loc)
	case e.NewText == "":
		return "remove" + loc
	default:
		return fmt.Sprintf("replace with %q%s", e.NewText, loc)
	}
}
