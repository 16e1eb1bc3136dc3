package fix

import (
	"bytes"
	"cmp"
	"fmt"
	"maps"
	"os"
	"slices"

	"rackpy/internal/diag"
	"rackpy/internal/source"
)

// plan collects accepted edits per file and writes them out in one go.
type plan struct {
	fs     *source.FileSet
	dryRun bool
	edits  map[source.FileID][]diag.FixEdit
}

func newPlan(fs *source.FileSet, dryRun bool) *plan {
	return &plan{fs: fs, dryRun: dryRun, edits: make(map[source.FileID][]diag.FixEdit)}
}

// accept adds all edits of one fix or none of them; the reason explains a
// refusal.
func (p *plan) accept(edits []diag.FixEdit) string {
	for _, e := range edits {
		if reason := p.check(e); reason != "" {
			return reason
		}
	}
	for _, e := range edits {
		p.edits[e.Span.File] = append(p.edits[e.Span.File], e)
	}
	return ""
}

func (p *plan) check(e diag.FixEdit) string {
	if int(e.Span.File) >= p.fs.Len() {
		return "edit targets an unknown file"
	}
	file := p.fs.Get(e.Span.File)
	switch {
	case !p.dryRun && file.Virtual():
		return "target file is virtual"
	case !e.Span.Within(len(file.Content)):
		return "edit span out of range"
	}
	if slices.ContainsFunc(p.edits[e.Span.File], func(prev diag.FixEdit) bool { return spansConflict(prev.Span, e.Span) }) {
		return fmt.Sprintf("conflicts with previously applied edits in %s", file.Path)
	}
	return ""
}

func (p *plan) displayPath(id source.FileID) string {
	if int(id) >= p.fs.Len() {
		return ""
	}
	return p.fs.Get(id).DisplayPath(source.PathAuto, p.fs.BaseDir())
}

// commit renders every touched file and, unless dry-running, writes it back
// with its original permissions.
func (p *plan) commit() ([]FileChange, error) {
	ids := slices.Sorted(maps.Keys(p.edits))
	changes := make([]FileChange, 0, len(ids))
	for _, id := range ids {
		file := p.fs.Get(id)
		out := splice(file.Content, p.edits[id])
		if !p.dryRun {
			if err := rewrite(file.Path, out); err != nil {
				return changes, err
			}
		}
		changes = append(changes, FileChange{Path: file.Path, EditCount: len(p.edits[id]), Content: out})
	}
	return changes, nil
}

func rewrite(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// splice applies non-overlapping edits front to back into a fresh buffer.
func splice(content []byte, edits []diag.FixEdit) []byte {
	ordered := slices.Clone(edits)
	slices.SortStableFunc(ordered, func(a, b diag.FixEdit) int {
		return cmp.Or(cmp.Compare(a.Span.Start, b.Span.Start), cmp.Compare(a.Span.End, b.Span.End))
	})
	var out bytes.Buffer
	out.Grow(len(content))
	pos := uint32(0)
	for _, e := range ordered {
		out.Write(content[pos:e.Span.Start])
		out.WriteString(e.NewText)
		pos = e.Span.End
	}
	out.Write(content[pos:])
	return out.Bytes()
}

// spansConflict reports whether two half-open spans overlap. Two insertions
// at one offset conflict; an insertion conflicts with a non-empty span that
// strictly contains it.
func spansConflict(a, b source.Span) bool {
	switch {
	case a.Empty() && b.Empty():
		return a.Start == b.Start
	case a.Empty():
		return b.Start < a.Start && a.Start < b.End
	case b.Empty():
		return a.Start < b.Start && b.Start < a.End
	}
	return a.Overlaps(b)
}
