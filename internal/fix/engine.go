package fix

import (
	"errors"
	"fmt"
	"slices"

	"rackpy/internal/diag"
	"rackpy/internal/source"
)

// ErrNoFixes is returned when nothing was applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode picks which candidates Apply tries.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota // first fix in source order
	ApplyModeAll                   // every fix that does not conflict
	ApplyModeID                    // the fix with ApplyOptions.TargetID
)

type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	DryRun   bool // не писать файлы; новый текст в FileChange.Content
}

type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int
}

type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange is the new content of one file and how many edits built it.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

// Merge appends other to r; nil is ignored.
func (r *ApplyResult) Merge(other *ApplyResult) {
	if other == nil {
		return
	}
	r.Applied = append(r.Applied, other.Applied...)
	r.Skipped = append(r.Skipped, other.Skipped...)
	r.FileChanges = append(r.FileChanges, other.FileChanges...)
}

// Empty reports whether nothing was applied or skipped.
func (r *ApplyResult) Empty() bool {
	return len(r.Applied) == 0 && len(r.Skipped) == 0
}

type candidate struct {
	diag diag.Diagnostic
	fix  diag.Fix
	id   string
}

// fixID is stable for a given parse: code, file, start offset and the fix
// index within its diagnostic, e.g. "SYN2002-0-11-0".
func fixID(d diag.Diagnostic, idx int) string {
	return fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
}

// Apply selects fixes from diagnostics according to opts and applies them.
// Edit spans refer to the content held in fs; files are rewritten unless
// opts.DryRun is set.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	res := &ApplyResult{}
	if fs == nil {
		return res, errors.New("fix: FileSet is nil")
	}

	cands := collect(diagnostics, res)
	if len(cands) == 0 {
		return res, ErrNoFixes
	}
	cands = choose(cands, opts, res)
	if len(cands) == 0 {
		return res, ErrNoFixes
	}

	p := newPlan(fs, opts.DryRun)
	for _, c := range cands {
		if reason := p.accept(c.fix.Edits); reason != "" {
			res.Skipped = append(res.Skipped, SkippedFix{ID: c.id, Title: c.fix.Title, Reason: reason})
			continue
		}
		res.Applied = append(res.Applied, AppliedFix{
			ID:          c.id,
			Title:       c.fix.Title,
			Code:        c.diag.Code,
			Message:     c.diag.Message,
			PrimaryPath: p.displayPath(c.diag.Primary.File),
			EditCount:   len(c.fix.Edits),
		})
	}
	if len(res.Applied) == 0 {
		return res, ErrNoFixes
	}
	changes, err := p.commit()
	res.FileChanges = changes
	return res, err
}

// collect returns fixes with edits in source order; fixes without edits go
// straight to res.Skipped.
func collect(diagnostics []diag.Diagnostic, res *ApplyResult) []candidate {
	var cands []candidate
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			id := fixID(d, idx)
			if len(f.Edits) == 0 {
				res.Skipped = append(res.Skipped, SkippedFix{ID: id, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			cands = append(cands, candidate{diag: d, fix: f, id: id})
		}
	}
	slices.SortStableFunc(cands, func(a, b candidate) int {
		pa, pb := a.diag.Primary, b.diag.Primary
		switch {
		case pa == pb:
			return 0
		case pa.Less(pb):
			return -1
		}
		return 1
	})
	return cands
}

func choose(cands []candidate, opts ApplyOptions, res *ApplyResult) []candidate {
	switch opts.Mode {
	case ApplyModeAll:
		return cands
	case ApplyModeOnce:
		return cands[:1]
	case ApplyModeID:
		if i := slices.IndexFunc(cands, func(c candidate) bool { return c.id == opts.TargetID }); i >= 0 {
			return cands[i : i+1]
		}
		res.Skipped = append(res.Skipped, SkippedFix{ID: opts.TargetID, Reason: "fix id not found"})
	}
	return nil
}
