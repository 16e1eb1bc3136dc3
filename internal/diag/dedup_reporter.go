package diag

import "rackpy/internal/source"

// dedupKey ignores notes and fixes: the same message at the same span is
// one finding even when two walks reach it with different context.
type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// DedupReporter forwards each distinct diagnostic to next once.
// Not safe for concurrent use; each pass owns its own.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	key := dedupKey{code: d.Code, sev: d.Severity, span: d.Primary, msg: d.Message}
	if _, dup := r.seen[key]; dup || r.next == nil {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(d)
}
