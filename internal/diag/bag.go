package diag

import (
	"cmp"
	"slices"
)

// Bag collects diagnostics of one translation unit up to a limit.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag holding at most limit diagnostics; limit <= 0 means unlimited.
func NewBag(limit int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, min(max(limit, 8), 64)), max: limit}
}

// Add возвращает false, когда лимит исчерпан и d отброшена.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

// Items is read-only; use Filter or Sort to reshape.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) first(floor Severity) (Diagnostic, bool) {
	i := slices.IndexFunc(b.items, func(d Diagnostic) bool { return d.Severity >= floor })
	if i < 0 {
		return Diagnostic{}, false
	}
	return b.items[i], true
}

func (b *Bag) HasErrors() bool {
	_, ok := b.first(SevError)
	return ok
}

// HasWarnings is true for warnings and errors alike.
func (b *Bag) HasWarnings() bool {
	_, ok := b.first(SevWarning)
	return ok
}

// FirstError returns the earliest reported error, if any.
func (b *Bag) FirstError() (Diagnostic, bool) {
	return b.first(SevError)
}

// Sort orders by position, then errors before warnings, then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		if x.Primary != y.Primary {
			if x.Primary.Less(y.Primary) {
				return -1
			}
			return 1
		}
		return cmp.Or(cmp.Compare(y.Severity, x.Severity), cmp.Compare(x.Code, y.Code))
	})
}

// Filter returns a bag with the diagnostics at or above floor, in order.
func (b *Bag) Filter(floor Severity) *Bag {
	out := &Bag{max: b.max}
	for _, d := range b.items {
		if d.Severity >= floor {
			out.items = append(out.items, d)
		}
	}
	return out
}
