package ast

import (
	"rackpy/internal/source"
)

type Hints struct{ Exprs uint }

// Builder owns every node of one parse. It is not safe for concurrent mutation;
// a finished tree may be read from several goroutines.
type Builder struct {
	Exprs   *Exprs
	Strings *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 6
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Exprs:   NewExprs(hints.Exprs),
		Strings: strings,
	}
}

// Name returns the interned text, or "" for unknown IDs.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}

// Names resolves a list of interned names in order.
func (b *Builder) Names(ids []source.StringID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.Name(id))
	}
	return out
}
