package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rackpy/internal/ast"
	"rackpy/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every node span is non-empty, points at sf and ends within its content
// 2) every child span is contained in its parent's span
// 3) top-level forms appear in source order and do not overlap
func CheckSpanInvariants(b *ast.Builder, roots []ast.ExprID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	checkSpan := func(id ast.ExprID) (source.Span, error) {
		expr := b.Exprs.Get(id)
		if expr == nil {
			return source.Span{}, fmt.Errorf("nil expr for id=%d", id)
		}
		sp := expr.Span
		if sp.End <= sp.Start {
			return sp, fmt.Errorf("%s: empty span %v", expr.Kind, sp)
		}
		if sp.File != sf.ID {
			return sp, fmt.Errorf("%s: span file mismatch: got=%d want=%d", expr.Kind, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return sp, fmt.Errorf("%s: span end beyond content: %d > %d", expr.Kind, sp.End, lenContent)
		}
		return sp, nil
	}

	var prevEnd uint32
	for i, root := range roots {
		sp, err := checkSpan(root)
		if err != nil {
			return err
		}
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("form %d starts at %d before previous form ends at %d", i, sp.Start, prevEnd)
		}
		prevEnd = sp.End

		var walkErr error
		b.Exprs.Walk(root, func(id ast.ExprID, _ int) bool {
			if walkErr != nil {
				return false
			}
			parent, err := checkSpan(id)
			if err != nil {
				walkErr = err
				return false
			}
			for _, child := range b.Exprs.Children(id) {
				cs, err := checkSpan(child)
				if err != nil {
					walkErr = err
					return false
				}
				if !parent.Contains(cs) {
					walkErr = fmt.Errorf("child span %v is outside parent span %v", cs, parent)
					return false
				}
			}
			return true
		})
		if walkErr != nil {
			return walkErr
		}
	}
	return nil
}
