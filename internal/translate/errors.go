package translate

import (
	"fmt"

	"rackpy/internal/ast"
)

// UnsupportedFormError reports a node the translator has no rule for, or an
// ID that does not resolve in the builder. Both mean the tree was not
// produced by the parser.
type UnsupportedFormError struct {
	Kind ast.ExprKind
	ID   ast.ExprID
}

func (e *UnsupportedFormError) Error() string {
	if e.Kind == danglingKind {
		return fmt.Sprintf("unsupported form: expression %d does not exist", e.ID)
	}
	return fmt.Sprintf("unsupported form: %s", e.Kind)
}

// danglingKind marks an UnsupportedFormError raised for an unknown ID.
const danglingKind ast.ExprKind = 255
