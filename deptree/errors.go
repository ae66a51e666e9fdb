package deptree

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLayoutContainer is the panic value (wrapped) when layout is
	// requested for a component that does not arrange children.
	ErrNotLayoutContainer = errors.New("only layout containers can need layout")
	ErrInvariant          = errors.New("dependency invariant violated")
)

func compactString(c Component) string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T (%s)", c, c.ID())
}
