package flow

import (
	"errors"
	"fmt"
)

// ErrNoChildren is returned when a child is appended to a leaf element.
var ErrNoChildren = errors.New("this flow element accepts no children")

// ErrNestedRoot is returned when a Root is appended under another element.
var ErrNestedRoot = errors.New("a root cannot be nested in a flow")

// ErrNilChild is returned when a nil node is appended.
var ErrNilChild = errors.New("flow element is nil")

// ErrBlockNotRegistered is returned when a block reference is compiled
// before its block was uploaded and assigned an identifier.
var ErrBlockNotRegistered = errors.New("block has no assigned identifier")

// MissingBlockError identifies the block reference that could not be resolved.
type MissingBlockError struct {
	FlowID      string
	Description string
}

func (e *MissingBlockError) Error() string {
	return fmt.Sprintf("flow element %s: block %q has no assigned identifier (was it uploaded before compiling?)", e.FlowID, e.Description)
}

func (e *MissingBlockError) Unwrap() error {
	return ErrBlockNotRegistered
}
