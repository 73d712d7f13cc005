package element

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a selector or index resolved to no element
var ErrNotFound = errors.New("element not found")

// ActionError describes a failed element operation with the context a
// test report needs: the operation name, the element description, and
// the selector that was in effect when the operation failed.
type ActionError struct {
	Op          string
	Description string
	Selector    string
	Err         error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s %q (%s): %v", e.Op, e.Description, e.Selector, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
