package digitlist

import (
	"errors"
	"fmt"
)

// Error kinds reported by List and Iterator operations. Callers match them
// with errors.Is; the concrete error is always an *OpError.
var (
	// ErrAllocation is returned when a node cannot be allocated, which
	// happens when the list has reached its configured node limit.
	ErrAllocation = errors.New("unable to allocate a new node for a list")
	// ErrEmptyContainer is returned by Front and Back on an empty list.
	ErrEmptyContainer = errors.New("unable to access data from an empty list")
	// ErrInvalidPosition is returned when an operation is given a boundary
	// marker or an iterator from another list.
	ErrInvalidPosition = errors.New("unable to use an invalid location in a list")
	// ErrBoundaryTraversal is returned when an iterator is advanced past End
	// or retreated past REnd.
	ErrBoundaryTraversal = errors.New("iterator moved beyond a list boundary")
	// ErrStaleIterator is returned when an iterator refers to an element that
	// has been removed.
	ErrStaleIterator = errors.New("iterator refers to a removed element")
)

// OpError records the operation that failed and the kind of failure.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("digitlist: %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func opErr(op string, err error) error {
	return &OpError{Op: op, Err: err}
}
