package digitlist

// Iterator is a position handle into a List. It refers to an element or to
// one of the boundary markers. Two iterators are equal when they refer to the
// same slot of the same list.
//
// An iterator is invalidated when the element it refers to is removed; any
// later use reports ErrStaleIterator.
type Iterator[T any] struct {
	list *List[T]
	idx  int
	gen  uint32
}

// Equal reports whether it and other refer to the same position.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.list == other.list && it.idx == other.idx && it.gen == other.gen
}

// AtBoundary reports whether it is End or REnd.
func (it Iterator[T]) AtBoundary() bool {
	return it.list != nil && (it.idx == headSlot || it.idx == tailSlot)
}

// Get returns the value at the iterator's position.
func (it Iterator[T]) Get() (T, error) {
	var zero T
	if err := it.deref("get"); err != nil {
		return zero, err
	}
	return it.list.nodes[it.idx].value, nil
}

// Set replaces the value at the iterator's position.
func (it Iterator[T]) Set(v T) error {
	if err := it.deref("set"); err != nil {
		return err
	}
	it.list.nodes[it.idx].value = v
	return nil
}

// Next returns an iterator one position toward End. Calling Next on End
// fails with ErrBoundaryTraversal.
func (it Iterator[T]) Next() (Iterator[T], error) {
	if err := it.Inc(); err != nil {
		return Iterator[T]{}, err
	}
	return it, nil
}

// Prev returns an iterator one position toward REnd. Calling Prev on REnd
// fails with ErrBoundaryTraversal.
func (it Iterator[T]) Prev() (Iterator[T], error) {
	if err := it.Dec(); err != nil {
		return Iterator[T]{}, err
	}
	return it, nil
}

// Inc advances it in place. On failure it is left unchanged.
func (it *Iterator[T]) Inc() error {
	if err := it.valid("next"); err != nil {
		return err
	}
	next := it.list.nodes[it.idx].next
	if next == noLink {
		return opErr("next", ErrBoundaryTraversal)
	}
	*it = it.list.iter(next)
	return nil
}

// Dec retreats it in place. On failure it is left unchanged.
func (it *Iterator[T]) Dec() error {
	if err := it.valid("prev"); err != nil {
		return err
	}
	prev := it.list.nodes[it.idx].prev
	if prev == noLink {
		return opErr("prev", ErrBoundaryTraversal)
	}
	*it = it.list.iter(prev)
	return nil
}

func (it Iterator[T]) valid(op string) error {
	if it.list == nil {
		return opErr(op, ErrInvalidPosition)
	}
	return it.list.check(op, it)
}

func (it Iterator[T]) deref(op string) error {
	if err := it.valid(op); err != nil {
		return err
	}
	if it.idx == headSlot || it.idx == tailSlot {
		return opErr(op, ErrInvalidPosition)
	}
	return nil
}
