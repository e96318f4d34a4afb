package digitlist

import "iter"

const (
	// noLink marks the outward link of a boundary slot.
	noLink = -1
	// headSlot is the boundary before the front (REnd).
	headSlot = 0
	// tailSlot is the boundary past the back (End).
	tailSlot = 1
)

type node[T any] struct {
	value T
	prev  int
	next  int
	gen   uint32
	live  bool
}

// List is a doubly linked list of T values. The zero value is not usable;
// construct lists with New.
type List[T any] struct {
	nodes    []node[T]
	free     []int
	size     int
	maxNodes int
}

// Option configures a List.
type Option func(*options)

type options struct {
	maxNodes int
	capacity int
}

// WithMaxNodes limits the number of elements the list may hold. Insertions
// beyond the limit fail with ErrAllocation. Zero means unbounded.
func WithMaxNodes(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxNodes = n
		}
	}
}

// WithCapacity pre-sizes the node arena.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// New returns an empty list.
func New[T any](opts ...Option) *List[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	l := &List[T]{maxNodes: o.maxNodes}
	l.nodes = make([]node[T], 2, o.capacity+2)
	l.reset()
	return l
}

// reset links the two boundary slots to each other.
func (l *List[T]) reset() {
	l.nodes[headSlot] = node[T]{prev: noLink, next: tailSlot, live: true}
	l.nodes[tailSlot] = node[T]{prev: headSlot, next: noLink, live: true}
	l.size = 0
}

// Empty reports whether the list holds no elements.
func (l *List[T]) Empty() bool { return l.size == 0 }

// Len returns the number of elements in the list.
func (l *List[T]) Len() int { return l.size }

// MaxNodes returns the configured element limit, or zero when unbounded.
func (l *List[T]) MaxNodes() int { return l.maxNodes }

// Begin returns an iterator to the first element, or End when empty.
func (l *List[T]) Begin() Iterator[T] { return l.iter(l.nodes[headSlot].next) }

// End returns the boundary iterator one past the last element.
func (l *List[T]) End() Iterator[T] { return l.iter(tailSlot) }

// RBegin returns an iterator to the last element, or REnd when empty.
func (l *List[T]) RBegin() Iterator[T] { return l.iter(l.nodes[tailSlot].prev) }

// REnd returns the boundary iterator one before the first element.
func (l *List[T]) REnd() Iterator[T] { return l.iter(headSlot) }

func (l *List[T]) iter(idx int) Iterator[T] {
	return Iterator[T]{list: l, idx: idx, gen: l.nodes[idx].gen}
}

// Front returns the first value.
func (l *List[T]) Front() (T, error) {
	if l.size == 0 {
		var zero T
		return zero, opErr("front", ErrEmptyContainer)
	}
	return l.nodes[l.nodes[headSlot].next].value, nil
}

// Back returns the last value.
func (l *List[T]) Back() (T, error) {
	if l.size == 0 {
		var zero T
		return zero, opErr("back", ErrEmptyContainer)
	}
	return l.nodes[l.nodes[tailSlot].prev].value, nil
}

// PushBack appends v after the last element.
func (l *List[T]) PushBack(v T) error {
	if _, err := l.insertBefore("push back", tailSlot, v); err != nil {
		return err
	}
	return nil
}

// PushFront inserts v before the first element.
func (l *List[T]) PushFront(v T) error {
	if _, err := l.insertBefore("push front", l.nodes[headSlot].next, v); err != nil {
		return err
	}
	return nil
}

// Insert places v immediately before pos and returns an iterator to the new
// element. pos may be End, which appends.
func (l *List[T]) Insert(pos Iterator[T], v T) (Iterator[T], error) {
	if err := l.check("insert", pos); err != nil {
		return Iterator[T]{}, err
	}
	if pos.idx == headSlot {
		return Iterator[T]{}, opErr("insert", ErrInvalidPosition)
	}
	idx, err := l.insertBefore("insert", pos.idx, v)
	if err != nil {
		return Iterator[T]{}, err
	}
	return l.iter(idx), nil
}

// Remove unlinks the element at pos and returns an iterator to the element
// that followed it (End when pos was the last element). Boundary iterators are
// rejected with ErrInvalidPosition and leave the list unchanged.
func (l *List[T]) Remove(pos Iterator[T]) (Iterator[T], error) {
	if err := l.check("remove", pos); err != nil {
		return Iterator[T]{}, err
	}
	if pos.idx == headSlot || pos.idx == tailSlot {
		return Iterator[T]{}, opErr("remove", ErrInvalidPosition)
	}
	next := l.nodes[pos.idx].next
	l.unlink(pos.idx)
	return l.iter(next), nil
}

// Clear removes every element. Iterators into the list become stale; the
// arena keeps its capacity for reuse.
func (l *List[T]) Clear() {
	for idx := l.nodes[headSlot].next; idx != tailSlot; {
		next := l.nodes[idx].next
		l.release(idx)
		idx = next
	}
	l.reset()
}

// Clone returns an independent copy holding the same sequence of values.
func (l *List[T]) Clone() *List[T] {
	c := New[T](WithMaxNodes(l.maxNodes), WithCapacity(l.size))
	for idx := l.nodes[headSlot].next; idx != tailSlot; idx = l.nodes[idx].next {
		c.link(c.alloc(l.nodes[idx].value), tailSlot)
	}
	return c
}

// Assign replaces the contents of l with a copy of src. Assigning a list to
// itself does nothing. If src holds more elements than l may hold, l is left
// unchanged and ErrAllocation is returned.
func (l *List[T]) Assign(src *List[T]) error {
	if l == src {
		return nil
	}
	if l.maxNodes > 0 && src.size > l.maxNodes {
		return opErr("assign", ErrAllocation)
	}
	l.Clear()
	for idx := src.nodes[headSlot].next; idx != tailSlot; idx = src.nodes[idx].next {
		l.link(l.alloc(src.nodes[idx].value), tailSlot)
	}
	return nil
}

// Values returns the elements front to back.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.size)
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}

// All iterates the values front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for idx := l.nodes[headSlot].next; idx != tailSlot; idx = l.nodes[idx].next {
			if !yield(l.nodes[idx].value) {
				return
			}
		}
	}
}

// Backward iterates the values back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for idx := l.nodes[tailSlot].prev; idx != headSlot; idx = l.nodes[idx].prev {
			if !yield(l.nodes[idx].value) {
				return
			}
		}
	}
}

// check validates that it is a live position in l.
func (l *List[T]) check(op string, it Iterator[T]) error {
	if it.list != l {
		return opErr(op, ErrInvalidPosition)
	}
	if it.idx < 0 || it.idx >= len(l.nodes) {
		return opErr(op, ErrInvalidPosition)
	}
	n := &l.nodes[it.idx]
	if !n.live || n.gen != it.gen {
		return opErr(op, ErrStaleIterator)
	}
	return nil
}

func (l *List[T]) insertBefore(op string, at int, v T) (int, error) {
	if l.maxNodes > 0 && l.size >= l.maxNodes {
		return 0, opErr(op, ErrAllocation)
	}
	idx := l.alloc(v)
	l.link(idx, at)
	return idx, nil
}

// alloc takes a slot from the free-list or grows the arena.
func (l *List[T]) alloc(v T) int {
	if n := len(l.free); n > 0 {
		idx := l.free[n-1]
		l.free = l.free[:n-1]
		slot := &l.nodes[idx]
		slot.value = v
		slot.live = true
		return idx
	}
	l.nodes = append(l.nodes, node[T]{value: v, live: true})
	return len(l.nodes) - 1
}

// link splices slot idx in front of slot at.
func (l *List[T]) link(idx, at int) {
	prev := l.nodes[at].prev
	l.nodes[idx].prev = prev
	l.nodes[idx].next = at
	l.nodes[prev].next = idx
	l.nodes[at].prev = idx
	l.size++
}

func (l *List[T]) unlink(idx int) {
	n := l.nodes[idx]
	l.nodes[n.prev].next = n.next
	l.nodes[n.next].prev = n.prev
	l.release(idx)
	l.size--
}

// release returns a slot to the free-list and bumps its generation so that
// outstanding iterators are detected as stale.
func (l *List[T]) release(idx int) {
	var zero T
	slot := &l.nodes[idx]
	slot.value = zero
	slot.prev, slot.next = noLink, noLink
	slot.live = false
	slot.gen++
	l.free = append(l.free, idx)
}
