package digitlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, l *List[int], values ...int) {
	t.Helper()
	for _, v := range values {
		require.NoError(t, l.PushBack(v))
	}
}

func TestNew_Empty(t *testing.T) {
	t.Parallel()
	l := New[int]()

	assert.True(t, l.Empty())
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.Begin().Equal(l.End()))
	assert.True(t, l.RBegin().Equal(l.REnd()))
	assert.Empty(t, l.Values())
}

func TestPushBackPushFront(t *testing.T) {
	t.Parallel()
	l := New[int]()

	require.NoError(t, l.PushBack(2))
	require.NoError(t, l.PushBack(3))
	require.NoError(t, l.PushFront(1))

	assert.False(t, l.Empty())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []int{1, 2, 3}, l.Values())

	front, err := l.Front()
	require.NoError(t, err)
	assert.Equal(t, 1, front)

	back, err := l.Back()
	require.NoError(t, err)
	assert.Equal(t, 3, back)
}

func TestFrontBack_EmptyContainer(t *testing.T) {
	t.Parallel()
	l := New[int]()

	_, err := l.Front()
	assert.ErrorIs(t, err, ErrEmptyContainer)

	_, err = l.Back()
	assert.ErrorIs(t, err, ErrEmptyContainer)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "back", opErr.Op)
}

func TestForwardAndBackwardTraversal(t *testing.T) {
	t.Parallel()
	l := New[int]()
	fill(t, l, 10, 20, 30)

	var forward []int
	for it := l.Begin(); !it.Equal(l.End()); require.NoError(t, it.Inc()) {
		v, err := it.Get()
		require.NoError(t, err)
		forward = append(forward, v)
	}
	assert.Equal(t, []int{10, 20, 30}, forward)

	var backward []int
	for it := l.RBegin(); !it.Equal(l.REnd()); require.NoError(t, it.Dec()) {
		v, err := it.Get()
		require.NoError(t, err)
		backward = append(backward, v)
	}
	assert.Equal(t, []int{30, 20, 10}, backward)

	var seq []int
	for v := range l.Backward() {
		seq = append(seq, v)
	}
	assert.Equal(t, backward, seq)
}

func TestIterator_BoundaryTraversal(t *testing.T) {
	t.Parallel()
	l := New[int]()
	fill(t, l, 1)

	end := l.End()
	_, err := end.Next()
	assert.ErrorIs(t, err, ErrBoundaryTraversal)

	rend := l.REnd()
	_, err = rend.Prev()
	assert.ErrorIs(t, err, ErrBoundaryTraversal)

	// Failed moves leave the handle where it was.
	assert.Error(t, end.Inc())
	assert.True(t, end.Equal(l.End()))

	// Stepping off a boundary toward the elements is allowed.
	back, err := end.Prev()
	require.NoError(t, err)
	assert.True(t, back.Equal(l.RBegin()))

	front, err := rend.Next()
	require.NoError(t, err)
	assert.True(t, front.Equal(l.Begin()))
}

func TestIterator_DerefBoundary(t *testing.T) {
	t.Parallel()
	l := New[int]()
	fill(t, l, 1, 2)

	_, err := l.End().Get()
	assert.ErrorIs(t, err, ErrInvalidPosition)
	assert.ErrorIs(t, l.REnd().Set(5), ErrInvalidPosition)
	assert.True(t, l.End().AtBoundary())
	assert.True(t, l.REnd().AtBoundary())
	assert.False(t, l.Begin().AtBoundary())

	var zero Iterator[int]
	_, err = zero.Get()
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestIterator_SetMutatesElement(t *testing.T) {
	t.Parallel()
	l := New[int]()
	fill(t, l, 1, 2, 3)

	it, err := l.Begin().Next()
	require.NoError(t, err)
	require.NoError(t, it.Set(42))

	assert.Equal(t, []int{1, 42, 3}, l.Values())
}

func TestInsert(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		pos    func(l *List[int]) Iterator[int]
		expect []int
	}{
		{"before begin", func(l *List[int]) Iterator[int] { return l.Begin() }, []int{9, 1, 2}},
		{"at end appends", func(l *List[int]) Iterator[int] { return l.End() }, []int{1, 2, 9}},
		{"in the middle", func(l *List[int]) Iterator[int] { return l.RBegin() }, []int{1, 9, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := New[int]()
			fill(t, l, 1, 2)

			it, err := l.Insert(tt.pos(l), 9)
			require.NoError(t, err)

			v, err := it.Get()
			require.NoError(t, err)
			assert.Equal(t, 9, v)
			assert.Equal(t, tt.expect, l.Values())
			assert.Equal(t, 3, l.Len())
		})
	}
}

func TestInsert_BeforeREndRejected(t *testing.T) {
	t.Parallel()
	l := New[int]()
	fill(t, l, 1)

	_, err := l.Insert(l.REnd(), 0)
	assert.ErrorIs(t, err, ErrInvalidPosition)
	assert.Equal(t, []int{1}, l.Values())
}

func TestRemove(t *testing.T) {
	t.Parallel()
	l := New[int]()
	fill(t, l, 1, 2, 3)

	mid, err := l.Begin().Next()
	require.NoError(t, err)

	next, err := l.Remove(mid)
	require.NoError(t, err)
	v, err := next.Get()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, []int{1, 3}, l.Values())

	last, err := l.Remove(l.RBegin())
	require.NoError(t, err)
	assert.True(t, last.Equal(l.End()))
	assert.Equal(t, []int{1}, l.Values())
}

func TestRemove_EndIsInvalidPosition(t *testing.T) {
	t.Parallel()
	l := New[int]()
	fill(t, l, 1, 2)

	_, err := l.Remove(l.End())
	assert.ErrorIs(t, err, ErrInvalidPosition)
	assert.Equal(t, 2, l.Len())

	_, err = l.Remove(l.REnd())
	assert.ErrorIs(t, err, ErrInvalidPosition)
	assert.Equal(t, []int{1, 2}, l.Values())
}

func TestRemove_StaleIterator(t *testing.T) {
	t.Parallel()
	l := New[int]()
	fill(t, l, 1, 2)

	first := l.Begin()
	_, err := l.Remove(first)
	require.NoError(t, err)

	_, err = first.Get()
	assert.ErrorIs(t, err, ErrStaleIterator)
	_, err = l.Remove(first)
	assert.ErrorIs(t, err, ErrStaleIterator)

	// The freed slot is recycled; the old handle must not alias the new element.
	require.NoError(t, l.PushFront(7))
	assert.False(t, first.Equal(l.Begin()))
	_, err = first.Get()
	assert.ErrorIs(t, err, ErrStaleIterator)
}

func TestForeignIterator(t *testing.T) {
	t.Parallel()
	a := New[int]()
	b := New[int]()
	fill(t, a, 1)
	fill(t, b, 1)

	_, err := a.Remove(b.Begin())
	assert.ErrorIs(t, err, ErrInvalidPosition)
	assert.Equal(t, 1, b.Len())
	assert.False(t, a.Begin().Equal(b.Begin()))
}

func TestMaxNodes_Allocation(t *testing.T) {
	t.Parallel()
	l := New[int](WithMaxNodes(2))
	fill(t, l, 1, 2)

	assert.ErrorIs(t, l.PushBack(3), ErrAllocation)
	assert.ErrorIs(t, l.PushFront(0), ErrAllocation)
	_, err := l.Insert(l.Begin(), 0)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.Equal(t, []int{1, 2}, l.Values())

	_, err = l.Remove(l.Begin())
	require.NoError(t, err)
	assert.NoError(t, l.PushBack(3))
	assert.Equal(t, 2, l.MaxNodes())
}

func TestClone_Isolation(t *testing.T) {
	t.Parallel()
	orig := New[int]()
	fill(t, orig, 1, 2, 3)

	cp := orig.Clone()
	require.NoError(t, cp.Begin().Set(100))
	require.NoError(t, cp.PushBack(4))

	assert.Equal(t, []int{1, 2, 3}, orig.Values())
	assert.Equal(t, []int{100, 2, 3, 4}, cp.Values())
}

func TestAssign(t *testing.T) {
	t.Parallel()
	src := New[int]()
	fill(t, src, 5, 6)
	dst := New[int]()
	fill(t, dst, 1, 2, 3, 4)

	stale := dst.Begin()
	require.NoError(t, dst.Assign(src))
	assert.Equal(t, []int{5, 6}, dst.Values())

	_, err := stale.Get()
	assert.ErrorIs(t, err, ErrStaleIterator)

	require.NoError(t, src.Begin().Set(0))
	assert.Equal(t, []int{5, 6}, dst.Values())
}

func TestAssign_Self(t *testing.T) {
	t.Parallel()
	l := New[int]()
	fill(t, l, 1, 2, 3)
	it := l.Begin()

	require.NoError(t, l.Assign(l))
	assert.Equal(t, []int{1, 2, 3}, l.Values())

	// Handles survive a self-assignment since nothing was cleared.
	v, err := it.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestAssign_OverLimitLeavesDestination(t *testing.T) {
	t.Parallel()
	src := New[int]()
	fill(t, src, 1, 2, 3)
	dst := New[int](WithMaxNodes(2))
	fill(t, dst, 9)

	assert.ErrorIs(t, dst.Assign(src), ErrAllocation)
	assert.Equal(t, []int{9}, dst.Values())
}

func TestClear_ReusesArena(t *testing.T) {
	t.Parallel()
	l := New[int]()
	fill(t, l, 1, 2, 3)
	slots := len(l.nodes)

	l.Clear()
	assert.True(t, l.Empty())
	assert.True(t, l.Begin().Equal(l.End()))

	fill(t, l, 4, 5, 6)
	assert.Equal(t, slots, len(l.nodes))
	assert.Equal(t, []int{4, 5, 6}, l.Values())
}

func TestChainInvariant(t *testing.T) {
	t.Parallel()
	l := New[int]()
	for i := range 50 {
		if i%3 == 0 {
			require.NoError(t, l.PushFront(i))
		} else {
			require.NoError(t, l.PushBack(i))
		}
		if i%7 == 0 {
			_, err := l.Remove(l.Begin())
			require.NoError(t, err)
		}
	}

	count := 0
	for it := l.Begin(); !it.Equal(l.End()); require.NoError(t, it.Inc()) {
		count++
		require.LessOrEqual(t, count, l.Len(), "forward chain longer than Len")
	}
	assert.Equal(t, l.Len(), count)

	count = 0
	for it := l.RBegin(); !it.Equal(l.REnd()); require.NoError(t, it.Dec()) {
		count++
		require.LessOrEqual(t, count, l.Len(), "backward chain longer than Len")
	}
	assert.Equal(t, l.Len(), count)
}

func TestOpError_Message(t *testing.T) {
	t.Parallel()
	l := New[string]()
	_, err := l.Front()
	assert.EqualError(t, err, "digitlist: front: unable to access data from an empty list")
}
