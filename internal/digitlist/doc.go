// Package digitlist provides a doubly linked list whose nodes live in an
// index-addressed arena with a free-list.
//
// Positions in the list are described by Iterator values. An iterator refers
// either to an element or to one of the two boundary markers: End (one past
// the back) and REnd (one before the front). Iterators carry the generation of
// the slot they point at, so a handle whose element has been removed is
// reported as stale instead of silently aliasing a recycled slot.
//
// A List is not safe for concurrent use.
package digitlist
