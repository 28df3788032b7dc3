package llist

import "sync/atomic"

// List is a lock-free, intrusive, doubly linked list over a fixed
// backing slice of elements. Every element's embedded [Node] is
// addressed by its slot index in items, never by pointer: this keeps
// the list's own link words stable under a slice whose backing array
// a garbage collector is free to move, and lets a caller reuse a slot
// once its node observably finalizes to [NullLink].
//
// A List does not grow: the backing slice is fixed for the lifetime of
// the List, and callers are responsible for not presenting an index
// that is already live when inserting.
type List[T any] struct {
	items []T
	node  func(*T) *Node

	head atomic.Uint32
	tail atomic.Uint32
	size atomic.Int64
}

// New constructs a List over items, using node to locate each
// element's embedded [Node]. All slots start out logically absent;
// callers populate the list with [List.PushFront], [List.PushBack],
// [List.InsertAfter] or [List.InsertBefore].
//
// New panics if items is larger than [MaxSlots], since slot indices
// must fit in the link word's 20-bit field.
func New[T any](items []T, node func(*T) *Node) *List[T] {
	if len(items) > MaxSlots {
		panic("llist: region exceeds MaxSlots")
	}

	l := &List[T]{items: items, node: node}
	l.head.Store(NullPtr)
	l.tail.Store(NullPtr)

	for i := range items {
		l.node(&items[i]).finalize()
	}

	return l
}

// nodeAt returns the embedded Node for slot idx.
func (l *List[T]) nodeAt(idx uint32) *Node {
	return l.node(&l.items[idx])
}

// ItemAt returns a pointer to the element at slot idx.
func (l *List[T]) ItemAt(idx uint32) *T {
	return &l.items[idx]
}

// Len reports the number of live elements currently linked into the
// list. It is a snapshot and may be stale by the time the caller acts
// on it under concurrent mutation.
func (l *List[T]) Len() int {
	return int(l.size.Load())
}

// Head returns the slot index of the first live element, or [NullPtr]
// if the list is empty.
func (l *List[T]) Head() uint32 {
	return l.head.Load()
}

// Tail returns the slot index of the last live element, or [NullPtr]
// if the list is empty.
func (l *List[T]) Tail() uint32 {
	return l.tail.Load()
}

// isLive reports whether a raw link word belongs to a node that is
// still part of the chain: neither finalized ([NullLink]) nor
// tombstoned pending fix-up ([Deleting] as its next link).
func isLive(word uint64) bool {
	if word == NullLink {
		return false
	}
	nextLink, _, _, _ := unpackLinks(word)
	return nextLink != Deleting
}
