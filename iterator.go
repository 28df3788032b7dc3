package llist

// Iterator is a bidirectional, self-repairing cursor over a List. It
// survives any number of concurrent removals without undefined
// behavior or infinite loops, but it is not a snapshot: it may or may
// not observe concurrently inserted elements, and repeated traversal of
// the same live region is not guaranteed to visit elements in the same
// relative order if the region was restructured in between.
//
// The zero value is not usable; obtain an Iterator from [List.Begin],
// [List.End], [List.RBegin] or [List.REnd].
type Iterator[T any] struct {
	list    *List[T]
	current uint32
	prev    uint32
}

// Begin returns an iterator positioned at the head of the list, or an
// end iterator if the list is empty.
func (l *List[T]) Begin() *Iterator[T] {
	head := l.head.Load()
	it := &Iterator[T]{list: l, current: head, prev: NullPtr}
	if head != NullPtr {
		_, _, prevLink, _ := unpackLinks(l.nodeAt(head).load())
		it.prev = prevLink
	}
	return it
}

// End returns the sentinel iterator one past the tail.
func (l *List[T]) End() *Iterator[T] {
	return &Iterator[T]{list: l, current: NullPtr, prev: NullPtr}
}

// RBegin returns an iterator positioned at the tail of the list, for
// reverse traversal.
func (l *List[T]) RBegin() *Iterator[T] {
	tail := l.tail.Load()
	it := &Iterator[T]{list: l, current: tail, prev: NullPtr}
	if tail != NullPtr {
		nextLink, _, _, _ := unpackLinks(l.nodeAt(tail).load())
		it.prev = nextLink
	}
	return it
}

// REnd returns the sentinel iterator one before the head.
func (l *List[T]) REnd() *Iterator[T] {
	return &Iterator[T]{list: l, current: NullPtr, prev: NullPtr}
}

// Done reports whether the iterator has run off either end of the list.
func (it *Iterator[T]) Done() bool {
	return it.current == NullPtr
}

// Index returns the current element's slot index. It is only valid
// when !it.Done().
func (it *Iterator[T]) Index() uint32 {
	return it.current
}

// Item returns a pointer to the current element. It is only valid when
// !it.Done().
func (it *Iterator[T]) Item() *T {
	return it.list.ItemAt(it.current)
}

// Next advances the iterator to the following element.
//
// If the cursor's remembered predecessor no longer matches the current
// element's actual predecessor — structural drift caused by a
// concurrent insertion or removal adjacent to the cursor — Next enters
// a bounded repair walk that re-derives the cursor's position from the
// live chain. It returns [ErrIteratorInvalidated] if that walk cannot
// find a stable position within [MaxRetries] steps.
func (it *Iterator[T]) Next() error {
	if it.current == NullPtr {
		return nil
	}

	word := it.list.nodeAt(it.current).load()
	if word == NullLink {
		it.prev = it.current
		it.current = NullPtr
		return nil
	}

	nextLink, _, prevLink, _ := unpackLinks(word)
	if prevLink != it.prev {
		return it.repair(it.current, nextLink, true)
	}

	if nextLink == NullPtr {
		it.prev = it.current
		it.current = NullPtr
		return nil
	}

	if !it.candidateIsConsistent(nextLink, it.current, true) {
		return it.repair(it.current, nextLink, true)
	}

	it.prev = it.current
	it.current = nextLink
	return nil
}

// Prev moves the iterator to the preceding element, symmetric to Next.
// A predecessor found to be mid-removal is not walked through via its
// preserved prev field: it sends Prev into the repair walk, which then
// restarts from the list's current tail. The repair walk keeps no record
// of the nodes it has passed over; it is bounded by [MaxRetries] steps
// and reports [ErrIteratorInvalidated] when they run out, rather than
// stopping at the end sentinel.
func (it *Iterator[T]) Prev() error {
	if it.current == NullPtr {
		return nil
	}

	word := it.list.nodeAt(it.current).load()
	if word == NullLink {
		it.prev = it.current
		it.current = NullPtr
		return nil
	}

	nextLink, _, prevLink, _ := unpackLinks(word)
	if nextLink != it.prev {
		return it.repair(it.current, prevLink, false)
	}

	if prevLink == NullPtr {
		it.prev = it.current
		it.current = NullPtr
		return nil
	}

	if !it.candidateIsConsistent(prevLink, it.current, false) {
		return it.repair(it.current, prevLink, false)
	}

	it.prev = it.current
	it.current = prevLink
	return nil
}

// candidateIsConsistent reports whether cand is a live node whose
// recorded neighbour on the side facing from points back at from.
func (it *Iterator[T]) candidateIsConsistent(cand, from uint32, forward bool) bool {
	word := it.list.nodeAt(cand).load()
	if word == NullLink {
		return false
	}
	nextLink, _, prevLink, _ := unpackLinks(word)
	if nextLink == Deleting {
		return false
	}
	if forward {
		return prevLink == from
	}
	return nextLink == from
}

// repair re-synchronizes the cursor after drift is detected. It walks
// forward (or backward) from start, re-deriving the cursor's remembered
// neighbour from each node's own bookkeeping, until it lands on a node
// whose recorded neighbour matches the node it just came from, or until
// it runs off the end of the chain. If a tombstoned node is encountered
// (the next hop along the walk has itself been fully removed, losing
// its own forward-chain bookkeeping) the walk restarts from the list's
// current head/tail, since that is the only position still guaranteed
// reachable. Exhausting MaxRetries steps without stabilizing reports
// ErrIteratorInvalidated.
func (it *Iterator[T]) repair(stale, next uint32, forward bool) error {
	prevCandidate := stale
	cur := next

	for attempt := 0; attempt < MaxRetries; attempt++ {
		if cur == NullPtr {
			it.prev = prevCandidate
			it.current = NullPtr
			return nil
		}

		word := it.list.nodeAt(cur).load()
		if word == NullLink {
			if forward {
				cur = it.list.head.Load()
			} else {
				cur = it.list.tail.Load()
			}
			prevCandidate = NullPtr
			continue
		}

		nextLink, _, prevLink, _ := unpackLinks(word)
		if nextLink == Deleting {
			if forward {
				cur = it.list.head.Load()
			} else {
				cur = it.list.tail.Load()
			}
			prevCandidate = NullPtr
			continue
		}

		var ownNeighbour uint32
		if forward {
			ownNeighbour = prevLink
		} else {
			ownNeighbour = nextLink
		}

		if ownNeighbour == prevCandidate {
			it.current = cur
			it.prev = prevCandidate
			return nil
		}

		prevCandidate = cur
		if forward {
			cur = nextLink
		} else {
			cur = prevLink
		}
	}

	return ErrIteratorInvalidated
}
