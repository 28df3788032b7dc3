package llist

// PushFront links the element at idx as the new head of the list.
// It returns false on retry exhaustion, or if the previous head is
// removed before its prev link can be pointed at idx; in either case
// the list is left exactly as it was and idx remains unlinked.
func (l *List[T]) PushFront(idx uint32) bool {
	newNode := l.nodeAt(idx)

	var oldHead uint32
	linked := false

	for attempt := 0; attempt < MaxRetries; attempt++ {
		oldHead = l.head.Load()
		newNode.storeRelaxed(packLinks(oldHead, 0, NullPtr, 0))

		if l.head.CompareAndSwap(oldHead, idx) {
			linked = true
			break
		}
	}

	if !linked {
		return false
	}

	if oldHead != NullPtr {
		if !l.fixPrevOfNeighbour(oldHead, idx) {
			l.head.CompareAndSwap(idx, oldHead)
			newNode.finalize()
			return false
		}
	}

	l.tail.CompareAndSwap(NullPtr, idx)
	l.size.Add(1)
	return true
}

// PushBack links the element at idx as the new tail of the list.
func (l *List[T]) PushBack(idx uint32) bool {
	newNode := l.nodeAt(idx)

	var oldTail uint32
	linked := false

	for attempt := 0; attempt < MaxRetries; attempt++ {
		oldTail = l.tail.Load()
		newNode.storeRelaxed(packLinks(NullPtr, 0, oldTail, 0))

		if l.tail.CompareAndSwap(oldTail, idx) {
			linked = true
			break
		}
	}

	if !linked {
		return false
	}

	if oldTail != NullPtr {
		if !l.fixNextOfNeighbour(oldTail, idx) {
			l.tail.CompareAndSwap(idx, oldTail)
			newNode.finalize()
			return false
		}
	}

	l.head.CompareAndSwap(NullPtr, idx)
	l.size.Add(1)
	return true
}

// fixPrevOfNeighbour updates neighbourIdx's prev field to newIdx,
// bumping its prev_version. It fails if the neighbour has been removed
// (NullLink) or has itself entered DELETING in the interim.
func (l *List[T]) fixPrevOfNeighbour(neighbourIdx, newIdx uint32) bool {
	neighbour := l.nodeAt(neighbourIdx)

	for attempt := 0; attempt < MaxRetries; attempt++ {
		word := neighbour.load()
		if word == NullLink {
			return false
		}

		nextLink, nextVersion, _, prevVersion := unpackLinks(word)
		if nextLink == Deleting {
			return false
		}

		newWord := packLinks(nextLink, nextVersion, newIdx, prevVersion+1)
		if neighbour.compareAndSwap(word, newWord) {
			return true
		}
	}

	return false
}

// fixNextOfNeighbour is the symmetric counterpart used by PushBack.
func (l *List[T]) fixNextOfNeighbour(neighbourIdx, newIdx uint32) bool {
	neighbour := l.nodeAt(neighbourIdx)

	for attempt := 0; attempt < MaxRetries; attempt++ {
		word := neighbour.load()
		if word == NullLink {
			return false
		}

		nextLink, nextVersion, prevLink, prevVersion := unpackLinks(word)
		if nextLink == Deleting {
			return false
		}

		newWord := packLinks(newIdx, nextVersion+1, prevLink, prevVersion)
		if neighbour.compareAndSwap(word, newWord) {
			return true
		}
	}

	return false
}

type fixupResult int

const (
	fixupOK fixupResult = iota
	fixupRetry
	fixupExhausted
)

// InsertAfter links the element at idx immediately after anchor. It
// fails if anchor is not currently in the list (removed or mid-removal)
// or on retry exhaustion.
func (l *List[T]) InsertAfter(anchor, idx uint32) bool {
	newNode := l.nodeAt(idx)
	anchorNode := l.nodeAt(anchor)

	for attempt := 0; attempt < MaxRetries; attempt++ {
		anchorWord := anchorNode.load()
		if anchorWord == NullLink {
			return false
		}

		nextLink, nextVersion, prevLink, prevVersion := unpackLinks(anchorWord)
		if nextLink == Deleting {
			return false
		}

		newNode.storeRelaxed(packLinks(nextLink, 0, anchor, 0))

		newAnchorWord := packLinks(idx, nextVersion+1, prevLink, prevVersion)
		if !anchorNode.compareAndSwap(anchorWord, newAnchorWord) {
			continue
		}

		if nextLink == NullPtr {
			l.tail.CompareAndSwap(anchor, idx)
			l.size.Add(1)
			return true
		}

		switch l.fixFarPrev(nextLink, anchor, idx) {
		case fixupOK:
			l.size.Add(1)
			return true
		case fixupRetry:
			anchorNode.compareAndSwap(newAnchorWord, anchorWord)
			newNode.finalize()
			continue
		default: // fixupExhausted
			anchorNode.compareAndSwap(newAnchorWord, anchorWord)
			newNode.finalize()
			return false
		}
	}

	return false
}

// InsertBefore links the element at idx immediately before anchor.
func (l *List[T]) InsertBefore(anchor, idx uint32) bool {
	newNode := l.nodeAt(idx)
	anchorNode := l.nodeAt(anchor)

	for attempt := 0; attempt < MaxRetries; attempt++ {
		anchorWord := anchorNode.load()
		if anchorWord == NullLink {
			return false
		}

		nextLink, nextVersion, prevLink, prevVersion := unpackLinks(anchorWord)
		if nextLink == Deleting {
			return false
		}

		newNode.storeRelaxed(packLinks(anchor, 0, prevLink, 0))

		newAnchorWord := packLinks(nextLink, nextVersion, idx, prevVersion+1)
		if !anchorNode.compareAndSwap(anchorWord, newAnchorWord) {
			continue
		}

		if prevLink == NullPtr {
			l.head.CompareAndSwap(anchor, idx)
			l.size.Add(1)
			return true
		}

		switch l.fixFarNext(prevLink, anchor, idx) {
		case fixupOK:
			l.size.Add(1)
			return true
		case fixupRetry:
			anchorNode.compareAndSwap(newAnchorWord, anchorWord)
			newNode.finalize()
			continue
		default: // fixupExhausted
			anchorNode.compareAndSwap(newAnchorWord, anchorWord)
			newNode.finalize()
			return false
		}
	}

	return false
}

// fixFarPrev updates the successor's prev field from expectedAnchor to
// newAnchor, verifying the successor still names expectedAnchor as its
// predecessor before committing.
func (l *List[T]) fixFarPrev(successor, expectedAnchor, newAnchor uint32) fixupResult {
	node := l.nodeAt(successor)

	for attempt := 0; attempt < MaxRetries; attempt++ {
		word := node.load()
		if word == NullLink {
			return fixupRetry
		}

		nextLink, nextVersion, prevLink, prevVersion := unpackLinks(word)
		if nextLink == Deleting || prevLink != expectedAnchor {
			return fixupRetry
		}

		newWord := packLinks(nextLink, nextVersion, newAnchor, prevVersion+1)
		if node.compareAndSwap(word, newWord) {
			return fixupOK
		}
	}

	return fixupExhausted
}

// fixFarNext is the symmetric counterpart used by InsertBefore.
func (l *List[T]) fixFarNext(predecessor, expectedAnchor, newAnchor uint32) fixupResult {
	node := l.nodeAt(predecessor)

	for attempt := 0; attempt < MaxRetries; attempt++ {
		word := node.load()
		if word == NullLink {
			return fixupRetry
		}

		nextLink, nextVersion, prevLink, prevVersion := unpackLinks(word)
		if nextLink == Deleting || nextLink != expectedAnchor {
			return fixupRetry
		}

		newWord := packLinks(newAnchor, nextVersion+1, prevLink, prevVersion)
		if node.compareAndSwap(word, newWord) {
			return fixupOK
		}
	}

	return fixupExhausted
}
