package llist

// Find returns the index of the first element for which predicate
// returns true, scanning from head. It tolerates concurrent structural
// mutation: a node whose removal has been committed but not yet
// finalized is treated as absent, and if the node currently being
// examined is found to have been fully removed, the scan restarts from
// the current head.
func (l *List[T]) Find(predicate func(*T) bool) (uint32, bool) {
	current := l.head.Load()
	restarts := 0

	for current != NullPtr && current != Deleting {
		word := l.nodeAt(current).load()
		nextLink, _, _, _ := unpackLinks(word)
		if word == NullLink || nextLink == Deleting {
			restarts++
			if restarts >= MaxRetries {
				return NullPtr, false
			}
			current = l.head.Load()
			continue
		}

		if predicate(l.ItemAt(current)) {
			return current, true
		}

		current = nextLink
	}

	return NullPtr, false
}
