package llist

import "fmt"

// Validate walks the list forward and backward and checks the
// invariants a quiescent list must satisfy. It is a diagnostic for use
// between bursts of concurrent activity — once all mutators have
// joined — not a concurrency-safe operation in its own right, mirroring
// the scope of the "Universally quantified invariants" a test suite
// checks only after joining all threads.
//
// It returns nil if every invariant holds, or the first violation found.
func (l *List[T]) Validate() error {
	head := l.head.Load()
	tail := l.tail.Load()

	if head == NullPtr && tail != NullPtr {
		return fmt.Errorf("llist: head is NullPtr but tail is %d", tail)
	}
	if tail == NullPtr && head != NullPtr {
		return fmt.Errorf("llist: tail is NullPtr but head is %d", head)
	}

	forward, err := l.collect(true)
	if err != nil {
		return err
	}

	backward, err := l.collect(false)
	if err != nil {
		return err
	}

	if len(forward) != len(backward) {
		return fmt.Errorf("llist: forward length %d != backward length %d", len(forward), len(backward))
	}

	for i, idx := range forward {
		if backward[len(backward)-1-i] != idx {
			return fmt.Errorf("llist: forward/backward traversal disagree at position %d", i)
		}
	}

	if want := l.Len(); want >= 0 && len(forward) != want {
		return fmt.Errorf("llist: traversal length %d != Len() %d", len(forward), want)
	}

	if head != NullPtr {
		_, _, prevLink, _ := unpackLinks(l.nodeAt(head).load())
		if prevLink != NullPtr {
			return fmt.Errorf("llist: head %d has non-null prev %d", head, prevLink)
		}
	}
	if tail != NullPtr {
		nextLink, _, _, _ := unpackLinks(l.nodeAt(tail).load())
		if nextLink != NullPtr {
			return fmt.Errorf("llist: tail %d has non-null next %d", tail, nextLink)
		}
	}

	return nil
}

// collect walks the whole chain once, in the requested direction,
// failing fast if it encounters a live-looking node that is actually
// NullLink (which would mean head/tail point at a finalized slot).
func (l *List[T]) collect(forward bool) ([]uint32, error) {
	var out []uint32

	var cur uint32
	if forward {
		cur = l.head.Load()
	} else {
		cur = l.tail.Load()
	}

	seen := make(map[uint32]bool, len(l.items))

	for cur != NullPtr {
		if seen[cur] {
			return nil, fmt.Errorf("llist: cycle detected at slot %d", cur)
		}
		seen[cur] = true

		word := l.nodeAt(cur).load()
		if word == NullLink {
			return nil, fmt.Errorf("llist: live chain reaches finalized slot %d", cur)
		}

		nextLink, _, prevLink, _ := unpackLinks(word)
		if nextLink == Deleting {
			return nil, fmt.Errorf("llist: live chain reaches tombstoned slot %d", cur)
		}

		out = append(out, cur)

		if forward {
			cur = nextLink
		} else {
			cur = prevLink
		}
	}

	return out, nil
}
