package llist_test

import (
	"testing"

	"llist"
)

func TestIteratorEmptyList(t *testing.T) {
	l, _ := newTestList(2)

	if !l.Begin().Done() {
		t.Fatalf("Begin() should be done on an empty list")
	}
	if !l.RBegin().Done() {
		t.Fatalf("RBegin() should be done on an empty list")
	}
}

func TestIteratorSingleton(t *testing.T) {
	l, items := newTestList(1)
	l.PushBack(0)

	it := l.Begin()
	if it.Done() {
		t.Fatalf("expected a live element")
	}
	assertEqual(t, it.Item().Value, items[0].Value)

	if err := it.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !it.Done() {
		t.Fatalf("singleton forward iteration should terminate after one element")
	}

	rit := l.RBegin()
	assertEqual(t, rit.Item().Value, items[0].Value)
	if err := rit.Prev(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rit.Done() {
		t.Fatalf("singleton reverse iteration should terminate after one element")
	}
}

func TestIteratorSurvivesConcurrentRemovalAhead(t *testing.T) {
	l, _ := newTestList(5)
	for i := uint32(0); i < 5; i++ {
		l.PushBack(i)
	}

	it := l.Begin() // positioned at 0

	// Remove the node ahead of the cursor before advancing into it.
	if !l.Remove(1) {
		t.Fatalf("Remove(1) failed")
	}

	var values []int
	for !it.Done() {
		values = append(values, it.Item().Value)
		if err := it.Next(); err != nil {
			t.Fatalf("iterator should tolerate a removal ahead of it, got: %v", err)
		}
	}

	assertEqual(t, values, []int{0, 2, 3, 4})
}

func TestIteratorSurvivesInsertionAhead(t *testing.T) {
	l, _ := newTestList(6)
	for _, i := range []uint32{0, 1, 3} {
		l.PushBack(i)
	}

	it := l.Begin() // positioned at 0

	if !l.InsertAfter(1, 2) {
		t.Fatalf("InsertAfter failed")
	}

	var values []int
	for !it.Done() {
		values = append(values, it.Item().Value)
		if err := it.Next(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// The iterator is allowed, but not required, to observe the insert.
	if len(values) != 3 && len(values) != 4 {
		t.Fatalf("unexpected traversal length: %v", values)
	}
	assertEqual(t, values[0], 0)
}

func TestIteratorForwardBackwardSymmetry(t *testing.T) {
	l, _ := newTestList(5)
	for i := uint32(0); i < 5; i++ {
		l.PushBack(i)
	}

	fwd := collectForward(t, l)
	bwd := collectBackward(t, l)

	for i := range fwd {
		if fwd[i] != bwd[len(bwd)-1-i] {
			t.Fatalf("forward/backward traversal are not mirror images: %v vs %v", fwd, bwd)
		}
	}
}

func TestIteratorInvalidatedErrorIsDistinguished(t *testing.T) {
	if llist.ErrIteratorInvalidated == nil {
		t.Fatalf("ErrIteratorInvalidated must be a distinguished sentinel error")
	}
}
