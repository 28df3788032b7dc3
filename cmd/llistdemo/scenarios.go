package main

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"llist"
	"llist/internal/keyindex"
	"llist/internal/slotpool"
)

// demoElement is the element type every scenario links into a list.
type demoElement struct {
	Key   string
	Value int
	node  llist.Node
}

func demoNode(e *demoElement) *llist.Node { return &e.node }

type scenario func(elements, threads int) error

var scenarios = map[string]scenario{
	"sequential-spine":          sequentialSpine,
	"push-front-stress":         pushFrontStress,
	"interleaved-remove-insert": interleavedRemoveInsert,
	"concurrent-readers":        concurrentReaders,
	"retry-exhaustion":          retryExhaustion,
}

func newDemoList(n int) (*llist.List[demoElement], []demoElement) {
	items := make([]demoElement, n)
	for i := range items {
		items[i].Value = i
		items[i].Key = fmt.Sprintf("key-%d", i)
	}
	return llist.New(items, demoNode), items
}

// sequentialSpine builds the list one PushBack at a time, recording
// each element's key in a keyindex.Index, then confirms every key
// round-trips back to the slot it was stored at.
func sequentialSpine(elements, _ int) error {
	l, items := newDemoList(elements)
	idx := keyindex.New[string]()

	for i := range items {
		if !l.PushBack(uint32(i)) {
			return fmt.Errorf("PushBack(%d) failed", i)
		}
		idx.Store(items[i].Key, uint32(i))
	}

	for i := range items {
		slot, ok := idx.Load(items[i].Key)
		if !ok || slot != uint32(i) {
			return fmt.Errorf("keyindex lookup for %q: got (%d, %v), want (%d, true)", items[i].Key, slot, ok, i)
		}
	}

	log.WithField("elements", elements).Info("sequential spine built")
	return l.Validate()
}

// pushFrontStress drives `threads` goroutines each claiming slots from
// a slotpool.Pool and pushing them onto the front of the list.
func pushFrontStress(elements, threads int) error {
	if threads < 1 {
		threads = 1
	}

	l, _ := newDemoList(elements)
	pool := slotpool.New(elements)

	var wg sync.WaitGroup
	var failures atomic.Uint64

	perThread := elements / threads
	for t := 0; t < threads; t++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perThread; i++ {
				idx, ok := pool.Acquire()
				if !ok {
					failures.Add(1)
					continue
				}
				if !l.PushFront(idx) {
					failures.Add(1)
					pool.Release(idx)
				}
			}
		}()
	}
	wg.Wait()

	log.WithFields(logrus.Fields{
		"elements": elements,
		"threads":  threads,
		"len":      l.Len(),
		"failures": failures.Load(),
	}).Info("push front stress complete")

	return l.Validate()
}

// interleavedRemoveInsert races a remover against an inserter over the
// same run of middle elements.
func interleavedRemoveInsert(elements, _ int) error {
	if elements < 8 {
		elements = 8
	}

	l, _ := newDemoList(elements)
	for i := uint32(0); i < uint32(elements)-1; i++ {
		if !l.PushBack(i) {
			return fmt.Errorf("PushBack(%d) failed", i)
		}
	}
	spare := uint32(elements) - 1

	mid := uint32(elements) / 2

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := mid - 2; i < mid+2; i++ {
			l.Remove(i)
		}
	}()

	go func() {
		defer wg.Done()
		l.InsertBefore(mid+2, spare)
	}()

	wg.Wait()

	log.WithField("len", l.Len()).Info("interleaved remove/insert complete")
	return l.Validate()
}

// concurrentReaders runs readers walking the list while writers mutate
// both ends, confirming Validate still holds once everyone joins.
func concurrentReaders(elements, threads int) error {
	if threads < 1 {
		threads = 1
	}

	l, _ := newDemoList(elements)
	prepopulated := elements / 2
	for i := uint32(0); i < uint32(prepopulated); i++ {
		l.PushBack(i)
	}

	stop := make(chan struct{})
	var readerWG sync.WaitGroup
	for r := 0; r < threads; r++ {
		readerWG.Add(1)
		go func() {
			defer readerWG.Done()
			for {
				select {
				case <-stop:
					return
				default:
					for it := l.Begin(); !it.Done(); {
						_ = it.Item().Value
						if it.Next() != nil {
							break
						}
					}
				}
			}
		}()
	}

	var writerWG sync.WaitGroup
	var next atomic.Uint64
	next.Store(uint64(prepopulated))

	remaining := elements - prepopulated
	for w := 0; w < threads; w++ {
		writerWG.Add(1)
		go func(writerID int) {
			defer writerWG.Done()
			for i := 0; i < remaining/threads; i++ {
				idx := uint32(next.Add(1) - 1)
				if (writerID+i)%2 == 0 {
					l.PushFront(idx)
				} else {
					l.PushBack(idx)
				}
			}
		}(w)
	}
	writerWG.Wait()
	close(stop)
	readerWG.Wait()

	log.WithField("len", l.Len()).Info("concurrent readers scenario complete")
	return l.Validate()
}

// retryExhaustion hammers a single anchor from many goroutines to
// exercise the bounded-retry failure path, then confirms the list is
// still internally consistent regardless of how many individual
// operations gave up.
func retryExhaustion(elements, threads int) error {
	if threads < 1 {
		threads = 1
	}
	if elements < threads+1 {
		elements = threads + 1
	}

	l, _ := newDemoList(elements)
	anchor := uint32(elements) - 1
	if !l.PushFront(anchor) {
		return fmt.Errorf("seeding anchor failed")
	}

	var wg sync.WaitGroup
	var next atomic.Uint64
	var failures atomic.Uint64

	perThread := (elements - 1) / threads
	for t := 0; t < threads; t++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perThread; i++ {
				idx := uint32(next.Add(1) - 1)
				if !l.InsertAfter(anchor, idx) {
					failures.Add(1)
					continue
				}
				l.Remove(idx)
			}
		}()
	}
	wg.Wait()

	log.WithFields(logrus.Fields{
		"failures": failures.Load(),
		"len":      l.Len(),
	}).Info("retry exhaustion scenario complete")

	return l.Validate()
}
