package llist_test

import (
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"llist"
)

// wait blocks until wg is done or a generous timeout elapses, failing the
// spec rather than hanging the suite if goroutines deadlock.
func wait(wg *sync.WaitGroup) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		Fail("test timed out waiting for goroutines to join")
	}
}

var _ = Describe("concurrent push_front stress", func() {
	It("keeps every value exactly once under 8-way contention", func() {
		const numThreads = 8
		const perThread = 1000
		const total = numThreads * perThread

		l, items := newTestList(total)
		for i := range items {
			items[i].Value = i
		}

		var wg sync.WaitGroup
		var nextIndex atomic.Uint64

		for t := 0; t < numThreads; t++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perThread; i++ {
					idx := uint32(nextIndex.Add(1) - 1)
					Expect(l.PushFront(idx)).To(BeTrue())
				}
			}()
		}
		wait(&wg)

		forward := collectValues(l, true)
		backward := collectValues(l, false)

		Expect(l.Len()).To(Equal(total))
		Expect(forward).To(HaveLen(total))
		Expect(backward).To(HaveLen(total))
		Expect(reverseInts(backward)).To(Equal(forward))
		Expect(distinct(forward)).To(BeTrue())
		Expect(l.Validate()).To(Succeed())
	})
})

var _ = Describe("interleaved middle removal and adjacent insert", func() {
	It("leaves the list internally consistent", func() {
		l, items := newTestList(14)
		for i := range items {
			items[i].Value = i
		}
		for i := uint32(0); i < 10; i++ {
			Expect(l.PushBack(i)).To(BeTrue())
		}

		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			for _, idx := range []uint32{3, 4, 5, 6} {
				l.Remove(idx)
			}
		}()

		go func() {
			defer wg.Done()
			for i, anchor := range []uint32{4, 5, 6, 7} {
				l.InsertBefore(anchor, 10+uint32(i))
			}
		}()

		wait(&wg)

		forward := collectValues(l, true)
		backward := collectValues(l, false)

		Expect(reverseInts(backward)).To(Equal(forward))
		Expect(l.Len()).To(Equal(len(forward)))
		Expect(l.Validate()).To(Succeed())
	})
})

var _ = Describe("concurrent readers under mutation", func() {
	It("lets readers iterate safely while writers mutate both ends", func() {
		const prepopulated = 1000
		const numWriters = 4
		const perWriter = 1000
		const numReaders = 4
		const total = prepopulated + numWriters*perWriter

		l, items := newTestList(total)
		for i := range items {
			items[i].Value = i
		}
		for i := uint32(0); i < prepopulated; i++ {
			Expect(l.PushBack(i)).To(BeTrue())
		}

		stop := make(chan struct{})
		var readerWG sync.WaitGroup
		for r := 0; r < numReaders; r++ {
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
							if err := it.Next(); err != nil {
								break
							}
						}
					}
				}
			}()
		}

		var writerWG sync.WaitGroup
		var nextIndex atomic.Uint64
		nextIndex.Store(uint64(prepopulated))

		for w := 0; w < numWriters; w++ {
			writerWG.Add(1)
			go func(writerID int) {
				defer writerWG.Done()
				for i := 0; i < perWriter; i++ {
					idx := uint32(nextIndex.Add(1) - 1)
					if (writerID+i)%2 == 0 {
						l.PushFront(idx)
					} else {
						l.PushBack(idx)
					}
				}
			}(w)
		}
		wait(&writerWG)
		close(stop)
		wait(&readerWG)

		forward := collectValues(l, true)
		Expect(forward).To(HaveLen(total))
		Expect(distinct(forward)).To(BeTrue())
		Expect(l.Validate()).To(Succeed())
	})
})

var _ = Describe("retry exhaustion under pathological contention", func() {
	It("never corrupts the list even when individual operations fail", func() {
		const numThreads = 32
		const opsPerThread = 200

		l, items := newTestList(numThreads*opsPerThread + 1)
		for i := range items {
			items[i].Value = i
		}

		anchorIdx := uint32(len(items) - 1)
		Expect(l.PushFront(anchorIdx)).To(BeTrue())

		var wg sync.WaitGroup
		var nextIndex atomic.Uint64
		var failures atomic.Uint64

		for t := 0; t < numThreads; t++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < opsPerThread; i++ {
					idx := uint32(nextIndex.Add(1) - 1)
					if !l.InsertAfter(anchorIdx, idx) {
						failures.Add(1)
						continue
					}
					l.Remove(idx)
				}
			}()
		}
		wait(&wg)

		Expect(l.Validate()).To(Succeed())

		forward := collectValues(l, true)
		backward := collectValues(l, false)
		Expect(reverseInts(backward)).To(Equal(forward))
		Expect(l.Len()).To(Equal(len(forward)))
	})
})

func collectValues(l *llist.List[item], forward bool) []int {
	var out []int
	if forward {
		for it := l.Begin(); !it.Done(); {
			out = append(out, it.Item().Value)
			if it.Next() != nil {
				break
			}
		}
	} else {
		for it := l.RBegin(); !it.Done(); {
			out = append(out, it.Item().Value)
			if it.Prev() != nil {
				break
			}
		}
	}
	return out
}

func reverseInts(in []int) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

func distinct(in []int) bool {
	seen := make(map[int]bool, len(in))
	for _, v := range in {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
