/*
Package keyindex provides a lock-free key-to-slot-index directory.

The core list addresses elements by slot index, not by application
key. A caller that wants to look an element back up by key after
inserting it needs a concurrent map from key to slot index; this
package is that map, a thin wrapper over puzpuzpuz/xsync's lock-free
MapOf, keyed the same way the teacher hashes its own cache keys.
*/
package keyindex

import (
	"encoding/gob"
	"hash/maphash"

	"github.com/puzpuzpuz/xsync/v2"
)

// Index maps an application key to the slot index holding its element.
type Index[K comparable] struct {
	m *xsync.MapOf[K, uint32]
}

// New returns an empty Index.
func New[K comparable]() *Index[K] {
	return &Index[K]{m: xsync.NewTypedMapOf[K, uint32](hashKey[K])}
}

func hashKey[K comparable](seed maphash.Seed, key K) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)

	enc := gob.NewEncoder(&h)
	if err := enc.Encode(key); err != nil {
		panic(err)
	}

	return h.Sum64()
}

// Store records that key now lives at slot.
func (idx *Index[K]) Store(key K, slot uint32) {
	idx.m.Store(key, slot)
}

// Load returns the slot holding key, if any.
func (idx *Index[K]) Load(key K) (uint32, bool) {
	return idx.m.Load(key)
}

// Delete removes key's entry, if present.
func (idx *Index[K]) Delete(key K) {
	idx.m.Delete(key)
}

// Len returns the number of tracked keys.
func (idx *Index[K]) Len() int {
	return idx.m.Size()
}

// Range calls f for every key/slot pair, in no particular order,
// stopping early if f returns false.
func (idx *Index[K]) Range(f func(key K, slot uint32) bool) {
	idx.m.Range(f)
}
