// Package collision stores values under 64-bit digests of their keys and
// detects keys whose digests collide.
package collision

import (
	"bytes"
	"iter"
)

type entry[V any] struct {
	key   []byte
	value V
}

// Table maps keys to values through a 64-bit digest of the key. Keys sharing
// a digest are kept in the same bucket and told apart by their bytes, so a
// collision never returns another key's value.
type Table[V any] struct {
	buckets    map[uint64][]entry[V] // Digest → keys with that digest
	count      int
	collisions int
}

// NewTable creates an empty table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{
		buckets: make(map[uint64][]entry[V]),
	}
}

// Get returns the value stored for key, whose digest is hash.
func (t *Table[V]) Get(hash uint64, key []byte) (V, bool) {
	for _, e := range t.buckets[hash] {
		if bytes.Equal(e.key, key) {
			return e.value, true
		}
	}

	var zero V

	return zero, false
}

// Put stores v for key, whose digest is hash, and returns v and true.
//
// When key is already present the table is left unchanged and the stored
// value is returned with false. A key that shares its digest with a
// different key is stored next to it and counted as a collision.
func (t *Table[V]) Put(hash uint64, key []byte, v V) (V, bool) {
	bucket := t.buckets[hash]
	for _, e := range bucket {
		if bytes.Equal(e.key, key) {
			return e.value, false
		}
	}

	if len(bucket) > 0 {
		t.collisions++
	}
	t.buckets[hash] = append(bucket, entry[V]{key: bytes.Clone(key), value: v})
	t.count++

	return v, true
}

// HasCollision reports whether two different keys have shared a digest.
func (t *Table[V]) HasCollision() bool {
	return t.collisions > 0
}

// Collisions returns the number of keys stored behind another key's digest.
func (t *Table[V]) Collisions() int {
	return t.collisions
}

// Count returns the number of stored keys.
func (t *Table[V]) Count() int {
	return t.count
}

// Values iterates over the stored values in no particular order.
func (t *Table[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, bucket := range t.buckets {
			for _, e := range bucket {
				if !yield(e.value) {
					return
				}
			}
		}
	}
}

// Reset removes every key and clears the collision count.
func (t *Table[V]) Reset() {
	clear(t.buckets)
	t.count = 0
	t.collisions = 0
}
