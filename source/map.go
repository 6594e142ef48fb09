package source

import (
	"cmp"
	"iter"
	"slices"
	"sync"

	"github.com/arloliu/balancer/types"
)

// Map is a key-ordered collection of weighted items.
//
// Map is safe for concurrent use. Iteration always visits keys in ascending
// order, which makes strategies deterministic for a given set of keys and
// weights.
type Map[K cmp.Ordered, V types.Weighted] struct {
	mu    sync.RWMutex
	keys  []K // sorted ascending
	items map[K]V
}

var _ types.Collection[string, *Item] = (*Map[string, *Item])(nil)

// NewMap creates an empty collection.
func NewMap[K cmp.Ordered, V types.Weighted]() *Map[K, V] {
	return &Map[K, V]{items: make(map[K]V)}
}

// FromWeights builds a collection of Items from a key → weight mapping.
//
// Parameters:
//   - weights: Initial weight per key
//
// Returns:
//   - *Map[K, *Item]: Collection holding one Item per key
//
// Example:
//
//	items := source.FromWeights(map[string]int64{
//	    "tool001": 100,
//	    "tool002": 150,
//	})
//	partition, err := strategy.CreateBalancedPartition(items, 2)
func FromWeights[K cmp.Ordered](weights map[K]int64) *Map[K, *Item] {
	m := NewMap[K, *Item]()
	for key, weight := range weights {
		m.Set(key, NewItem(weight))
	}

	return m
}

// Set inserts or replaces the item stored under key.
func (m *Map[K, V]) Set(key K, item V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[key]; !ok {
		idx, _ := slices.BinarySearch(m.keys, key)
		m.keys = slices.Insert(m.keys, idx, key)
	}
	m.items[key] = item
}

// Get returns the item stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[key]

	return item, ok
}

// Delete removes key from the collection. It reports whether the key was present.
func (m *Map[K, V]) Delete(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[key]; !ok {
		return false
	}

	delete(m.items, key)
	if idx, found := slices.BinarySearch(m.keys, key); found {
		m.keys = slices.Delete(m.keys, idx, idx+1)
	}

	return true
}

// Len returns the number of items.
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.keys)
}

// Keys returns a copy of the keys in ascending order.
func (m *Map[K, V]) Keys() []K {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.keys)
}

// All returns an iterator over the items in ascending key order.
//
// The iterator walks a snapshot taken under the read lock, so the loop body may
// call Set or Delete without deadlocking; such changes are not visible to the
// running iteration.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		keys, items := m.snapshot()
		for i, key := range keys {
			if !yield(key, items[i]) {
				return
			}
		}
	}
}

func (m *Map[K, V]) snapshot() ([]K, []V) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := slices.Clone(m.keys)
	items := make([]V, len(keys))
	for i, key := range keys {
		items[i] = m.items[key]
	}

	return keys, items
}
