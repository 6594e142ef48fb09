package types

import (
	"cmp"
	"iter"
)

// Weighted is implemented by items that carry a scalar weight.
//
// Weights are expected to be non-negative. Negative weights are not rejected,
// but the balance bound of the greedy strategy no longer holds for them.
type Weighted interface {
	// Weight returns the current weight of the item (e.g., byte size, load, cost).
	Weight() int64
}

// Collection is a keyed collection of weighted items.
//
// Keys must be unique. Iteration order only affects tie-breaking between
// items of equal weight, so implementations should iterate in a stable order
// (source.Map iterates in ascending key order).
//
// The collection must not gain or lose keys while a strategy iterates it.
// Item weights may change at any time; strategies capture each weight once.
type Collection[K cmp.Ordered, V Weighted] interface {
	// All returns an iterator over every (key, item) pair.
	All() iter.Seq2[K, V]

	// Len returns the number of items in the collection.
	Len() int
}
