package types

import "cmp"

// Strategy computes a Partition of a weighted collection.
//
// Built-in strategies:
//   - Balanced: Longest-Processing-Time-first greedy assignment (weight balanced)
//   - Flat: Round-robin assignment in collection order (count balanced)
//
// Strategy implementations should:
//   - Be deterministic (same input → same output)
//   - Cover every item exactly once
//   - Return exactly n buckets, failing with ErrInvalidArgument when n < 1
//   - Never mutate the collection or its items
type Strategy[K cmp.Ordered, V Weighted] interface {
	// Name returns the strategy name used in configuration, logs and metrics.
	Name() string

	// Partition assigns every item of the collection to one of n buckets.
	//
	// Parameters:
	//   - c: Collection to partition
	//   - n: Number of buckets (must be >= 1)
	//
	// Returns:
	//   - Partition[K, V]: Exactly n buckets
	//   - error: ErrInvalidArgument if n < 1
	Partition(c Collection[K, V], n int) (Partition[K, V], error)
}
