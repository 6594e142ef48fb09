package strategy

import (
	"cmp"

	"github.com/arloliu/balancer/internal/logger"
	"github.com/arloliu/balancer/types"
)

// NameBalanced is the configuration name of the Balanced strategy.
const NameBalanced = "balanced"

// CreateBalancedPartition distributes the collection over n buckets using the
// Longest-Processing-Time-first greedy heuristic.
//
// The algorithm:
//  1. Order all items by weight, heaviest first (AssignToOrderedList)
//  2. Start with n empty buckets
//  3. Assign each item to the bucket with the lowest aggregate weight,
//     choosing the lowest index among equally light buckets
//
// An empty collection yields n empty buckets. Weights are assumed to be
// non-negative; negative weights are accepted but void the balance bound.
//
// Parameters:
//   - c: Collection to partition
//   - n: Number of buckets (must be >= 1)
//
// Returns:
//   - types.Partition[K, V]: Exactly n buckets covering every item once
//   - error: types.ErrInvalidArgument if n < 1
//
// Example:
//
//	partition, err := strategy.CreateBalancedPartition(items, 5)
//	if err != nil {
//	    return err
//	}
//	for i, bucket := range partition {
//	    fmt.Println(i, bucket.Weight, bucket.Keys())
//	}
func CreateBalancedPartition[K cmp.Ordered, V types.Weighted](c types.Collection[K, V], n int) (types.Partition[K, V], error) {
	if err := validatePartitionCount(n); err != nil {
		return nil, err
	}

	ordered := AssignToOrderedList(c)
	partition := types.NewPartition[K, V](n)
	for _, m := range ordered {
		partition[lightestBucket(partition)].Assign(m)
	}

	return partition, nil
}

// lightestBucket returns the index of the first bucket with the minimum weight.
func lightestBucket[K cmp.Ordered, V types.Weighted](p types.Partition[K, V]) int {
	lightest := 0
	for i := 1; i < len(p); i++ {
		if p[i].Less(p[lightest]) {
			lightest = i
		}
	}

	return lightest
}

// Balanced implements types.Strategy with CreateBalancedPartition.
type Balanced[K cmp.Ordered, V types.Weighted] struct {
	logger types.Logger
}

var _ types.Strategy[string, types.Weighted] = (*Balanced[string, types.Weighted])(nil)

// NewBalanced creates a new greedy balanced strategy.
//
// Parameters:
//   - log: Logger for partition summaries (no-op if nil)
//
// Returns:
//   - *Balanced[K, V]: Initialized balanced strategy
func NewBalanced[K cmp.Ordered, V types.Weighted](log types.Logger) *Balanced[K, V] {
	if log == nil {
		log = logger.NewNop()
	}

	return &Balanced[K, V]{logger: log}
}

// Name returns "balanced".
func (s *Balanced[K, V]) Name() string {
	return NameBalanced
}

// Partition calculates a weight-balanced partition of the collection.
//
// See CreateBalancedPartition for the algorithm and guarantees.
func (s *Balanced[K, V]) Partition(c types.Collection[K, V], n int) (types.Partition[K, V], error) {
	partition, err := CreateBalancedPartition(c, n)
	if err != nil {
		return nil, err
	}

	s.logger.Debug(
		"balanced partition computed",
		"buckets", partition.Len(),
		"items", partition.Items(),
		"total_weight", partition.TotalWeight(),
		"spread", partition.Spread(),
	)

	return partition, nil
}
