package strategy

import (
	"cmp"

	"github.com/arloliu/balancer/internal/logger"
	"github.com/arloliu/balancer/types"
)

// NameFlat is the configuration name of the Flat strategy.
const NameFlat = "flat"

// CreateFlatPartition distributes the collection over n buckets in round-robin
// fashion: the i-th item in collection order goes to bucket i mod n.
//
// Weights are ignored for placement but still summed into each bucket, so the
// result reports how unbalanced a count-balanced split is.
//
// Parameters:
//   - c: Collection to partition
//   - n: Number of buckets (must be >= 1)
//
// Returns:
//   - types.Partition[K, V]: Exactly n buckets whose sizes differ by at most one
//   - error: types.ErrInvalidArgument if n < 1
func CreateFlatPartition[K cmp.Ordered, V types.Weighted](c types.Collection[K, V], n int) (types.Partition[K, V], error) {
	if err := validatePartitionCount(n); err != nil {
		return nil, err
	}

	partition := types.NewPartition[K, V](n)
	i := 0
	for key, item := range c.All() {
		partition[i%n].Assign(types.NewMember(key, item))
		i++
	}

	return partition, nil
}

// Flat implements types.Strategy with CreateFlatPartition.
type Flat[K cmp.Ordered, V types.Weighted] struct {
	logger types.Logger
}

var _ types.Strategy[string, types.Weighted] = (*Flat[string, types.Weighted])(nil)

// NewFlat creates a new round-robin strategy.
//
// Parameters:
//   - log: Logger for partition summaries (no-op if nil)
//
// Returns:
//   - *Flat[K, V]: Initialized flat strategy
func NewFlat[K cmp.Ordered, V types.Weighted](log types.Logger) *Flat[K, V] {
	if log == nil {
		log = logger.NewNop()
	}

	return &Flat[K, V]{logger: log}
}

// Name returns "flat".
func (s *Flat[K, V]) Name() string {
	return NameFlat
}

// Partition calculates a count-balanced partition of the collection.
func (s *Flat[K, V]) Partition(c types.Collection[K, V], n int) (types.Partition[K, V], error) {
	partition, err := CreateFlatPartition(c, n)
	if err != nil {
		return nil, err
	}

	s.logger.Debug(
		"flat partition computed",
		"buckets", partition.Len(),
		"items", partition.Items(),
		"spread", partition.Spread(),
	)

	return partition, nil
}
