package types

import (
	"cmp"
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Partition is the ordered set of buckets produced by one strategy invocation.
//
// A partition is value data: repartitioning never mutates an existing
// partition, it produces a new one. Every item present in the collection at
// computation time appears in exactly one bucket.
type Partition[K cmp.Ordered, V Weighted] []Bucket[K, V]

// NewPartition returns n empty buckets.
func NewPartition[K cmp.Ordered, V Weighted](n int) Partition[K, V] {
	return make(Partition[K, V], n)
}

// Len returns the number of buckets.
func (p Partition[K, V]) Len() int {
	return len(p)
}

// Items returns the total number of members across all buckets.
func (p Partition[K, V]) Items() int {
	total := 0
	for _, b := range p {
		total += b.Len()
	}

	return total
}

// Weights returns the aggregate weight of every bucket, by bucket index.
func (p Partition[K, V]) Weights() []int64 {
	weights := make([]int64, len(p))
	for i, b := range p {
		weights[i] = b.Weight
	}

	return weights
}

// TotalWeight returns the sum of all bucket weights.
func (p Partition[K, V]) TotalWeight() int64 {
	var total int64
	for _, b := range p {
		total += b.Weight
	}

	return total
}

// Spread returns the difference between the heaviest and lightest bucket weight.
//
// Returns 0 for an empty partition.
func (p Partition[K, V]) Spread() int64 {
	if len(p) == 0 {
		return 0
	}

	lo, hi := p[0].Weight, p[0].Weight
	for _, b := range p[1:] {
		lo = min(lo, b.Weight)
		hi = max(hi, b.Weight)
	}

	return hi - lo
}

// Equal reports whether both partitions have the same number of buckets and
// every bucket index holds the same members in the same order.
func (p Partition[K, V]) Equal(o Partition[K, V]) bool {
	if len(p) != len(o) {
		return false
	}

	for i := range p {
		if !p[i].Equal(o[i]) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of the bucket layout; items are shared.
func (p Partition[K, V]) Clone() Partition[K, V] {
	if p == nil {
		return nil
	}

	out := make(Partition[K, V], len(p))
	for i, b := range p {
		out[i] = b.Clone()
	}

	return out
}

// Fingerprint folds the bucket fingerprints, in bucket order, into one hash.
func (p Partition[K, V]) Fingerprint() uint64 {
	var buf [8]byte
	h := xxh3.New()
	for _, b := range p {
		binary.LittleEndian.PutUint64(buf[:], b.Fingerprint())
		_, _ = h.Write(buf[:])
	}

	return h.Sum64()
}
