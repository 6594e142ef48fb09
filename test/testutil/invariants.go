package testutil

import (
	"cmp"
	"testing"

	"github.com/arloliu/balancer/types"
)

// AssertCoverage verifies that every key of the collection appears in exactly
// one bucket of the partition and that the partition holds no other keys.
//
// Parameters:
//   - t: testing handle
//   - p: partition under test
//   - c: collection the partition was computed from
func AssertCoverage[K cmp.Ordered, V types.Weighted](t testing.TB, p types.Partition[K, V], c types.Collection[K, V]) {
	t.Helper()

	seen := make(map[K]int, c.Len())
	for i, bucket := range p {
		for _, m := range bucket.Members {
			if prev, ok := seen[m.Key]; ok {
				t.Fatalf("key %v assigned to bucket %d and bucket %d", m.Key, prev, i)
			}
			seen[m.Key] = i
		}
	}

	for key := range c.All() {
		if _, ok := seen[key]; !ok {
			t.Fatalf("key %v is not assigned to any bucket", key)
		}
		delete(seen, key)
	}

	for key, bucket := range seen {
		t.Fatalf("bucket %d holds key %v which is not in the collection", bucket, key)
	}
}

// AssertCountBalanced verifies that bucket sizes differ by at most one.
func AssertCountBalanced[K cmp.Ordered, V types.Weighted](t testing.TB, p types.Partition[K, V]) {
	t.Helper()

	if len(p) == 0 {
		return
	}

	lo, hi := p[0].Len(), p[0].Len()
	for _, bucket := range p[1:] {
		lo = min(lo, bucket.Len())
		hi = max(hi, bucket.Len())
	}

	if hi-lo > 1 {
		t.Fatalf("bucket sizes differ by %d (min %d, max %d)", hi-lo, lo, hi)
	}
}

// AssertNonIncreasing verifies that members are ordered heaviest first.
func AssertNonIncreasing[K cmp.Ordered, V types.Weighted](t testing.TB, members []types.Member[K, V]) {
	t.Helper()

	for i := 1; i < len(members); i++ {
		if members[i].Weight > members[i-1].Weight {
			t.Fatalf("member %d (%v, weight %d) is heavier than member %d (%v, weight %d)",
				i, members[i].Key, members[i].Weight, i-1, members[i-1].Key, members[i-1].Weight)
		}
	}
}

// AssertWeightsConsistent verifies that every bucket weight equals the sum of
// the captured weights of its members.
func AssertWeightsConsistent[K cmp.Ordered, V types.Weighted](t testing.TB, p types.Partition[K, V]) {
	t.Helper()

	for i, bucket := range p {
		var sum int64
		for _, m := range bucket.Members {
			sum += m.Weight
		}
		if sum != bucket.Weight {
			t.Fatalf("bucket %d weight %d does not match member sum %d", i, bucket.Weight, sum)
		}
	}
}

// AssertGreedyBound verifies the greedy invariant of the balanced strategy:
// when a bucket received its last member it was the lightest bucket, so its
// weight before that member cannot exceed the final weight of any other bucket.
//
// Requires non-negative weights.
func AssertGreedyBound[K cmp.Ordered, V types.Weighted](t testing.TB, p types.Partition[K, V]) {
	t.Helper()

	for i, bucket := range p {
		if bucket.Len() == 0 {
			continue
		}

		before := bucket.Weight - bucket.Members[bucket.Len()-1].Weight
		for j, other := range p {
			if i != j && before > other.Weight {
				t.Fatalf("bucket %d weighed %d before its last member, more than bucket %d final weight %d",
					i, before, j, other.Weight)
			}
		}
	}
}
