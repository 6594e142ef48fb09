package types

import (
	"cmp"
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"
)

// Member is a handle to one item of a collection.
//
// Item is shared with the collection (normally a pointer), so a member never
// dangles. Weight is the item weight observed when the member was captured and
// does not follow later changes to the item.
type Member[K cmp.Ordered, V Weighted] struct {
	Key    K
	Item   V
	Weight int64
}

// NewMember captures an item together with its current weight.
func NewMember[K cmp.Ordered, V Weighted](key K, item V) Member[K, V] {
	return Member[K, V]{Key: key, Item: item, Weight: item.Weight()}
}

// Bucket is one output slot of a Partition.
//
// Weight is the exact sum of the member weights as observed at assignment
// time. It is a snapshot: if an item weight changes later, Weight becomes stale
// until the next repartition.
type Bucket[K cmp.Ordered, V Weighted] struct {
	// Members lists the assigned items in assignment order.
	Members []Member[K, V]

	// Weight is the aggregate weight of Members.
	Weight int64
}

// Assign appends a member and adds its captured weight to the bucket total.
func (b *Bucket[K, V]) Assign(m Member[K, V]) {
	b.Members = append(b.Members, m)
	b.Weight += m.Weight
}

// Clear removes all members and resets the aggregate weight.
func (b *Bucket[K, V]) Clear() {
	b.Members = nil
	b.Weight = 0
}

// Len returns the number of members.
func (b Bucket[K, V]) Len() int {
	return len(b.Members)
}

// Keys returns the member keys in assignment order.
func (b Bucket[K, V]) Keys() []K {
	keys := make([]K, len(b.Members))
	for i, m := range b.Members {
		keys[i] = m.Key
	}

	return keys
}

// Compare orders buckets by aggregate weight only.
//
// Returns:
//   - int: -1 if b is lighter than o, 0 if equal weight, +1 if heavier
func (b Bucket[K, V]) Compare(o Bucket[K, V]) int {
	return cmp.Compare(b.Weight, o.Weight)
}

// Less reports whether b is lighter than o.
func (b Bucket[K, V]) Less(o Bucket[K, V]) bool {
	return b.Weight < o.Weight
}

// Greater reports whether b is heavier than o.
func (b Bucket[K, V]) Greater(o Bucket[K, V]) bool {
	return b.Weight > o.Weight
}

// Equal reports whether both buckets hold the same member keys in the same order.
//
// Aggregate weights are not compared: a bucket whose items only changed weight
// is still the same bucket. Workers use Equal to detect that the bucket they
// hold has been superseded by a newer partition.
func (b Bucket[K, V]) Equal(o Bucket[K, V]) bool {
	if len(b.Members) != len(o.Members) {
		return false
	}

	for i := range b.Members {
		if b.Members[i].Key != o.Members[i].Key {
			return false
		}
	}

	return true
}

// Clone returns a copy of the bucket that shares items but not the member slice.
func (b Bucket[K, V]) Clone() Bucket[K, V] {
	var members []Member[K, V]
	if b.Members != nil {
		members = make([]Member[K, V], len(b.Members))
		copy(members, b.Members)
	}

	return Bucket[K, V]{Members: members, Weight: b.Weight}
}

// Fingerprint returns a 64-bit hash of the ordered member keys.
//
// Equal buckets always share a fingerprint. Each key is length-prefixed so
// that ["ab", "c"] and ["a", "bc"] hash differently. An empty bucket returns 0.
func (b Bucket[K, V]) Fingerprint() uint64 {
	if len(b.Members) == 0 {
		return 0
	}

	h := xxh3.New()
	var scratch []byte
	var prefix [binary.MaxVarintLen64]byte
	for _, m := range b.Members {
		scratch = fmt.Append(scratch[:0], m.Key)
		n := binary.PutUvarint(prefix[:], uint64(len(scratch)))
		_, _ = h.Write(prefix[:n])
		_, _ = h.Write(scratch)
	}

	return h.Sum64()
}
