package strategy

import (
	"cmp"
	"slices"

	"github.com/arloliu/balancer/types"
)

// AssignToOrderedList returns a member for every item of the collection,
// sorted by weight, heaviest first.
//
// Each item weight is read exactly once, so the returned order and the weights
// stored in the members are consistent even if the items are mutated
// concurrently. The sort is stable: items of equal weight keep collection order,
// which makes repeated calls on unchanged input return identical sequences.
//
// The collection and its items are not modified; members share the items.
//
// Parameters:
//   - c: Collection to order
//
// Returns:
//   - []types.Member[K, V]: Members in non-increasing weight order (empty, not nil, for an empty collection)
//
// Example:
//
//	ordered := strategy.AssignToOrderedList(items)
//	heaviest := ordered[0].Key
func AssignToOrderedList[K cmp.Ordered, V types.Weighted](c types.Collection[K, V]) []types.Member[K, V] {
	ordered := make([]types.Member[K, V], 0, c.Len())
	for key, item := range c.All() {
		ordered = append(ordered, types.NewMember(key, item))
	}

	slices.SortStableFunc(ordered, func(a, b types.Member[K, V]) int {
		return cmp.Compare(b.Weight, a.Weight)
	})

	return ordered
}
