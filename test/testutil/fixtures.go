package testutil

import (
	"strconv"

	"github.com/arloliu/balancer/internal/weightgen"
	"github.com/arloliu/balancer/source"
)

// ItemsFromWeights builds a collection keyed "1".."n" from a weight slice.
func ItemsFromWeights(weights []int64) *source.Map[string, *source.Item] {
	m := source.NewMap[string, *source.Item]()
	for i, w := range weights {
		m.Set(strconv.Itoa(i+1), source.NewItem(w))
	}

	return m
}

// ParabolaItems returns n items keyed "1".."n" with weights i²-8i+113.
//
// For n = 13 the weights range from 97 to 161 and the balanced 5-way
// partition has bucket weights [262 247 336 326 324].
func ParabolaItems(n int) *source.Map[string, *source.Item] {
	return ItemsFromWeights(weightgen.NewParabola().Generate(n))
}

// UnitItems returns n items keyed "1".."n" with weight 1.
func UnitItems(n int) *source.Map[string, *source.Item] {
	return ItemsFromWeights(weightgen.NewUniform(1).Generate(n))
}
