package source

import (
	"strconv"
	"sync/atomic"

	"github.com/arloliu/balancer/types"
)

// Item is a weighted item whose weight may be updated at any time.
//
// The weight is stored atomically so the control path can change it while
// strategies or reporting code read it from other goroutines.
type Item struct {
	weight atomic.Int64
}

var _ types.Weighted = (*Item)(nil)

// NewItem creates an item with the given initial weight.
func NewItem(weight int64) *Item {
	item := &Item{}
	item.weight.Store(weight)

	return item
}

// Weight returns the current weight.
func (i *Item) Weight() int64 {
	return i.weight.Load()
}

// SetWeight replaces the weight.
//
// Buckets that already hold this item keep the weight captured when they were
// computed; only the next repartition observes the new value.
func (i *Item) SetWeight(weight int64) {
	i.weight.Store(weight)
}

// AddWeight adds delta to the weight and returns the new value.
func (i *Item) AddWeight(delta int64) int64 {
	return i.weight.Add(delta)
}

// String returns the weight in decimal form.
func (i *Item) String() string {
	return strconv.FormatInt(i.Weight(), 10)
}
