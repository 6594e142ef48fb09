package balancer

import (
	"cmp"

	"github.com/arloliu/balancer/types"
)

// Re-export types from the types package.
//
// The types subpackage holds the actual definitions so that strategy and the
// internal packages can depend on it without importing the root package.
type (
	Member[K cmp.Ordered, V types.Weighted]     = types.Member[K, V]
	Bucket[K cmp.Ordered, V types.Weighted]     = types.Bucket[K, V]
	Partition[K cmp.Ordered, V types.Weighted]  = types.Partition[K, V]
	Collection[K cmp.Ordered, V types.Weighted] = types.Collection[K, V]
	Strategy[K cmp.Ordered, V types.Weighted]   = types.Strategy[K, V]
)

// Re-export interfaces from the types package for convenience.
type (
	Weighted         = types.Weighted
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)
