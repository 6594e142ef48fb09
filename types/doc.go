// Package types provides core type definitions and interfaces for the balancer library.
//
// This package contains shared types that are used across multiple packages in the
// library. By keeping these types in a separate package, we avoid import cycles
// between the root balancer package, the strategy package and internal implementations.
//
// Key types:
//   - Weighted: Capability of an item to report its weight
//   - Collection: Keyed collection of weighted items
//   - Member: Handle to one item plus the weight observed when it was captured
//   - Bucket: Ordered members plus their cached aggregate weight
//   - Partition: Exactly N buckets produced by one strategy invocation
//   - Strategy: Partitioning algorithm interface
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
