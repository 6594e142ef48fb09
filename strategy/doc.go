// Package strategy provides the built-in partitioning strategies.
//
// A strategy assigns every item of a weighted collection to exactly one of N
// buckets. The package includes two strategies:
//
//   - Balanced: Longest-Processing-Time-first greedy assignment (recommended for weighted items)
//   - Flat: Round-robin assignment in collection order (count balanced, weight blind)
//
// # Strategy Selection Guide
//
// Balanced:
//   - Use when items have significantly different weights
//   - Sorts items heaviest first and puts each one on the currently lightest bucket
//   - Heaviest bucket is at most 4/3 - 1/(3N) times the optimum for non-negative weights
//   - Deterministic: ties between equal weights keep collection order, ties between
//     equally light buckets go to the lowest bucket index
//
// Flat:
//   - Use as a cheap baseline or before weights are known
//   - Bucket sizes differ by at most one item
//   - Weight balance is not guaranteed
//
// The package-level functions AssignToOrderedList, CreateBalancedPartition and
// CreateFlatPartition are the stateless building blocks; Balanced and Flat wrap
// them as types.Strategy values with logging. Custom strategies can be
// implemented by satisfying the types.Strategy interface.
package strategy
