// Package testutil provides shared test fixtures and invariant assertions.
//
// Examples of utilities that belong here:
//   - Common test fixtures (collections with well-known weight distributions)
//   - Assertion helpers (coverage, count balance, ordering, greedy bound)
package testutil
