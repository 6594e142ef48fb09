// Package source provides the built-in weighted collection implementations.
//
// The package includes:
//
//   - Item: Weight holder whose weight can be changed concurrently with readers
//   - Map: Authoritative key-ordered collection of weighted items
//
// Custom collections can be implemented by satisfying the types.Collection interface.
package source
