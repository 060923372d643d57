// Package collection implements a self-indexing ordered collection: a
// sequence of records that maintains named derived views (group-by,
// index-by, order-by a dotted path) over its content.
//
// ARCHITECTURE:
//
// Lazy Invalidation:
// Views are never maintained incrementally. Every structural mutation
// invalidates every declared view's cache; the next read of a view
// recomputes it whole from the current content and caches the result.
// Laziness pays off when several mutations land between reads (a bulk
// append would otherwise rebuild the same group/sort repeatedly), and
// whole recomputation makes a cached value correct by construction.
// Invalidation is deliberately coarse - all views, not just affected
// ones - because per-path change detection is not worth its complexity
// for resident datasets.
//
// Duplexed Mutations:
// The collection keeps two sequences in lockstep: the public sequence
// that Len/At/All read, and the raw mirror that views are computed from
// and that MarshalJSON serializes. Each mutating operation applies the
// mutation to both and returns the mirror primitive's result. Between
// completed operations the two are identical in length, content and
// order.
//
// Structural Immutability:
// Mutations live on the Mutator capability, granted by New only when the
// configuration is mutable. On an immutable collection the mutating
// operations do not exist as callable capabilities; there is no per-call
// immutability check to forget.
//
// The collection is single-threaded: mutation-then-invalidation is two
// steps, and a view read mutates cache state. Callers in concurrent hosts
// must impose external exclusion; a read racing a mutation is undefined.
package collection
