// Package view provides the three pure view builders (group-by, index-by,
// sort-by) plus key canonicalization and the public-name derivation rule.
//
// Builders are pure reducers over (sequence, key function): they never
// mutate the input sequence and hold no state. Caching and invalidation
// belong to the collection package.
package view

import "slices"

// GroupBy maps each canonical key to the records sharing it, preserving
// each record's relative order within its group.
func GroupBy[T any](seq []T, key KeyFunc[T]) map[string][]T {
	out := make(map[string][]T)
	for _, rec := range seq {
		k := CanonicalKey(key(rec))
		out[k] = append(out[k], rec)
	}
	return out
}

// IndexBy maps each canonical key to a single record. On duplicate keys the
// record latest in sequence order wins. Last-write-wins is an observed
// contract of this builder; callers depend on it, do not change it to
// first-write-wins.
func IndexBy[T any](seq []T, key KeyFunc[T]) map[string]T {
	out := make(map[string]T, len(seq))
	for _, rec := range seq {
		out[CanonicalKey(key(rec))] = rec
	}
	return out
}

// SortBy returns a new slice of seq's records sorted ascending by resolved
// key under CompareKeys. The sort is stable: records with equal keys keep
// their original relative order. The input slice is not modified.
func SortBy[T any](seq []T, key KeyFunc[T]) []T {
	out := slices.Clone(seq)
	slices.SortStableFunc(out, func(a, b T) int {
		return CompareKeys(key(a), key(b))
	})
	return out
}
