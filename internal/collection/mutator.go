package collection

import "slices"

// Mutator is the capability through which a collection's structure is
// changed. It exists only for collections constructed mutable; an immutable
// collection's mutating operations are structurally absent, not
// flag-checked.
//
// Every operation follows the same duplex discipline: apply the mutation to
// the public sequence, invalidate every declared view, apply the identical
// mutation to the raw mirror, and return the mirror primitive's result.
type Mutator[T any] struct {
	c *Collection[T]
}

// Append adds records to the end and returns the new length.
func (m *Mutator[T]) Append(vs ...T) int {
	c := m.c
	c.seq = append(c.seq, vs...)
	c.reg.invalidateAll()
	c.mirror = append(c.mirror, vs...)
	return len(c.mirror)
}

// PushFront inserts records at the front, preserving their given order, and
// returns the new length.
func (m *Mutator[T]) PushFront(vs ...T) int {
	c := m.c
	c.seq = slices.Insert(c.seq, 0, vs...)
	c.reg.invalidateAll()
	c.mirror = slices.Insert(c.mirror, 0, vs...)
	return len(c.mirror)
}

// PopBack removes and returns the last record, or false when empty.
func (m *Mutator[T]) PopBack() (T, bool) {
	c := m.c
	if len(c.mirror) == 0 {
		var zero T
		return zero, false
	}
	c.seq = c.seq[:len(c.seq)-1]
	c.reg.invalidateAll()
	last := c.mirror[len(c.mirror)-1]
	c.mirror = c.mirror[:len(c.mirror)-1]
	return last, true
}

// PopFront removes and returns the first record, or false when empty.
func (m *Mutator[T]) PopFront() (T, bool) {
	c := m.c
	if len(c.mirror) == 0 {
		var zero T
		return zero, false
	}
	c.seq = slices.Delete(c.seq, 0, 1)
	c.reg.invalidateAll()
	first := c.mirror[0]
	c.mirror = slices.Delete(c.mirror, 0, 1)
	return first, true
}

// Splice removes deleteCount records starting at start, inserts items in
// their place, and returns the removed records. A negative start counts
// from the end; start and deleteCount are clamped to the valid range.
func (m *Mutator[T]) Splice(start, deleteCount int, items ...T) []T {
	c := m.c
	start, end := spliceBounds(len(c.mirror), start, deleteCount)

	c.seq = splice(c.seq, start, end, items)
	c.reg.invalidateAll()

	removed := slices.Clone(c.mirror[start:end])
	c.mirror = splice(c.mirror, start, end, items)
	return removed
}

// Reverse reverses the records in place.
func (m *Mutator[T]) Reverse() {
	c := m.c
	slices.Reverse(c.seq)
	c.reg.invalidateAll()
	slices.Reverse(c.mirror)
}

// spliceBounds clamps a splice request to [0, length] and returns the
// half-open removal range.
func spliceBounds(length, start, deleteCount int) (int, int) {
	if start < 0 {
		start += length
	}
	start = min(max(start, 0), length)
	deleteCount = max(deleteCount, 0)
	end := min(start+deleteCount, length)
	return start, end
}

// splice replaces s[start:end] with items in a new backing array.
func splice[T any](s []T, start, end int, items []T) []T {
	out := make([]T, 0, len(s)-(end-start)+len(items))
	out = append(out, s[:start]...)
	out = append(out, items...)
	out = append(out, s[end:]...)
	return out
}
