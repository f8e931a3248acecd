package tlist

import (
	"cmp"
	"slices"
)

// The bulk transforms below build entirely fresh lineages. Their outputs
// have no relationship to the input's mutation history, so they skip the
// log machinery: there is nothing to replay against a known-fresh array.
// The input handle itself is only validated, never invalidated; it remains
// usable afterwards.

// Filter returns a new lineage holding the elements satisfying pred, in
// their original order.
func (l *List[T]) Filter(pred func(T) bool) *List[T] {
	c := l.validate()
	out := make([]T, 0, len(c.backing))
	for _, v := range c.backing {
		if pred(v) {
			out = append(out, v)
		}
	}
	return fromOwned(c.bloat, out)
}

// Rev returns a new lineage with the elements in reverse order.
func (l *List[T]) Rev() *List[T] {
	c := l.validate()
	out := slices.Clone(c.backing)
	slices.Reverse(out)
	return fromOwned(c.bloat, out)
}

// SortWith returns a new lineage sorted stably by the comparator: elements
// comparing equal keep their relative order.
func (l *List[T]) SortWith(compare func(a, b T) int) *List[T] {
	c := l.validate()
	out := slices.Clone(c.backing)
	slices.SortStableFunc(out, compare)
	return fromOwned(c.bloat, out)
}

// Map returns a new lineage with mapper applied to each element in order.
func Map[T, U comparable](mapper func(T) U, l *List[T]) *List[U] {
	c := l.validate()
	out := make([]U, len(c.backing))
	for i, v := range c.backing {
		out[i] = mapper(v)
	}
	return fromOwned(c.bloat, out)
}

// Fold left-folds folder over a snapshot of the list.
func Fold[T comparable, S any](folder func(S, T) S, seed S, l *List[T]) (S, *List[T]) {
	snap, c := l.Slice()
	acc := seed
	for _, v := range snap {
		acc = folder(acc, v)
	}
	return acc, c
}

// SortBy returns a new lineage sorted stably by the key function.
func SortBy[T comparable, K cmp.Ordered](key func(T) K, l *List[T]) *List[T] {
	return l.SortWith(func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	})
}

// Sort returns a new lineage sorted stably by the natural element order.
func Sort[T cmp.Ordered](l *List[T]) *List[T] {
	return l.SortWith(cmp.Compare[T])
}

// Concat flattens a list of lists into a new lineage, outer order first,
// inner order within each.
func Concat[T comparable](lists *List[*List[T]]) *List[T] {
	c := lists.validate()
	var out []T
	for _, inner := range c.backing {
		s, _ := inner.Slice()
		out = append(out, s...)
	}
	return fromOwned(c.bloat, out)
}

// Definitize returns a new lineage holding the dereferenced non-nil
// elements of a list of pointers, in order.
func Definitize[T comparable](l *List[*T]) *List[T] {
	c := l.validate()
	out := make([]T, 0, len(c.backing))
	for _, p := range c.backing {
		if p != nil {
			out = append(out, *p)
		}
	}
	return fromOwned(c.bloat, out)
}
