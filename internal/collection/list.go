// Package collection provides an immutable, ordered sequence type.
package collection

import "slices"

// List is an ordered, append-only sequence. Operations that change the
// sequence return a new List; the receiver is never modified, so a List can
// be shared freely between goroutines.
type List[T any] struct {
	items []T
}

// Of returns a List holding items in order.
func Of[T any](items ...T) List[T] {
	return List[T]{items: slices.Clone(items)}
}

// Append returns a new List with v added after the receiver's elements.
func (l List[T]) Append(v T) List[T] {
	items := make([]T, len(l.items), len(l.items)+1)
	copy(items, l.items)
	return List[T]{items: append(items, v)}
}

// Filter returns the elements matching keep, in their original order.
func (l List[T]) Filter(keep func(T) bool) List[T] {
	var items []T
	for _, v := range l.items {
		if keep(v) {
			items = append(items, v)
		}
	}
	return List[T]{items: items}
}

// Len returns the number of elements.
func (l List[T]) Len() int {
	return len(l.items)
}

// First returns the first element, if any.
func (l List[T]) First() (T, bool) {
	if len(l.items) == 0 {
		var zero T
		return zero, false
	}
	return l.items[0], true
}

// Slice returns a copy of the elements.
func (l List[T]) Slice() []T {
	return slices.Clone(l.items)
}

// Each calls fn for every element in order.
func (l List[T]) Each(fn func(T)) {
	for _, v := range l.items {
		fn(v)
	}
}

// Reduce folds the list left to right starting from init.
func Reduce[T, A any](l List[T], init A, fn func(A, T) A) A {
	acc := init
	for _, v := range l.items {
		acc = fn(acc, v)
	}
	return acc
}

// Map returns the result of fn applied to every element, in order.
func Map[T, U any](l List[T], fn func(T) U) []U {
	out := make([]U, 0, len(l.items))
	for _, v := range l.items {
		out = append(out, fn(v))
	}
	return out
}
