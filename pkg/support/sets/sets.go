// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package sets implements a generic set, used for the candidate sets of the optimizer rewrites.
package sets

// Set of comparable elements, such as variable names or program blocks.
type Set[T comparable] map[T]struct{}

// Make returns an empty Set, with an optional size hint.
func Make[T comparable](size ...int) Set[T] {
	if len(size) == 0 {
		return make(Set[T])
	}
	return make(Set[T], size[0])
}

// Has returns whether e is in the set.
func (s Set[T]) Has(e T) bool {
	_, found := s[e]
	return found
}

// Insert adds the elements to the set.
func (s Set[T]) Insert(elements ...T) {
	for _, e := range elements {
		s[e] = struct{}{}
	}
}

// Remove deletes the elements from the set. Elements not in the set are ignored.
func (s Set[T]) Remove(elements ...T) {
	for _, e := range elements {
		delete(s, e)
	}
}

// Union inserts every element of s2 into s.
func (s Set[T]) Union(s2 Set[T]) {
	for e := range s2 {
		s[e] = struct{}{}
	}
}

