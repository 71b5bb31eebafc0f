package metadata

import (
	"slices"
)

// Set is an unordered collection of distinct string-like values.
// Iteration through Sorted is deterministic (byte-wise lexical order).
// The zero value is an empty set ready for reads; use NewSet or Add on a
// non-nil set to insert.
type Set[T ~string] map[T]struct{}

// StringSet holds match patterns, include/exclude patterns and URLs.
type StringSet = Set[string]

// GrantSet holds grants.
type GrantSet = Set[Grant]

// NewSet builds a set from the given members, dropping duplicates.
func NewSet[T ~string](members ...T) Set[T] {
	s := make(Set[T], len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

// NewGrantSet builds a grant set from the given grants.
func NewGrantSet(grants ...Grant) GrantSet {
	return NewSet(grants...)
}

// Add inserts members into the set.
func (s Set[T]) Add(members ...T) {
	for _, m := range members {
		s[m] = struct{}{}
	}
}

// Has reports whether m is a member.
func (s Set[T]) Has(m T) bool {
	_, ok := s[m]
	return ok
}

// Len returns the number of members.
func (s Set[T]) Len() int { return len(s) }

// Clone returns an independent copy. Cloning a nil set yields an empty,
// non-nil set.
func (s Set[T]) Clone() Set[T] {
	out := make(Set[T], len(s))
	for m := range s {
		out[m] = struct{}{}
	}
	return out
}

// Equal reports whether both sets have the same members.
func (s Set[T]) Equal(other Set[T]) bool {
	if len(s) != len(other) {
		return false
	}
	for m := range s {
		if _, ok := other[m]; !ok {
			return false
		}
	}
	return true
}

// Union returns a new set holding the members of s and all others.
func (s Set[T]) Union(others ...Set[T]) Set[T] {
	out := s.Clone()
	for _, o := range others {
		for m := range o {
			out[m] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members in lexical order.
func (s Set[T]) Sorted() []T {
	out := make([]T, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

// Strings returns the members as plain strings in lexical order.
func (s Set[T]) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, m := range sorted {
		out[i] = string(m)
	}
	return out
}
