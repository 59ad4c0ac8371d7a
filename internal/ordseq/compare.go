// Package ordseq checks ordering properties of key sequences, the way
// slice.Compare checked two slices for ordering. It backs the tests that
// assert intmap.Fold (and Map.All) visit keys in strictly ascending order.
package ordseq

import "cmp"

// StrictlyIncreasing reports whether s is sorted with no repeated
// elements.
func StrictlyIncreasing[T cmp.Ordered](s []T) bool {
	for i := 1; i < len(s); i++ {
		if cmp.Compare(s[i-1], s[i]) >= 0 {
			return false
		}
	}
	return true
}

// FirstDisorder returns the index of the first element that is not
// strictly greater than its predecessor, or -1 if s is strictly
// increasing. Used to produce a useful test failure message instead of a
// bare "not sorted".
func FirstDisorder[T cmp.Ordered](s []T) int {
	for i := 1; i < len(s); i++ {
		if cmp.Compare(s[i-1], s[i]) >= 0 {
			return i
		}
	}
	return -1
}
