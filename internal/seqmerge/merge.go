// Package seqmerge independently re-derives union and intersection over
// two ascending (key, value) streams, adapted from merge.Merge's
// iter.Pull-based stream join. It exists purely as a test oracle: intmap's
// Union and Intersect are checked against it on Fold's output, as a
// cross-check independent of the trie implementation they share.
package seqmerge

import "iter"

// Pair is a single (key, value) binding, as produced by intmap.Fold.
type Pair[V any] struct {
	Key int
	Val V
}

// Collect drains an iter.Seq2[int, V] (such as Map.All) into a []Pair.
func Collect[V any](seq iter.Seq2[int, V]) []Pair[V] {
	var out []Pair[V]
	for k, v := range seq {
		out = append(out, Pair[V]{Key: k, Val: v})
	}
	return out
}

// Union walks a and b, both assumed sorted ascending by Key with no
// duplicate keys, and returns every pair in either, reconciling shared
// keys with meet. It panics if either input is found out of order, the
// same defensive check merge.go's stream join makes.
func Union[V any](a, b []Pair[V], meet func(old, new V) (V, error)) ([]Pair[V], error) {
	return join(a, b, meet, true)
}

// Intersect walks a and b the same way Union does, but keeps only keys
// present in both.
func Intersect[V any](a, b []Pair[V], meet func(old, new V) (V, error)) ([]Pair[V], error) {
	return join(a, b, meet, false)
}

func join[V any](a, b []Pair[V], meet func(old, new V) (V, error), keepUnmatched bool) ([]Pair[V], error) {
	checkOrder(a)
	checkOrder(b)

	var out []Pair[V]
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Key < b[j].Key:
			if keepUnmatched {
				out = append(out, a[i])
			}
			i++
		case a[i].Key > b[j].Key:
			if keepUnmatched {
				out = append(out, b[j])
			}
			j++
		default:
			merged, err := meet(a[i].Val, b[j].Val)
			if err != nil {
				return nil, err
			}
			out = append(out, Pair[V]{Key: a[i].Key, Val: merged})
			i++
			j++
		}
	}
	if keepUnmatched {
		out = append(out, a[i:]...)
		out = append(out, b[j:]...)
	}
	return out, nil
}

func checkOrder[V any](s []Pair[V]) {
	for i := 1; i < len(s); i++ {
		if s[i-1].Key >= s[i].Key {
			panic("seqmerge: out of order or duplicate key in input sequence")
		}
	}
}
