package intmap

import "iter"

// Map is a persistent, sparse map from nonnegative integer keys to values
// of type V. The zero value is not a valid Map; use Empty to obtain one.
//
// Map is a small comparable value (a window descriptor plus an opaque
// root). Two Maps compare equal with == exactly when they denote the same
// tree: in particular every Map that holds nothing compares equal to
// Empty[V](), so callers can check emptiness with a plain == against
// Empty[V]() rather than needing a process-wide singleton cache or a
// pointer receiver — Go's struct equality already gives that comparison
// for free on a value type.
type Map[V comparable] struct {
	min   int
	shift uint
	root  any // absent, a V (iff shift == 0), or *branchNode[V]
}

// Empty returns the canonical empty map for V.
func Empty[V comparable]() Map[V] {
	return Map[V]{root: absent}
}

func single[V comparable](i int, v V) Map[V] {
	return Map[V]{min: i, shift: 0, root: v}
}

// IsEmpty reports whether m holds no bindings.
func (m Map[V]) IsEmpty() bool {
	return isAbsent(m.root)
}

// Len reports the number of bindings in m, in O(1).
func (m Map[V]) Len() int {
	return sizeOf[V](m.root)
}

// refWindowed looks up i in the trie rooted at root, which addresses
// [min, min+2^shift). Shared between Map and Transient.
func refWindowed[V comparable](root any, min int, shift uint, i int) (V, bool) {
	var zero V
	if isAbsent(root) {
		return zero, false
	}
	if !inWindow(i, min, shift) {
		return zero, false
	}
	if shift == 0 {
		return root.(V), true
	}
	node := root
	s := shift
	for s > 0 {
		bn := node.(*branchNode[V])
		d := digit(i, min, s)
		node = bn.children[d]
		s -= branchBits
		if isAbsent(node) {
			return zero, false
		}
	}
	return node.(V), true
}

// Ref returns the value bound to i, and whether it was found.
func (m Map[V]) Ref(i int) (V, bool) {
	return refWindowed[V](m.root, m.min, m.shift, i)
}

// RefFunc returns the value bound to i, or the result of calling notFound
// with i if there is none. A nil notFound causes RefFunc to panic with a
// KeyNotFoundError instead, so a caller that has no sensible fallback value
// can omit notFound rather than writing a handler that only ever panics.
func (m Map[V]) RefFunc(i int, notFound func(int) V) V {
	if v, ok := m.Ref(i); ok {
		return v
	}
	if notFound != nil {
		return notFound(i)
	}
	panic(KeyNotFoundError{Key: i})
}

// MustRef returns the value bound to i, panicking with a KeyNotFoundError
// if there is none.
func (m Map[V]) MustRef(i int) V {
	return m.RefFunc(i, nil)
}

func nextWindowed[V comparable](root any, min int, shift uint, i int) (int, bool) {
	if isAbsent(root) {
		return 0, false
	}
	floor := i + 1
	if floor < min {
		floor = min
	}
	top := min
	if shift > 0 {
		top = min + (1 << shift) - 1
	}
	if floor > top {
		return 0, false
	}
	return nextFrom[V](root, min, shift, floor)
}

func nextFrom[V comparable](node any, min int, shift uint, floor int) (int, bool) {
	if isAbsent(node) {
		return 0, false
	}
	if shift == 0 {
		if min >= floor {
			return min, true
		}
		return 0, false
	}
	n := node.(*branchNode[V])
	childShift := shift - branchBits
	childSpan := 1 << childShift
	start := 0
	if floor > min {
		start = (floor - min) / childSpan
		if start >= branchFactor {
			return 0, false
		}
	}
	for d := start; d < branchFactor; d++ {
		child := n.children[d]
		if isAbsent(child) {
			continue
		}
		childMin := min + d*childSpan
		if k, ok := nextFrom[V](child, childMin, childShift, floor); ok {
			return k, true
		}
	}
	return 0, false
}

func prevWindowed[V comparable](root any, min int, shift uint, i int) (int, bool) {
	if isAbsent(root) {
		return 0, false
	}
	ceiling := i - 1
	if ceiling < min {
		return 0, false
	}
	top := min
	if shift > 0 {
		top = min + (1 << shift) - 1
	}
	if ceiling > top {
		ceiling = top
	}
	return prevFrom[V](root, min, shift, ceiling)
}

func prevFrom[V comparable](node any, min int, shift uint, ceiling int) (int, bool) {
	if isAbsent(node) {
		return 0, false
	}
	if shift == 0 {
		if min <= ceiling {
			return min, true
		}
		return 0, false
	}
	n := node.(*branchNode[V])
	childShift := shift - branchBits
	childSpan := 1 << childShift
	start := branchFactor - 1
	top := min + (1 << shift) - 1
	if ceiling < top {
		off := ceiling - min
		if off < 0 {
			return 0, false
		}
		start = off / childSpan
		if start >= branchFactor {
			start = branchFactor - 1
		}
	}
	for d := start; d >= 0; d-- {
		child := n.children[d]
		if isAbsent(child) {
			continue
		}
		childMin := min + d*childSpan
		if k, ok := prevFrom[V](child, childMin, childShift, ceiling); ok {
			return k, true
		}
	}
	return 0, false
}

// Next returns the smallest key strictly greater than i that is bound in
// m. Pass -1 to find the smallest key in m, since keys are nonnegative.
func (m Map[V]) Next(i int) (int, bool) {
	return nextWindowed[V](m.root, m.min, m.shift, i)
}

// Prev returns the largest key strictly less than i that is bound in m.
func (m Map[V]) Prev(i int) (int, bool) {
	return prevWindowed[V](m.root, m.min, m.shift, i)
}

// Min returns the smallest bound key in m.
func (m Map[V]) Min() (int, bool) {
	return m.Next(-1)
}

// Max returns the largest bound key in m.
func (m Map[V]) Max() (int, bool) {
	if isAbsent(m.root) {
		return 0, false
	}
	top := m.min
	if m.shift > 0 {
		top = m.min + (1 << m.shift) - 1
	}
	return prevFrom[V](m.root, m.min, m.shift, top+1)
}

func foldNode[V comparable, A any](node any, min int, shift uint, f func(int, V, A) A, acc A) A {
	if isAbsent(node) {
		return acc
	}
	if shift == 0 {
		return f(min, node.(V), acc)
	}
	n := node.(*branchNode[V])
	childShift := shift - branchBits
	childSpan := 1 << childShift
	for d := 0; d < branchFactor; d++ {
		child := n.children[d]
		if isAbsent(child) {
			continue
		}
		acc = foldNode[V, A](child, min+d*childSpan, childShift, f, acc)
	}
	return acc
}

// Fold applies f to every (key, value) binding in m in ascending key order,
// threading an accumulator of type A seeded with seed.
func Fold[V comparable, A any](m Map[V], f func(key int, value V, acc A) A, seed A) A {
	return foldNode[V, A](m.root, m.min, m.shift, f, seed)
}

func allNode[V comparable](node any, min int, shift uint, yield func(int, V) bool) bool {
	if isAbsent(node) {
		return true
	}
	if shift == 0 {
		return yield(min, node.(V))
	}
	n := node.(*branchNode[V])
	childShift := shift - branchBits
	childSpan := 1 << childShift
	for d := 0; d < branchFactor; d++ {
		child := n.children[d]
		if isAbsent(child) {
			continue
		}
		if !allNode[V](child, min+d*childSpan, childShift, yield) {
			return false
		}
	}
	return true
}

// All returns an iterator over m's bindings in ascending key order.
func (m Map[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		allNode[V](m.root, m.min, m.shift, yield)
	}
}
