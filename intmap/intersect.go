package intmap

func intersectNode[V comparable](a, b any, min int, shift uint, meet MeetFunc[V]) (any, sameness, error) {
	switch {
	case isAbsent(a):
		return a, sameAsA, nil
	case isAbsent(b):
		return b, sameAsB, nil
	case shift == 0:
		av, bv := a.(V), b.(V)
		if av == bv {
			return a, sameAsA, nil
		}
		merged, err := meet(av, bv)
		if err != nil {
			var zero V
			return zero, sameNeither, err
		}
		return merged, sameNeither, nil
	default:
		an, bn := a.(*branchNode[V]), b.(*branchNode[V])
		childShift := shift - branchBits
		childSpan := 1 << childShift
		out := newBranchNode[V](nil)
		allA, allB, any_ := true, true, false
		for d := 0; d < branchFactor; d++ {
			childMin := min + d*childSpan
			cn, same, err := intersectNode[V](an.children[d], bn.children[d], childMin, childShift, meet)
			if err != nil {
				var zero any
				return zero, sameNeither, err
			}
			if !isAbsent(cn) {
				any_ = true
			}
			if same != sameAsA {
				allA = false
			}
			if same != sameAsB {
				allB = false
			}
			out.setChild(d, cn)
		}
		if !any_ {
			return absent, sameNeither, nil
		}
		switch {
		case allA:
			return a, sameAsA, nil
		case allB:
			return b, sameAsB, nil
		default:
			return out, sameNeither, nil
		}
	}
}

// descendInto descends m one level, into the child whose window covers
// targetMin, reporting false if that slot is absent or targetMin falls
// outside m's window entirely.
func descendInto[V comparable](m Map[V], targetMin int) (Map[V], bool) {
	if !inWindow(targetMin, m.min, m.shift) {
		return Map[V]{}, false
	}
	n := m.root.(*branchNode[V])
	childShift := m.shift - branchBits
	d := digit(targetMin, m.min, m.shift)
	child := n.children[d]
	if isAbsent(child) {
		return Map[V]{}, false
	}
	childMin := m.min + d*(1<<childShift)
	return Map[V]{min: childMin, shift: childShift, root: child}, true
}

// descendSlotZero descends m (whose shift exceeds the other operand's) one
// level into its slot 0, the only slot whose window still covers m.min,
// since keys at or beyond min+2^(shift-branchBits) cannot possibly be in
// the other (shallower-windowed) map.
func descendSlotZero[V comparable](m Map[V]) Map[V] {
	n := m.root.(*branchNode[V])
	childShift := m.shift - branchBits
	child := n.children[0]
	if isAbsent(child) {
		return Map[V]{min: m.min, shift: childShift, root: absent}
	}
	return Map[V]{min: m.min, shift: childShift, root: child}
}

// Intersect returns a map holding only the keys bound in both a and b.
// Where the two maps bind a shared key to different values, meet (or
// DefaultMeet if nil) reconciles them; an error from meet aborts the whole
// operation, returning the zero Map and that error.
//
// The two maps' windows are first reconciled (the wider-windowed side
// descended toward the other's window, or the whole operation short-circuited to
// Empty the moment the windows are provably disjoint) before the trie
// walk proper, and the result is pruned, so an intersection of two
// far-apart maps costs O(shift difference), not O(larger map).
func Intersect[V comparable](a, b Map[V], meet MeetFunc[V]) (Map[V], error) {
	meet = meetOrDefault(meet)

	if isAbsent(a.root) || isAbsent(b.root) {
		return Empty[V](), nil
	}

	for a.min != b.min || a.shift != b.shift {
		if isAbsent(a.root) || isAbsent(b.root) {
			return Empty[V](), nil
		}
		if a.min != b.min {
			lo, hi := a, b
			loIsA := true
			if b.min < a.min {
				lo, hi = b, a
				loIsA = false
			}
			if lo.shift <= hi.shift {
				return Empty[V](), nil
			}
			nlo, ok := descendInto(lo, hi.min)
			if !ok {
				return Empty[V](), nil
			}
			if loIsA {
				a = nlo
			} else {
				b = nlo
			}
			continue
		}
		// mins equal, shifts differ.
		if a.shift > b.shift {
			a = descendSlotZero(a)
		} else {
			b = descendSlotZero(b)
		}
	}

	root, same, err := intersectNode[V](a.root, b.root, a.min, a.shift, meet)
	if err != nil {
		return Map[V]{}, err
	}

	var result Map[V]
	switch same {
	case sameAsA:
		result = a
	case sameAsB:
		result = b
	default:
		result = Map[V]{min: a.min, shift: a.shift, root: root}
	}
	return prune(result), nil
}
