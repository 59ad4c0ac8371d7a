package intmap

// sameness records, for a node produced while combining two subtrees,
// whether the result turned out identical to the 'a' side, the 'b' side,
// or neither — letting the caller reuse a or b wholesale instead of
// returning a freshly built (but equal) node.
type sameness int

const (
	sameNeither sameness = iota
	sameAsA
	sameAsB
)

func unionNode[V comparable](a, b any, min int, shift uint, meet MeetFunc[V]) (any, sameness, error) {
	switch {
	case isAbsent(a):
		return b, sameAsB, nil
	case isAbsent(b):
		return a, sameAsA, nil
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
		allA, allB := true, true
		for d := 0; d < branchFactor; d++ {
			if an.children[d] == bn.children[d] {
				// Both absent, the same leaf value or the same shared
				// subtree: the slot matches a and b alike.
				out.setChild(d, an.children[d])
				continue
			}
			childMin := min + d*childSpan
			cn, same, err := unionNode[V](an.children[d], bn.children[d], childMin, childShift, meet)
			if err != nil {
				var zero any
				return zero, sameNeither, err
			}
			if same != sameAsA {
				allA = false
			}
			if same != sameAsB {
				allB = false
			}
			out.setChild(d, cn)
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

// Union returns a map holding every binding from both a and b. Where both
// maps bind the same key to different values, meet (or DefaultMeet if nil)
// reconciles them; an error from meet aborts the whole operation, returning
// the zero Map and that error.
//
// Union preserves as much structural sharing as possible: if the result
// equals a (every differing subtree resolved in a's favor, which always
// holds when b is empty or a subset of a), it returns a itself, and
// likewise for b; only subtrees that actually combine new information are
// freshly allocated.
func Union[V comparable](a, b Map[V], meet MeetFunc[V]) (Map[V], error) {
	meet = meetOrDefault(meet)

	if isAbsent(a.root) {
		return b, nil
	}
	if isAbsent(b.root) {
		return a, nil
	}

	for a.shift != b.shift {
		if a.shift < b.shift {
			a = growLevel(a)
		} else {
			b = growLevel(b)
		}
	}
	for a.min != b.min {
		a = growLevel(a)
		b = growLevel(b)
	}

	root, same, err := unionNode[V](a.root, b.root, a.min, a.shift, meet)
	if err != nil {
		return Map[V]{}, err
	}
	switch same {
	case sameAsA:
		return a, nil
	case sameAsB:
		return b, nil
	default:
		return Map[V]{min: a.min, shift: a.shift, root: root}, nil
	}
}
