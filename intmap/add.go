package intmap

// addInNode inserts (i, v) into the subtree rooted at n, which covers
// [min, min+2^shift). It always clones the nodes on the path it changes,
// leaving n and its other children untouched, and returns the unchanged n
// itself (not a clone) when the insertion is a true no-op (identical value
// already bound).
func addInNode[V comparable](n *branchNode[V], i, min int, shift uint, v V, meet MeetFunc[V]) (*branchNode[V], bool, error) {
	d := digit(i, min, shift)
	child := n.children[d]
	childShift := shift - branchBits

	var newChild any
	switch {
	case isAbsent(child):
		newChild = buildChain[V](childShift, i, min, v, nil)
	case childShift == 0:
		old := child.(V)
		if old == v {
			return n, false, nil
		}
		merged, err := meet(old, v)
		if err != nil {
			return n, false, err
		}
		newChild = merged
	default:
		cn := child.(*branchNode[V])
		nc, changed, err := addInNode(cn, i, min, childShift, v, meet)
		if err != nil {
			return n, false, err
		}
		if !changed {
			return n, false, nil
		}
		newChild = nc
	}

	clone := n.clone(nil)
	clone.setChild(d, newChild)
	return clone, true, nil
}

// Add returns a map like m but with i bound to v. If i is already bound to
// a different value, meet (or DefaultMeet if meet is nil) reconciles the
// two; if it errors, Add returns m unchanged along with that error. Add
// never mutates m: every node on the path to the change is cloned, and
// every node off that path is shared with m.
func (m Map[V]) Add(i int, v V, meet MeetFunc[V]) (Map[V], error) {
	if i < 0 {
		return m, ErrInvalidKey
	}
	meet = meetOrDefault(meet)

	if isAbsent(m.root) {
		return single(i, v), nil
	}

	for !inWindow(i, m.min, m.shift) {
		m = growLevel(m)
	}

	if m.shift == 0 {
		old := m.root.(V)
		if old == v {
			return m, nil
		}
		merged, err := meet(old, v)
		if err != nil {
			return m, err
		}
		return Map[V]{min: i, shift: 0, root: merged}, nil
	}

	newRoot, changed, err := addInNode(m.root.(*branchNode[V]), i, m.min, m.shift, v, meet)
	if err != nil {
		return m, err
	}
	if !changed {
		return m, nil
	}
	return Map[V]{min: m.min, shift: m.shift, root: newRoot}, nil
}
