package intmap

// removeInNode clears the slot holding key i from the subtree rooted at n,
// cloning the path to the change. It reports false (leaving n untouched)
// if i has no binding under n.
func removeInNode[V comparable](n *branchNode[V], i, min int, shift uint) (*branchNode[V], bool) {
	d := digit(i, min, shift)
	child := n.children[d]
	if isAbsent(child) {
		return n, false
	}
	childShift := shift - branchBits

	var newChild any
	if childShift == 0 {
		newChild = absent
	} else {
		cn := child.(*branchNode[V])
		nc, changed := removeInNode(cn, i, min, childShift)
		if !changed {
			return n, false
		}
		newChild = nc
		if nc.count == 0 {
			newChild = absent
		}
	}

	clone := n.clone(nil)
	clone.setChild(d, newChild)
	return clone, true
}

// Remove returns a map like m but with any binding for i removed. It
// returns m itself, unchanged, if i had no binding. After removing a key
// the window is passed through prune, which collapses it back down as far
// as the remaining keys allow, so repeated add/remove pairs don't leave the
// window permanently inflated.
func (m Map[V]) Remove(i int) Map[V] {
	if isAbsent(m.root) {
		return m
	}
	if m.shift == 0 {
		if m.min == i {
			return Empty[V]()
		}
		return m
	}
	if !inWindow(i, m.min, m.shift) {
		return m
	}
	newRoot, changed := removeInNode(m.root.(*branchNode[V]), i, m.min, m.shift)
	if !changed {
		return m
	}
	return prune(Map[V]{min: m.min, shift: m.shift, root: newRoot})
}
