package intmap

import (
	"math/bits"

	"github.com/hideo55/go-popcount"
)

// branchBits is the number of key bits a single branch node consumes;
// branchFactor is the resulting fan-out (2^branchBits).
const (
	branchBits   = 5
	branchFactor = 1 << branchBits
)

// absentType is the dynamic type of the absent sentinel. A branch node
// slot, or a whole map's root, holds absent to mean "nothing here".
type absentType struct{}

var absent = &absentType{}

func isAbsent(x any) bool {
	return x == any(absent)
}

// editCell is the one-shot mutable cell a transient's edit token points at.
// A branch node is safe to mutate in place precisely when its edit field is
// the same *editCell pointer as the transient performing the mutation;
// sealing a transient swaps in a fresh cell, which orphans that pointer and
// freezes every node that still refers to it.
type editCell struct {
	owner *Owner
}

// Owner is a capability token identifying the exclusive user of a
// Transient. Callers mint one with NewOwner and must present the same
// pointer to every subsequent operation on the transients it owns.
type Owner struct{ _ bool } // extra field: avoids the zero-size-same-address pitfall

// NewOwner mints a fresh, unique ownership token.
func NewOwner() *Owner {
	return &Owner{}
}

// branchNode is a fixed 32-slot branch of the trie. Each slot holds either
// absent, a value V (when the node's children are leaves, i.e. its shift is
// branchBits), or a *branchNode[V] (when its children are themselves
// branches). presence is a parallel bitmap (bit i set iff slot i isn't
// absent) kept for O(1) population counts; count is the number of non-
// absent leaves anywhere in this node's subtree.
type branchNode[V comparable] struct {
	children [branchFactor]any
	presence uint32
	count    int
	edit     *editCell // nil: frozen/persistent. non-nil: owned by that edit cell.
}

func newBranchNode[V comparable](edit *editCell) *branchNode[V] {
	n := &branchNode[V]{edit: edit}
	for i := range n.children {
		n.children[i] = absent
	}
	return n
}

// clone makes a shallow copy of n stamped with a new edit token (nil for a
// persistent clone).
func (n *branchNode[V]) clone(edit *editCell) *branchNode[V] {
	c := *n
	c.edit = edit
	return &c
}

func sizeOf[V comparable](x any) int {
	if isAbsent(x) {
		return 0
	}
	if bn, ok := x.(*branchNode[V]); ok {
		return bn.count
	}
	return 1
}

// setChild installs v at slot i, deriving the presence/count delta from the
// value currently stored there. Only safe to call on a node that is either
// brand new or a clone the caller exclusively holds: it reads the old slot
// value before overwriting it, so it must not be used to mutate a node that
// other readers might observe mid-update.
func (n *branchNode[V]) setChild(i int, v any) {
	oldSize := sizeOf[V](n.children[i])
	newSize := sizeOf[V](v)
	n.count += newSize - oldSize
	if isAbsent(v) {
		n.presence &^= 1 << uint(i)
	} else {
		n.presence |= 1 << uint(i)
	}
	n.children[i] = v
}

// rawSetChild installs v at slot i with an explicit presence flag and
// leaves count bookkeeping to the caller. Used by the transient in-place
// path, where a child already stored at i may have been mutated through a
// shared pointer, so diffing sizeOf(old) against sizeOf(new) would read a
// stale "old" value.
func (n *branchNode[V]) rawSetChild(i int, v any, present bool) {
	if present {
		n.presence |= 1 << uint(i)
	} else {
		n.presence &^= 1 << uint(i)
	}
	n.children[i] = v
}

func (n *branchNode[V]) childCount() int {
	return popcount.Count(uint64(n.presence))
}

func (n *branchNode[V]) soleChildIndex() int {
	return bits.TrailingZeros32(n.presence)
}

func roundDown(v int, shift uint) int {
	if shift == 0 {
		return v
	}
	mask := (1 << shift) - 1
	return v &^ mask
}

func inWindow(i, min int, shift uint) bool {
	if shift == 0 {
		return i == min
	}
	return i >= min && i < min+(1<<shift)
}

// digit returns which of a branch node's branchFactor children, at the
// given shift, holds the path toward key i. Only meaningful for shift >
// 0 (i.e. for an actual branch node, never a leaf).
func digit(i, min int, shift uint) int {
	return int((i-min)>>(shift-branchBits)) & (branchFactor - 1)
}

// buildChain allocates a fresh subtree, down to a leaf value, storing v at
// key i. Every node it creates is brand new, so it can be stamped directly
// with edit (nil for a persistent chain, the owning transient's cell for a
// transient one) without any copy-on-write concerns.
func buildChain[V comparable](shift uint, i, min int, v V, edit *editCell) any {
	if shift == 0 {
		return v
	}
	n := newBranchNode[V](edit)
	d := digit(i, min, shift)
	n.setChild(d, buildChain[V](shift-branchBits, i, min, v, edit))
	return n
}

// growLevel wraps a map's current root one level deeper, re-aligning the
// window to a multiple of the new, larger shift. Repeated application
// always eventually produces a window containing any nonnegative key,
// since keys are bounded by the machine word: growing enough times drives
// the rounded-down min to 0. It never touches the existing root, so it
// preserves all sharing within it.
func growLevel[V comparable](m Map[V]) Map[V] {
	newShift := m.shift + branchBits
	newMin := roundDown(m.min, newShift)
	n := newBranchNode[V](nil)
	d := digit(m.min, newMin, newShift)
	n.setChild(d, m.root)
	return Map[V]{min: newMin, shift: newShift, root: n}
}

// prune walks down from m's root while it has exactly one non-absent
// child, collapsing the window one level at a time, all the way to a bare
// leaf value if the map holds a single element. It returns the canonical
// Empty map if the root (or any node reached while collapsing) turns out
// to hold nothing.
func prune[V comparable](m Map[V]) Map[V] {
	for {
		if isAbsent(m.root) {
			return Empty[V]()
		}
		if m.shift == 0 {
			return m
		}
		n := m.root.(*branchNode[V])
		switch n.childCount() {
		case 0:
			return Empty[V]()
		case 1:
			d := n.soleChildIndex()
			child := n.children[d]
			newShift := m.shift - branchBits
			newMin := m.min + d*(1<<newShift)
			m = Map[V]{min: newMin, shift: newShift, root: child}
		default:
			return m
		}
	}
}
