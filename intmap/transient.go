package intmap

// Transient is an ephemeral, single-owner view of an intmap under
// construction. Unlike Map, its operations mutate nodes in place whenever
// they are already owned by its edit token, falling back to a persistent-
// style clone only the first time a given node is touched through this
// handle. Every operation must be presented with the *Owner that created
// (or last sealed) the transient; a mismatch reports ErrOwnershipViolation
// rather than silently corrupting shared state.
type Transient[V comparable] struct {
	min   int
	shift uint
	root  any
	edit  *editCell
}

// ToTransient returns a Transient seeded with src's bindings, owned by
// owner. src itself is never mutated; the transient clones nodes lazily,
// on first write, exactly like a persistent Add would.
func ToTransient[V comparable](src Map[V], owner *Owner) *Transient[V] {
	return &Transient[V]{
		min:   src.min,
		shift: src.shift,
		root:  src.root,
		edit:  &editCell{owner: owner},
	}
}

// Transient returns t unchanged if owner is its current owner, or
// ErrOwnershipViolation otherwise. It exists so that code generic over
// "a source that might already be transient" can call it without a type
// switch; Map's side of that same contract is the package-level
// ToTransient function.
func (t *Transient[V]) Transient(owner *Owner) (*Transient[V], error) {
	if err := t.checkOwner(owner); err != nil {
		return nil, err
	}
	return t, nil
}

// Persistent seals t, returning an immutable Map snapshot of its current
// contents. Every node reachable through t's edit token is frozen in
// place: Persistent rebinds t to a brand-new edit cell, so any later
// Transient.Add on t clones on write exactly as if starting fresh from the
// returned Map, and the nodes now underlying that Map are never mutated
// again through this handle.
func (t *Transient[V]) Persistent(owner *Owner) (Map[V], error) {
	if err := t.checkOwner(owner); err != nil {
		return Map[V]{}, err
	}
	result := Map[V]{min: t.min, shift: t.shift, root: t.root}
	t.edit.owner = nil
	t.edit = &editCell{owner: owner}
	if isAbsent(result.root) {
		return Empty[V](), nil
	}
	return result, nil
}

func (t *Transient[V]) checkOwner(owner *Owner) error {
	if owner == nil || t.edit.owner != owner {
		return ErrOwnershipViolation
	}
	return nil
}

// IsEmpty reports whether t currently holds no bindings. Unlike the other
// Transient operations this needs no owner, since it can't observe or
// change mutable node state — only t's own window fields, which are never
// shared with another handle.
func (t *Transient[V]) IsEmpty() bool {
	return isAbsent(t.root)
}

// Ref returns the value bound to i in t, and whether it was found.
func (t *Transient[V]) Ref(owner *Owner, i int) (V, bool, error) {
	var zero V
	if err := t.checkOwner(owner); err != nil {
		return zero, false, err
	}
	v, ok := refWindowed[V](t.root, t.min, t.shift, i)
	return v, ok, nil
}

// Next returns the smallest key strictly greater than i that is bound in
// t. Pass -1 to find the smallest key in t.
func (t *Transient[V]) Next(owner *Owner, i int) (int, bool, error) {
	if err := t.checkOwner(owner); err != nil {
		return 0, false, err
	}
	k, ok := nextWindowed[V](t.root, t.min, t.shift, i)
	return k, ok, nil
}

// Prev returns the largest key strictly less than i that is bound in t.
func (t *Transient[V]) Prev(owner *Owner, i int) (int, bool, error) {
	if err := t.checkOwner(owner); err != nil {
		return 0, false, err
	}
	k, ok := prevWindowed[V](t.root, t.min, t.shift, i)
	return k, ok, nil
}

// Len reports the number of bindings currently in t.
func (t *Transient[V]) Len(owner *Owner) (int, error) {
	if err := t.checkOwner(owner); err != nil {
		return 0, err
	}
	return sizeOf[V](t.root), nil
}

// FoldTransient applies f to every (key, value) binding in t in ascending
// key order, threading an accumulator of type A seeded with seed. It is a
// free function, like Fold, since Go methods can't introduce the extra
// type parameter A.
func FoldTransient[V comparable, A any](owner *Owner, t *Transient[V], f func(key int, value V, acc A) A, seed A) (A, error) {
	if err := t.checkOwner(owner); err != nil {
		var zero A
		return zero, err
	}
	return foldNode[V, A](t.root, t.min, t.shift, f, seed), nil
}

// growLevelBang grows t's window one level deeper, mirroring growLevel but
// stamping the new wrapping node as owned by t's edit cell, since t
// created it and nothing else can reach it yet.
func (t *Transient[V]) growLevelBang() {
	newShift := t.shift + branchBits
	newMin := roundDown(t.min, newShift)
	n := newBranchNode[V](t.edit)
	d := digit(t.min, newMin, newShift)
	n.rawSetChild(d, t.root, true)
	n.count = sizeOf[V](t.root)
	t.min, t.shift, t.root = newMin, newShift, n
}

// addBangInNode inserts (i, v) into the subtree rooted at n, which the
// caller guarantees is already owned by edit. It clones a child the first
// time it is reached through this edit token, then mutates in place on any
// subsequent call that reaches the same (now-owned) node, and maintains
// each node's count via an explicit delta rather than by diffing against
// the slot's current contents, since an in-place mutation can leave that
// slot already holding the "new" value by the time the diff would run.
func addBangInNode[V comparable](n *branchNode[V], i, min int, shift uint, v V, meet MeetFunc[V], edit *editCell) (int, error) {
	d := digit(i, min, shift)
	child := n.children[d]
	childShift := shift - branchBits

	switch {
	case isAbsent(child):
		n.rawSetChild(d, buildChain[V](childShift, i, min, v, edit), true)
		n.count++
		return 1, nil
	case childShift == 0:
		old := child.(V)
		if old == v {
			return 0, nil
		}
		merged, err := meet(old, v)
		if err != nil {
			return 0, err
		}
		n.rawSetChild(d, merged, true)
		return 0, nil
	default:
		cn := child.(*branchNode[V])
		if cn.edit != edit {
			cn = cn.clone(edit)
			n.rawSetChild(d, cn, true)
		}
		delta, err := addBangInNode(cn, i, min, childShift, v, meet, edit)
		if err != nil {
			return 0, err
		}
		n.count += delta
		return delta, nil
	}
}

// Add binds i to v in t, in place where t already owns the touched nodes
// and via a clone-on-write the first time a node is reached through this
// edit token. Semantics otherwise match Map.Add: a nil meet is replaced
// with DefaultMeet, and an error from meet leaves t unchanged.
func (t *Transient[V]) Add(owner *Owner, i int, v V, meet MeetFunc[V]) error {
	if err := t.checkOwner(owner); err != nil {
		return err
	}
	if i < 0 {
		return ErrInvalidKey
	}
	meet = meetOrDefault(meet)

	if isAbsent(t.root) {
		t.min, t.shift, t.root = i, 0, v
		return nil
	}

	for !inWindow(i, t.min, t.shift) {
		t.growLevelBang()
	}

	if t.shift == 0 {
		old := t.root.(V)
		if old == v {
			return nil
		}
		merged, err := meet(old, v)
		if err != nil {
			return err
		}
		t.min, t.root = i, merged
		return nil
	}

	root := t.root.(*branchNode[V])
	if root.edit != t.edit {
		root = root.clone(t.edit)
		t.root = root
	}
	_, err := addBangInNode(root, i, t.min, t.shift, v, meet, t.edit)
	return err
}
