package btree

// Index is a weak read-only path: cheaper to hold onto than an Iterator
// because it does not need to be recomputed when a tree is merely copied,
// but it becomes invalid the instant the tree it was taken from is mutated.
// Go has no weak references, so validity is approximated by comparing the
// root captured at creation time, by pointer identity, against the root of
// the tree being asked to revalidate against; see DESIGN.md for the
// resulting equality semantics (two invalid indexes always compare equal).
type Index[K any, V any] struct {
	capturedRoot *Node[K, V]
	p            path[K, V]
}

// NewIndex captures a weak path positioned on the element matching key
// under sel.
func NewIndex[K any, V any](root *Node[K, V], cmp Comparator[K], order int, key K, sel Selector) (ix Index[K, V], ok bool) {
	p, found := newPathAtKey(root, cmp, order, key, sel)
	return Index[K, V]{capturedRoot: root, p: p}, found
}

// NewIndexAt captures a weak path positioned on the element at offset pos.
func NewIndexAt[K any, V any](root *Node[K, V], cmp Comparator[K], order int, pos int) Index[K, V] {
	return Index[K, V]{capturedRoot: root, p: newPathAtPosition(root, cmp, order, pos)}
}

// Valid reports whether `root` (the tree's current root) is the same one
// this index was captured against. An Index never revalidates itself
// against a newer incarnation of the tree even if that incarnation happens
// to share the exact subtree the index is positioned in — identity, not
// structural equality, is the contract.
func (ix *Index[K, V]) Valid(root *Node[K, V]) bool {
	return ix.capturedRoot == root && ix.p.valid()
}

// Key and Payload return the captured element. Callers are expected to have
// checked Valid first; calling these on an index invalidated by a later
// mutation still returns the (now possibly stale, but never corrupt) value
// the path was positioned on at capture time, since the nodes it references
// are immutable once built.
func (ix *Index[K, V]) Key() K {
	k, _ := ix.p.current()
	return k
}

func (ix *Index[K, V]) Payload() V {
	_, v := ix.p.current()
	return v
}

func (ix *Index[K, V]) Position() int { return ix.p.position() }

// Equal compares two indexes. Two indexes taken from different incarnations
// of the same logical tree (different capturedRoot) are never equal, even
// if they happen to name the same key, except when both are invalid: all
// invalidated indexes compare equal to each other, since "invalid" carries
// no positional information to distinguish them by.
func (ix *Index[K, V]) Equal(other *Index[K, V], currentRoot *Node[K, V]) bool {
	aValid := ix.Valid(currentRoot)
	bValid := other.Valid(currentRoot)
	if !aValid && !bValid {
		return true
	}
	if aValid != bValid {
		return false
	}
	return ix.p.node == other.p.node && ix.p.slot == other.p.slot
}

// Promote upgrades a (valid) Index into a strong Iterator pinned to the
// current tree's nodes, so further mutation of the tree no longer affects
// it.
func (ix *Index[K, V]) Promote() Iterator[K, V] {
	return Iterator[K, V]{p: ix.p}
}
