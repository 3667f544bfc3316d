package btree

import "github.com/attaswift/BTree-sub001/maybe"

// Tree is the public, persistent B-tree handle. The zero value has no root,
// order or comparator and is not usable; construct one with New.
type Tree[K any, V any] struct {
	root  *Node[K, V]
	cmp   Comparator[K]
	order int
}

// Option configures a Tree at construction time.
type Option[K any, V any] func(Tree[K, V]) Tree[K, V]

// Degree sets the tree's order (maximum children per node) explicitly.
func Degree[K any, V any](order int) Option[K, V] {
	return func(t Tree[K, V]) Tree[K, V] {
		assertThat(order >= 3, "Degree: order must be at least 3, got %d", order)
		t.order = order
		return t
	}
}

// WithComparator overrides the tree's key comparator.
func WithComparator[K any, V any](cmp Comparator[K]) Option[K, V] {
	return func(t Tree[K, V]) Tree[K, V] {
		t.cmp = cmp
		return t
	}
}

// New returns an empty tree, applying the given Options over the default
// order DefaultOrder[K](). There is no default comparator: one must be
// supplied with WithComparator, and New panics (via assertThat) without it.
func New[K any, V any](opts ...Option[K, V]) Tree[K, V] {
	t := Tree[K, V]{order: DefaultOrder[K](), root: newEmptyNode[K, V]()}
	for _, opt := range opts {
		t = opt(t)
	}
	assertThat(t.cmp != nil, "btree.New: no Comparator supplied")
	return t
}

func (t Tree[K, V]) Len() int { return t.root.count }

func (t Tree[K, V]) IsEmpty() bool { return t.root.isEmpty() }

// Get looks up key, disambiguating duplicates with sel, and returns its
// payload wrapped in a Maybe.
func (t Tree[K, V]) Get(key K, sel Selector) maybe.Maybe[V] {
	it, ok := NewIterator(t.root, t.cmp, t.order, key, sel)
	if !ok {
		return maybe.Nothing[V]()
	}
	return maybe.Just(it.Payload())
}

// Contains reports whether key is present.
func (t Tree[K, V]) Contains(key K) bool {
	_, ok := NewIterator(t.root, t.cmp, t.order, key, Any)
	return ok
}

// IndexOf returns the in-order position of key under sel, if present.
func (t Tree[K, V]) IndexOf(key K, sel Selector) (int, bool) {
	it, ok := NewIterator(t.root, t.cmp, t.order, key, sel)
	if !ok {
		return 0, false
	}
	return it.Position(), true
}

// ElementAt returns the element at absolute in-order offset pos.
func (t Tree[K, V]) ElementAt(pos int) (K, V) {
	it := NewIteratorAt(t.root, t.cmp, t.order, pos)
	return it.Key(), it.Payload()
}

// InsertOrReplace inserts key/val, replacing the payload of an existing
// matching element under sel (Any meaning: replace whichever occurrence is
// cheapest to reach) or inserting a new element if none matches. Returns
// the updated tree and whether an existing element was replaced.
func (t Tree[K, V]) InsertOrReplace(key K, val V, sel Selector) (Tree[K, V], bool) {
	c, found := OpenCursor(t.root, t.cmp, t.order, key, sel)
	tracer().Debugf("insertOrReplace: key=%v found=%v", key, found)
	if found {
		c.SetPayload(val)
	} else {
		c.InsertBefore(key, val)
	}
	t.root = c.Finish()
	tracer().Debugf("insertOrReplace: new root = %s", t.root)
	return t, found
}

// Remove deletes the element matching key under sel, if any.
func (t Tree[K, V]) Remove(key K, sel Selector) (Tree[K, V], maybe.Maybe[V]) {
	c, found := OpenCursor(t.root, t.cmp, t.order, key, sel)
	if !found {
		tracer().Debugf("remove: key=%v not found", key)
		return t, maybe.Nothing[V]()
	}
	_, v := c.Remove()
	t.root = c.Finish()
	tracer().Debugf("remove: key=%v, new root = %s", key, t.root)
	return t, maybe.Just(v)
}

// RemoveAt deletes the element at absolute offset pos.
func (t Tree[K, V]) RemoveAt(pos int) (Tree[K, V], K, V) {
	c := OpenCursorAt(t.root, t.cmp, t.order, pos)
	k, v := c.Remove()
	t.root = c.Finish()
	return t, k, v
}

// InsertAt inserts val as the new element at absolute offset pos, shifting
// every element from pos onward one position later. pos may equal t.Len()
// to append.
func (t Tree[K, V]) InsertAt(pos int, key K, val V) Tree[K, V] {
	assertThat(pos >= 0 && pos <= t.root.count, "InsertAt: position %d out of range for %d elements", pos, t.root.count)
	if t.root.isEmpty() {
		owner := newOwnerTag()
		leaf := &Node[K, V]{owner: owner}
		c := Cursor[K, V]{owner: owner, cmp: t.cmp, order: t.order, node: leaf}
		c.InsertBefore(key, val)
		t.root = c.Finish()
		return t
	}
	if pos == t.root.count {
		c := OpenCursorAt(t.root, t.cmp, t.order, pos-1)
		c.InsertAfter(key, val)
		t.root = c.Finish()
		return t
	}
	c := OpenCursorAt(t.root, t.cmp, t.order, pos)
	if c.node.isLeaf() {
		c.InsertBefore(key, val)
	} else {
		// The element at pos lives in an internal node; its in-order
		// predecessor is the last element of a leaf, so insert after that.
		c = OpenCursorAt(t.root, t.cmp, t.order, pos-1)
		c.InsertAfter(key, val)
	}
	t.root = c.Finish()
	return t
}

// SetPayloadAt replaces the payload of the element at absolute offset pos.
func (t Tree[K, V]) SetPayloadAt(pos int, val V) Tree[K, V] {
	c := OpenCursorAt(t.root, t.cmp, t.order, pos)
	c.SetPayload(val)
	t.root = c.Finish()
	return t
}

// Iterate returns a strong read-only iterator positioned at the start of
// the tree.
func (t Tree[K, V]) Iterate() Iterator[K, V] {
	return firstIterator(t.root, t.cmp, t.order)
}

// IterateFrom returns a strong read-only iterator positioned on key.
func (t Tree[K, V]) IterateFrom(key K, sel Selector) (Iterator[K, V], bool) {
	return NewIterator(t.root, t.cmp, t.order, key, sel)
}

// IterateAt returns a strong read-only iterator positioned at offset pos.
func (t Tree[K, V]) IterateAt(pos int) Iterator[K, V] {
	return NewIteratorAt(t.root, t.cmp, t.order, pos)
}

// IndexFrom returns a weak read-only index positioned on key.
func (t Tree[K, V]) IndexFrom(key K, sel Selector) (Index[K, V], bool) {
	return NewIndex(t.root, t.cmp, t.order, key, sel)
}

// SubtreeRange returns the subtree spanning the keys between lo and hi, as
// a standalone tree sharing structure with t; loBound and hiBound decide
// whether lo and hi themselves are included.
func (t Tree[K, V]) SubtreeRange(lo K, loBound Bound, hi K, hiBound Bound) Tree[K, V] {
	sub := subtreeBetween(t.root, t.cmp, t.order, lo, loBound, hi, hiBound)
	return Tree[K, V]{root: sub, cmp: t.cmp, order: t.order}
}

// SubtreeOffsetRange returns the subtree spanning absolute offsets [lo, hi).
func (t Tree[K, V]) SubtreeOffsetRange(lo, hi int) Tree[K, V] {
	sub := subtreeByOffset(t.root, t.cmp, t.order, lo, hi)
	return Tree[K, V]{root: sub, cmp: t.cmp, order: t.order}
}

// CompareFunc exposes the tree's comparator, so collaborators (ordmap,
// ordlist, Merger callers) can build a compatible Tree around a derived
// root without having to remember the original Option values.
func (t Tree[K, V]) CompareFunc() Comparator[K] { return t.cmp }

// Order exposes the tree's configured order.
func (t Tree[K, V]) Order() int { return t.order }

// Root exposes the underlying node for package-internal collaborators
// (ordmap, ordlist, Merger) that need to build a Tree around an already
// constructed root without re-deriving one through the public API.
func (t Tree[K, V]) Root() *Node[K, V] { return t.root }

// FromRoot builds a Tree handle around an existing, already-balanced root
// (as produced by a Builder or Merger), sharing its nodes.
func FromRoot[K any, V any](root *Node[K, V], cmp Comparator[K], order int) Tree[K, V] {
	if root == nil {
		root = newEmptyNode[K, V]()
	}
	return Tree[K, V]{root: root, cmp: cmp, order: order}
}

// Dump renders the tree's structure for debugging (see dump.go).
func (t Tree[K, V]) Dump() string {
	return dumpNode(t.root)
}
