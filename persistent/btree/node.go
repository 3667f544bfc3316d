package btree

import (
	"fmt"
	"strings"
	"unsafe"
)

// ownerTag is an opaque mutation-session marker. A Node is uniquely owned
// by a session (a live Cursor) iff its owner field is identical,
// by pointer, to that session's tag. Grounded in the copy-on-write node of
// tidwall/btree (see DESIGN.md): a single allocation shared by every node a
// session has already cloned lets later edits in the same session mutate a
// node in place instead of cloning it again on every step.
type ownerTag struct{ _ int }

func newOwnerTag() *ownerTag { return &ownerTag{} }

// Node is a fixed-order B-tree node. Leaves have no children; internal
// nodes always have len(children) == len(keys)+1. Nodes are reference-
// counted only in the sense that Go's GC keeps a node alive for as long as
// some tree (root) or path holds a pointer to it — no tree ever mutates a
// node it does not uniquely own (see ownerTag above).
type Node[K any, V any] struct {
	keys     []K
	payloads []V
	children []*Node[K, V] // nil/len-0 for a leaf
	count    int           // elements in the subtree rooted at this node
	depth    int           // 0 for leaves; children[0].depth+1 otherwise
	owner    *ownerTag
}

// --- construction ------------------------------------------------------

func newEmptyNode[K any, V any]() *Node[K, V] {
	return &Node[K, V]{}
}

func newLeafOf[K any, V any](key K, val V) *Node[K, V] {
	return &Node[K, V]{keys: []K{key}, payloads: []V{val}, count: 1}
}

// isEmpty reports whether n represents the empty subtree: no elements and
// no children. Both a nil pointer and a zero-value *Node count as empty, so
// join-family helpers can be handed either without a special nil check at
// every call site.
func (n *Node[K, V]) isEmpty() bool {
	return n == nil || (len(n.keys) == 0 && len(n.children) == 0)
}

func (n *Node[K, V]) isLeaf() bool {
	return len(n.children) == 0
}

func (n *Node[K, V]) overfull(order int) bool {
	return len(n.keys) > maxKeys(order)
}

func (n *Node[K, V]) underfull(order int) bool {
	return len(n.keys) < minKeys(order)
}

func maxKeys(order int) int      { return order - 1 }
func minChildren(order int) int  { return (order + 1) / 2 }
func minKeys(order int) int      { return minChildren(order) - 1 }
func defaultOrderFor(sz int) int { // sz = size in bytes of one key
	if sz <= 0 {
		sz = 1
	}
	o := 8191 / sz
	if o < 32 {
		o = 32
	}
	return o
}

// DefaultOrder returns the recommended order for a B-tree keyed by K:
// max(floor(8191/sizeof(K)), 32), mirroring the original engine's
// recommendation. It is only an estimate for non-fixed-size key types
// (strings, interfaces): unsafe.Sizeof reports the size of the header, not
// of any pointed-to data, which is the same approximation virtually every
// Go container taking this approach makes.
func DefaultOrder[K any]() int {
	var zero K
	return defaultOrderFor(int(unsafe.Sizeof(zero)))
}

// --- cloning / ownership -------------------------------------------------

// ceiling rounds n up to a capacity that always has room for two more
// entries than requested, so that a node which has just reached maxKeys
// can still accept one more insertion (the transient overfull state) before
// its backing array must grow again. Ported from the teacher's capacity
// helper of the same name.
func ceiling(n int) int {
	if n <= 0 {
		return 0
	}
	n = n + 1
	for n&(n-1) > 0 {
		n = n & (n - 1)
	}
	return n << 1
}

func (n *Node[K, V]) clone() *Node[K, V] {
	return n.cloneWithCapacity(0)
}

func (n *Node[K, V]) cloneWithCapacity(capHint int) *Node[K, V] {
	cnt := len(n.keys)
	c := &Node[K, V]{count: n.count, depth: n.depth}
	size := cnt
	if capHint > size {
		size = capHint
	}
	if size == 0 {
		return c
	}
	cap := ceiling(size)
	c.keys = make([]K, cnt, cap)
	copy(c.keys, n.keys)
	c.payloads = make([]V, cnt, cap)
	copy(c.payloads, n.payloads)
	if !n.isLeaf() {
		c.children = make([]*Node[K, V], len(n.children), cap+1)
		copy(c.children, n.children)
	}
	return c
}

// ensureOwned returns n unchanged if it is already uniquely owned by
// `owner`, otherwise returns a clone tagged with `owner`. This is the
// "unique-ownership check" of the original design: the sole decision point
// between mutating a node in place and path-copying it.
func (n *Node[K, V]) ensureOwned(owner *ownerTag) *Node[K, V] {
	if owner != nil && n.owner == owner {
		return n
	}
	c := n.cloneWithCapacity(0)
	c.owner = owner
	return c
}

func (n *Node[K, V]) recomputeCount() {
	c := len(n.keys)
	for _, ch := range n.children {
		c += ch.count
	}
	n.count = c
}

func (n *Node[K, V]) recomputeDepth() {
	if n.isLeaf() {
		n.depth = 0
		return
	}
	n.depth = n.children[0].depth + 1
}

// checkInvariants walks the subtree rooted at n and panics on the first
// violated structural invariant. It is used by tests and is intentionally
// not wired into production code paths (it is O(n)).
func (n *Node[K, V]) checkInvariants(order int, cmp Comparator[K], isRoot bool) {
	if n.isEmpty() {
		return
	}
	assertThat(len(n.payloads) == len(n.keys), "payloads/keys length mismatch: %d vs %d", len(n.payloads), len(n.keys))
	if !n.isLeaf() {
		assertThat(len(n.children) == len(n.keys)+1, "children/keys length mismatch: %d vs %d", len(n.children), len(n.keys))
	}
	if !isRoot {
		assertThat(len(n.keys) >= minKeys(order), "node underfull: %d keys, min %d", len(n.keys), minKeys(order))
	}
	assertThat(len(n.keys) <= maxKeys(order), "node overfull: %d keys, max %d", len(n.keys), maxKeys(order))
	for i := 1; i < len(n.keys); i++ {
		assertThat(cmp(n.keys[i-1], n.keys[i]) <= 0, "keys out of order at %d", i)
	}
	expectedCount := len(n.keys)
	for i, ch := range n.children {
		assertThat(ch.depth == n.depth-1, "child %d depth %d, expected %d", i, ch.depth, n.depth-1)
		ch.checkInvariants(order, cmp, false)
		expectedCount += ch.count
	}
	assertThat(n.count == expectedCount, "count cache %d, expected %d", n.count, expectedCount)
}

// --- searching -----------------------------------------------------------

// findSlot returns the leftmost index idx such that keys[idx] >= key (a
// lower-bound binary search), together with whether keys[idx] == key.
func (n *Node[K, V]) findSlot(cmp Comparator[K], key K) (idx int, found bool) {
	lo, hi := 0, len(n.keys)
	for lo < hi {
		mid := (lo + hi) / 2
		if cmp(n.keys[mid], key) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < len(n.keys) && cmp(n.keys[lo], key) == 0
}

// locatePosition finds the element or descent target for a subtree-local
// offset `pos`. If isElement, slotIdx names the matching element in n
// itself; otherwise childIdx/posInChild name the child to descend into and
// the offset within it.
func (n *Node[K, V]) locatePosition(pos int) (isElement bool, slotIdx int, childIdx int, posInChild int) {
	if n.isLeaf() {
		assertThat(pos >= 0 && pos < len(n.keys), "position %d out of range in leaf of %d keys", pos, len(n.keys))
		return true, pos, -1, 0
	}
	offset := 0
	for i := 0; i < len(n.keys); i++ {
		c := n.children[i].count
		if pos < offset+c {
			return false, -1, i, pos - offset
		}
		offset += c
		if pos == offset {
			return true, i, -1, 0
		}
		offset++
	}
	last := len(n.children) - 1
	c := n.children[last].count
	assertThat(pos < offset+c, "position %d out of range in internal node", pos)
	return false, -1, last, pos - offset
}

// positionOfSlot returns the subtree-local offset of the element stored at
// key-slot i. It includes children[i]'s own count (the child immediately to
// the key's left), so it must not be used to compute the offset of
// children[i] itself — use childStartOffset for that.
func (n *Node[K, V]) positionOfSlot(i int) int {
	pos := i
	if !n.isLeaf() {
		for j := 0; j <= i; j++ {
			pos += n.children[j].count
		}
	}
	return pos
}

// childStartOffset returns the subtree-local offset of the first element of
// children[i] — the descent target when a lookup misses at key-slot i.
// Unlike positionOfSlot(i), it excludes children[i]'s own count.
func (n *Node[K, V]) childStartOffset(i int) int {
	pos := i
	for j := 0; j < i; j++ {
		pos += n.children[j].count
	}
	return pos
}

// --- slice helpers used by split/join -----------------------------------

func insertElem[T any](s []T, i int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:len(s)-1])
	s[i] = v
	return s
}

func removeElem[T any](s []T, i int) ([]T, T) {
	v := s[i]
	copy(s[i:], s[i+1:])
	var zero T
	s[len(s)-1] = zero
	return s[:len(s)-1], v
}

// sliceNode builds a fresh node out of keys[keyLo:keyHi] (and, for internal
// nodes, the corresponding children[keyLo:keyHi+1]). An empty key range of
// an internal node spans exactly one child, which is returned as is. Used
// by split.
func (n *Node[K, V]) sliceNode(keyLo, keyHi int) *Node[K, V] {
	size := keyHi - keyLo
	s := &Node[K, V]{}
	if size == 0 && !n.isLeaf() {
		return n.children[keyLo]
	}
	if size <= 0 {
		return s
	}
	c := ceiling(size)
	s.keys = make([]K, size, c)
	copy(s.keys, n.keys[keyLo:keyHi])
	s.payloads = make([]V, size, c)
	copy(s.payloads, n.payloads[keyLo:keyHi])
	if !n.isLeaf() {
		s.children = make([]*Node[K, V], size+1, c+1)
		copy(s.children, n.children[keyLo:keyHi+1])
	}
	s.recomputeDepth()
	s.recomputeCount()
	return s
}

// split removes the upper half of an overfull node, returning the left
// remainder, the splinter's separator element, and the new right node.
func (n *Node[K, V]) split() (left *Node[K, V], sepKey K, sepVal V, right *Node[K, V]) {
	return n.splitAt(len(n.keys) / 2)
}

// splitAt splits at an explicit median index.
func (n *Node[K, V]) splitAt(median int) (left *Node[K, V], sepKey K, sepVal V, right *Node[K, V]) {
	assertThat(median >= 0 && median < len(n.keys), "split median %d out of range for %d keys", median, len(n.keys))
	left = n.sliceNode(0, median)
	sepKey, sepVal = n.keys[median], n.payloads[median]
	right = n.sliceNode(median+1, len(n.keys))
	tracer().Debugf("split: %s -> left=%s sep=%v right=%s", n, left, sepKey, right)
	return
}

// insertSplinter inserts a splinter's separator at key-slot i and the
// splinter's right node as the new child at i+1, after setting children[i]
// to leftChild (the left remainder of whatever was split). n must already
// be owned by the caller's session and must be an internal node.
func (n *Node[K, V]) insertSplinter(i int, sepKey K, sepVal V, leftChild, rightChild *Node[K, V]) {
	n.keys = insertElem(n.keys, i, sepKey)
	n.payloads = insertElem(n.payloads, i, sepVal)
	n.children = insertElem(n.children, i+1, rightChild)
	n.children[i] = leftChild
	n.recomputeCount()
}

// --- stringer (debug) -----------------------------------------------------

func (n *Node[K, V]) String() string {
	if n == nil || len(n.keys) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, k := range n.keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%v", k)
	}
	sb.WriteByte(']')
	return sb.String()
}
