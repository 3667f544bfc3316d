package btree

// Cursor is the mutating path: it owns a private, copy-on-write chain of
// nodes from the tree's root down to one current element (or one insertion
// point), performs exactly one edit — SetPayload, InsertBefore, InsertAfter
// or Remove — and then Finish() folds the chain back into a single new
// root, splitting or rebalancing ancestors as needed. A Cursor is good for
// one edit; open a fresh one for the next (see DESIGN.md for why this
// engine does not support chaining multiple edits through one cursor).
type Cursor[K any, V any] struct {
	owner *ownerTag
	cmp   Comparator[K]
	order int

	ancestors []*Node[K, V] // owned clones, root-most first
	slots     []int         // child index followed at each ancestor level
	node      *Node[K, V]   // owned node currently positioned on
	slot      int           // index of the current element, or insertion point
	done      bool
}

// OpenCursor descends to the element matching key under sel, or to the
// insertion point for key if none matches. Duplicate-key disambiguation by
// First/Last is approximated: an internal-node hit descends into the right
// child only for Last (falling back to the deepest such hit when no equal
// key lies below it), and no run of equal keys is walked the way the
// read-only paths do; see DESIGN.md.
func OpenCursor[K any, V any](root *Node[K, V], cmp Comparator[K], order int, key K, sel Selector) (Cursor[K, V], bool) {
	owner := newOwnerTag()
	c := Cursor[K, V]{owner: owner, cmp: cmp, order: order}
	if root.isEmpty() {
		c.node = &Node[K, V]{owner: owner}
		return c, false
	}
	n := root.ensureOwned(owner)
	lastHit := -1
	for {
		idx, hit := n.findSlot(cmp, key)
		if hit && sel == Last && !n.isLeaf() {
			lastHit = len(c.ancestors)
			c.ancestors = append(c.ancestors, n)
			c.slots = append(c.slots, idx+1)
			n = n.children[idx+1].ensureOwned(owner)
			continue
		}
		if !hit && n.isLeaf() && lastHit >= 0 {
			// No equal key below the deepest internal-node hit: that hit
			// is the last occurrence.
			c.node, c.slot = c.ancestors[lastHit], c.slots[lastHit]-1
			c.ancestors, c.slots = c.ancestors[:lastHit], c.slots[:lastHit]
			return c, true
		}
		if hit || n.isLeaf() {
			c.node, c.slot = n, idx
			return c, hit
		}
		c.ancestors = append(c.ancestors, n)
		c.slots = append(c.slots, idx)
		n = n.children[idx].ensureOwned(owner)
	}
}

// OpenCursorAt descends to the element at subtree offset pos.
func OpenCursorAt[K any, V any](root *Node[K, V], cmp Comparator[K], order int, pos int) Cursor[K, V] {
	owner := newOwnerTag()
	c := Cursor[K, V]{owner: owner, cmp: cmp, order: order}
	n := root.ensureOwned(owner)
	p := pos
	for {
		isElem, slot, childIdx, posInChild := n.locatePosition(p)
		if isElem {
			c.node, c.slot = n, slot
			return c
		}
		c.ancestors = append(c.ancestors, n)
		c.slots = append(c.slots, childIdx)
		p = posInChild
		n = n.children[childIdx].ensureOwned(owner)
	}
}

func (c *Cursor[K, V]) Key() K     { return c.node.keys[c.slot] }
func (c *Cursor[K, V]) Payload() V { return c.node.payloads[c.slot] }

// SetPayload replaces the payload of the current element.
func (c *Cursor[K, V]) SetPayload(v V) {
	assertThat(c.slot < len(c.node.keys), "SetPayload: cursor has no current element")
	c.node.payloads[c.slot] = v
}

// InsertBefore inserts (key, val) immediately before the cursor's current
// position. The cursor must be positioned on a leaf (the case whenever
// OpenCursor did not find a match).
func (c *Cursor[K, V]) InsertBefore(key K, val V) {
	assertThat(c.node.isLeaf(), "InsertBefore: cursor is not on a leaf")
	c.node.keys = insertElem(c.node.keys, c.slot, key)
	c.node.payloads = insertElem(c.node.payloads, c.slot, val)
	c.node.count++
}

// InsertAfter inserts (key, val) immediately after the cursor's current
// position.
func (c *Cursor[K, V]) InsertAfter(key K, val V) {
	assertThat(c.node.isLeaf(), "InsertAfter: cursor is not on a leaf")
	i := c.slot
	if i < len(c.node.keys) {
		i++
	}
	c.node.keys = insertElem(c.node.keys, i, key)
	c.node.payloads = insertElem(c.node.payloads, i, val)
	c.node.count++
	c.slot = i
}

// Remove deletes the current element and returns it.
func (c *Cursor[K, V]) Remove() (K, V) {
	assertThat(c.slot < len(c.node.keys), "Remove: cursor has no current element")
	if c.node.isLeaf() {
		k, v := c.node.keys[c.slot], c.node.payloads[c.slot]
		c.node.keys, _ = removeElem(c.node.keys, c.slot)
		c.node.payloads, _ = removeElem(c.node.payloads, c.slot)
		c.node.count--
		return k, v
	}
	return c.removeInternal()
}

// removeInternal deletes an element living in an internal node by swapping
// in its in-order predecessor (the rightmost element of its left child) and
// deleting the predecessor from the leaf it actually lived in, rebalancing
// the local descent on the way back up.
func (c *Cursor[K, V]) removeInternal() (K, V) {
	removedKey, removedVal := c.node.keys[c.slot], c.node.payloads[c.slot]
	child := c.node.children[c.slot].ensureOwned(c.owner)

	var innerAncestors []*Node[K, V]
	var innerSlots []int
	cur := child
	for !cur.isLeaf() {
		innerAncestors = append(innerAncestors, cur)
		last := len(cur.children) - 1
		innerSlots = append(innerSlots, last)
		nxt := cur.children[last].ensureOwned(c.owner)
		cur.children[last] = nxt
		cur = nxt
	}

	lastIdx := len(cur.keys) - 1
	predKey, predVal := cur.keys[lastIdx], cur.payloads[lastIdx]
	cur.keys = cur.keys[:lastIdx]
	cur.payloads = cur.payloads[:lastIdx]
	cur.count--

	result := cur
	for i := len(innerAncestors) - 1; i >= 0; i-- {
		parent := innerAncestors[i]
		idx := innerSlots[i]
		parent.children[idx] = result
		parent.recomputeCount()
		if result.underfull(c.order) {
			fixDeficiency(c.order, parent, idx)
		}
		result = parent
	}

	c.node.keys[c.slot] = predKey
	c.node.payloads[c.slot] = predVal
	c.node.children[c.slot] = result
	c.node.recomputeCount()
	if result.underfull(c.order) {
		fixDeficiency(c.order, c.node, c.slot)
	}
	return removedKey, removedVal
}

// Finish folds the cursor's owned chain back into a single root, splitting
// an overfull node or rebalancing a deficient one at every ancestor level
// that needs it, and returns the tree's new root.
func (c *Cursor[K, V]) Finish() *Node[K, V] {
	assertThat(!c.done, "Finish: cursor already finished")
	c.done = true

	cur := c.node
	if len(c.ancestors) == 0 {
		if cur.isEmpty() {
			return newEmptyNode[K, V]()
		}
		if !cur.isLeaf() && len(cur.children) == 1 {
			return cur.children[0]
		}
		return finishConcat(c.order, cur)
	}

	result := cur
	for i := len(c.ancestors) - 1; i >= 0; i-- {
		parent := c.ancestors[i]
		idx := c.slots[i]
		if result.overfull(c.order) {
			l, sk, sv, r := result.split()
			parent.insertSplinter(idx, sk, sv, l, r)
			result = parent
			continue
		}
		parent.children[idx] = result
		parent.recomputeCount()
		if result.underfull(c.order) {
			fixDeficiency(c.order, parent, idx)
		}
		result = parent
	}

	if result.overfull(c.order) {
		return finishConcat(c.order, result)
	}
	if !result.isLeaf() && len(result.children) == 1 {
		return result.children[0]
	}
	return result
}
