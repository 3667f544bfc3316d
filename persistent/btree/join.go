package btree

// propagateSplit folds a (possibly overfull) replacement node back up a
// chain of ancestors, splitting and inserting a splinter at each level that
// needs it. ancestors[0] is the outermost (closest to the tree's own root)
// and ancestors[len-1] is the innermost, the immediate parent of the slot
// `child` is replacing; slots[i] is the child index within ancestors[i].
// Every ancestor node must already be safe to mutate in place (a fresh
// clone, or uniquely owned by the caller's session). Returns the new
// topmost node, which may itself be overfull — callers at the very root of
// a tree must check that and split once more.
func propagateSplit[K any, V any](order int, ancestors []*Node[K, V], slots []int, child *Node[K, V]) *Node[K, V] {
	cur := child
	for i := len(ancestors) - 1; i >= 0; i-- {
		parent := ancestors[i]
		idx := slots[i]
		if cur.overfull(order) {
			l, sk, sv, r := cur.split()
			parent.insertSplinter(idx, sk, sv, l, r)
		} else {
			parent.children[idx] = cur
			parent.recomputeCount()
		}
		cur = parent
	}
	return cur
}

// finishConcat splits n into a fresh two-level tree if it is overfull,
// otherwise returns it unchanged. Used wherever a just-built node might
// be the tree's ultimate root.
func finishConcat[K any, V any](order int, n *Node[K, V]) *Node[K, V] {
	if !n.overfull(order) {
		return n
	}
	l, sk, sv, r := n.split()
	top := &Node[K, V]{keys: []K{sk}, payloads: []V{sv}, children: []*Node[K, V]{l, r}}
	top.recomputeDepth()
	top.recomputeCount()
	return top
}

// concatNodes merges two nodes of equal depth and a separator element into
// a single wider node at that same depth. This is the classical B-tree
// join-at-equal-height step: the result is never underfull (both operands
// already satisfy the minimum-keys invariant, or are a tree root which is
// exempt from it) and is handled for overflow by the caller via
// finishConcat/propagateSplit.
func concatNodes[K any, V any](left *Node[K, V], sepKey K, sepVal V, right *Node[K, V]) *Node[K, V] {
	n := &Node[K, V]{depth: left.depth}
	total := len(left.keys) + len(right.keys) + 1
	capHint := ceiling(total)
	n.keys = make([]K, 0, capHint)
	n.keys = append(n.keys, left.keys...)
	n.keys = append(n.keys, sepKey)
	n.keys = append(n.keys, right.keys...)
	n.payloads = make([]V, 0, capHint)
	n.payloads = append(n.payloads, left.payloads...)
	n.payloads = append(n.payloads, sepVal)
	n.payloads = append(n.payloads, right.payloads...)
	if !left.isLeaf() {
		n.children = make([]*Node[K, V], 0, capHint+1)
		n.children = append(n.children, left.children...)
		n.children = append(n.children, right.children...)
	}
	n.recomputeCount()
	return n
}

// prependElem inserts (key, val) as the very first element of n's in-order
// sequence.
func prependElem[K any, V any](order int, key K, val V, n *Node[K, V]) *Node[K, V] {
	if n.isEmpty() {
		return newLeafOf[K, V](key, val)
	}
	if n.isLeaf() {
		c := n.clone()
		c.keys = insertElem(c.keys, 0, key)
		c.payloads = insertElem(c.payloads, 0, val)
		c.count++
		return finishConcat(order, c)
	}
	var ancestors []*Node[K, V]
	var slots []int
	cur := n.clone()
	for !cur.isLeaf() {
		ancestors = append(ancestors, cur)
		slots = append(slots, 0)
		child := cur.children[0].clone()
		cur.children[0] = child
		cur = child
	}
	cur.keys = insertElem(cur.keys, 0, key)
	cur.payloads = insertElem(cur.payloads, 0, val)
	cur.count++
	return finishConcat(order, propagateSplit(order, ancestors, slots, cur))
}

// appendElem inserts (key, val) as the very last element of n's in-order
// sequence.
func appendElem[K any, V any](order int, n *Node[K, V], key K, val V) *Node[K, V] {
	if n.isEmpty() {
		return newLeafOf[K, V](key, val)
	}
	if n.isLeaf() {
		c := n.clone()
		c.keys = append(c.keys, key)
		c.payloads = append(c.payloads, val)
		c.count++
		return finishConcat(order, c)
	}
	var ancestors []*Node[K, V]
	var slots []int
	cur := n.clone()
	for !cur.isLeaf() {
		ancestors = append(ancestors, cur)
		last := len(cur.children) - 1
		slots = append(slots, last)
		child := cur.children[last].clone()
		cur.children[last] = child
		cur = child
	}
	cur.keys = append(cur.keys, key)
	cur.payloads = append(cur.payloads, val)
	cur.count++
	return finishConcat(order, propagateSplit(order, ancestors, slots, cur))
}

// joinNodes concatenates left, a lone separator element, and right into a
// single balanced tree, visiting only the |depth(left)-depth(right)| nodes
// along whichever side is deeper. This is the structural primitive behind
// Iterator.Split/Prefix/Suffix and the Merger's shared-subtree fast path.
func joinNodes[K any, V any](order int, left *Node[K, V], sepKey K, sepVal V, right *Node[K, V]) *Node[K, V] {
	tracer().Debugf("joinNodes: left depth=%d right depth=%d sep=%v", left.depth, right.depth, sepKey)
	if left.isEmpty() {
		return prependElem(order, sepKey, sepVal, right)
	}
	if right.isEmpty() {
		return appendElem(order, left, sepKey, sepVal)
	}
	if left.depth == right.depth {
		return finishConcat(order, concatNodes(left, sepKey, sepVal, right))
	}
	if left.depth > right.depth {
		var ancestors []*Node[K, V]
		var slots []int
		cur := left.clone()
		for {
			idx := len(cur.children) - 1
			ancestors = append(ancestors, cur)
			slots = append(slots, idx)
			child := cur.children[idx]
			if child.depth == right.depth {
				combined := concatNodes(child, sepKey, sepVal, right)
				return finishConcat(order, propagateSplit(order, ancestors, slots, combined))
			}
			next := child.clone()
			cur.children[idx] = next
			cur = next
		}
	}
	var ancestors []*Node[K, V]
	var slots []int
	cur := right.clone()
	for {
		ancestors = append(ancestors, cur)
		slots = append(slots, 0)
		child := cur.children[0]
		if child.depth == left.depth {
			combined := concatNodes(left, sepKey, sepVal, child)
			return finishConcat(order, propagateSplit(order, ancestors, slots, combined))
		}
		next := child.clone()
		cur.children[0] = next
		cur = next
	}
}

// removeFirstElem removes and returns the first in-order element of n,
// together with the resulting tree.
func removeFirstElem[K any, V any](order int, n *Node[K, V]) (rest *Node[K, V], key K, val V) {
	if n.isLeaf() {
		c := n.clone()
		key, val = c.keys[0], c.payloads[0]
		c.keys, _ = removeElem(c.keys, 0)
		c.payloads, _ = removeElem(c.payloads, 0)
		c.count--
		return c, key, val
	}
	var ancestors []*Node[K, V]
	var slots []int
	cur := n.clone()
	for !cur.isLeaf() {
		ancestors = append(ancestors, cur)
		slots = append(slots, 0)
		child := cur.children[0].clone()
		cur.children[0] = child
		cur = child
	}
	key, val = cur.keys[0], cur.payloads[0]
	cur.keys, _ = removeElem(cur.keys, 0)
	cur.payloads, _ = removeElem(cur.payloads, 0)
	cur.count--
	result := cur
	for i := len(ancestors) - 1; i >= 0; i-- {
		parent := ancestors[i]
		idx := slots[i]
		parent.children[idx] = result
		parent.recomputeCount()
		if result.underfull(order) {
			fixDeficiency(order, parent, idx)
		}
		result = parent
	}
	return result, key, val
}

// concatTrees joins two trees directly, without an explicit separator
// element in between, by extracting the last element of left as the
// separator and joining the remainder with right. Used when merging two
// adjacent ranges whose boundary element is already accounted for.
func concatTrees[K any, V any](order int, left, right *Node[K, V]) *Node[K, V] {
	if left.isEmpty() {
		return right
	}
	if right.isEmpty() {
		return left
	}
	rest, sepKey, sepVal := removeLastElem(order, left)
	return joinNodes(order, rest, sepKey, sepVal, right)
}

// removeLastElem removes and returns the last in-order element of n,
// together with the resulting tree.
func removeLastElem[K any, V any](order int, n *Node[K, V]) (rest *Node[K, V], key K, val V) {
	if n.isLeaf() {
		c := n.clone()
		last := len(c.keys) - 1
		key, val = c.keys[last], c.payloads[last]
		c.keys = c.keys[:last]
		c.payloads = c.payloads[:last]
		c.count--
		return c, key, val
	}
	var ancestors []*Node[K, V]
	var slots []int
	cur := n.clone()
	for !cur.isLeaf() {
		ancestors = append(ancestors, cur)
		last := len(cur.children) - 1
		slots = append(slots, last)
		child := cur.children[last].clone()
		cur.children[last] = child
		cur = child
	}
	last := len(cur.keys) - 1
	key, val = cur.keys[last], cur.payloads[last]
	cur.keys = cur.keys[:last]
	cur.payloads = cur.payloads[:last]
	cur.count--
	result := cur
	for i := len(ancestors) - 1; i >= 0; i-- {
		parent := ancestors[i]
		idx := slots[i]
		parent.children[idx] = result
		parent.recomputeCount()
		if result.underfull(order) {
			fixDeficiency(order, parent, idx)
		}
		result = parent
	}
	return result, key, val
}
