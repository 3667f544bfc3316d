package btree

// step is one root-ward hop on a path: the node visited and the slot index
// (into that node's children) that was followed to reach the next step.
type step[K any, V any] struct {
	node      *Node[K, V]
	childSlot int // index into node.children that the path descended through
}

// path is the navigation trail shared by Iterator and Index: a stack of
// steps from the root down to (but not including) the node currently
// positioned on, plus that node and the slot within it. Both read-only
// flavours differ only in what they do with a path, not how they compute
// one. Cursor does not use it; it keeps its own stack of owned ancestors.
type path[K any, V any] struct {
	root  *Node[K, V]
	cmp   Comparator[K]
	order int

	ancestors []step[K, V] // root-to-parent trail
	node      *Node[K, V]  // node currently positioned on (leaf, almost always)
	slot      int          // index of the current element within node
	offset    int          // absolute in-order position of the current element within root
}

// newPathAtKey descends from root to the element matching key under the
// given Selector, or to the lower-bound slot if no element matches.
func newPathAtKey[K any, V any](root *Node[K, V], cmp Comparator[K], order int, key K, sel Selector) (p path[K, V], found bool) {
	p = path[K, V]{root: root, cmp: cmp, order: order}
	n := root
	offset := 0
	lastHit := false
	for {
		idx, hit := n.findSlot(cmp, key)
		if hit && !n.isLeaf() {
			// An internal-node hit is a candidate; for Any/Last descend into
			// the right child only if the selector demands the last
			// occurrence, otherwise stop here immediately (cheapest path).
			if sel == Last {
				lastHit = true
				childOffset := offset + n.childStartOffset(idx+1)
				p.ancestors = append(p.ancestors, step[K, V]{node: n, childSlot: idx + 1})
				n = n.children[idx+1]
				offset = childOffset
				continue
			}
			p.node, p.slot, p.offset = n, idx, offset+n.positionOfSlot(idx)
			found = true
			if sel == First {
				p.seekFirstOccurrence(key)
			}
			return
		}
		if hit && n.isLeaf() {
			p.node, p.slot, p.offset = n, idx, offset+n.positionOfSlot(idx)
			found = true
			if sel == First {
				p.seekFirstOccurrence(key)
			} else if sel == Last {
				p.seekLastOccurrence(key)
			}
			return
		}
		if n.isLeaf() {
			p.node, p.slot, p.offset = n, idx, offset+n.positionOfSlot(idx)
			if lastHit {
				// No equal key below the deepest internal-node hit, so that
				// hit (the in-order predecessor of this slot) is the last one.
				p.movePrev()
				found = true
			}
			return
		}
		childOffset := offset + n.childStartOffset(idx)
		p.ancestors = append(p.ancestors, step[K, V]{node: n, childSlot: idx})
		n = n.children[idx]
		offset = childOffset
	}
}

// seekFirstOccurrence walks backward (Prev) while the current element still
// compares equal to key, landing the path on the leftmost occurrence.
func (p *path[K, V]) seekFirstOccurrence(key K) {
	for {
		pr := *p
		if !pr.movePrev() {
			return
		}
		k, _ := pr.current()
		if p.cmp(k, key) != 0 {
			return
		}
		*p = pr
	}
}

// seekLastOccurrence walks forward (Next) while the current element still
// compares equal to key, landing the path on the rightmost occurrence.
func (p *path[K, V]) seekLastOccurrence(key K) {
	for {
		nx := *p
		if !nx.moveNext() {
			return
		}
		k, _ := nx.current()
		if p.cmp(k, key) != 0 {
			return
		}
		*p = nx
	}
}

// newPathAtPosition descends to the element at subtree-local offset pos.
func newPathAtPosition[K any, V any](root *Node[K, V], cmp Comparator[K], order int, pos int) path[K, V] {
	p := path[K, V]{root: root, cmp: cmp, order: order}
	n := root
	offset := 0
	for {
		isElem, slot, childIdx, posInChild := n.locatePosition(pos - offset)
		if isElem {
			p.node, p.slot, p.offset = n, slot, offset+n.positionOfSlot(slot)
			return p
		}
		childOffset := pos - posInChild
		p.ancestors = append(p.ancestors, step[K, V]{node: n, childSlot: childIdx})
		n = n.children[childIdx]
		offset = childOffset
	}
}

// firstPath descends along the leftmost spine to the very first element.
func firstPath[K any, V any](root *Node[K, V], cmp Comparator[K], order int) path[K, V] {
	p := path[K, V]{root: root, cmp: cmp, order: order}
	n := root
	for !n.isLeaf() {
		p.ancestors = append(p.ancestors, step[K, V]{node: n, childSlot: 0})
		n = n.children[0]
	}
	p.node = n
	p.slot = 0
	return p
}

// lastPath descends along the rightmost spine to the very last element.
func lastPath[K any, V any](root *Node[K, V], cmp Comparator[K], order int) path[K, V] {
	p := path[K, V]{root: root, cmp: cmp, order: order}
	n := root
	for !n.isLeaf() {
		last := len(n.children) - 1
		p.ancestors = append(p.ancestors, step[K, V]{node: n, childSlot: last})
		n = n.children[last]
	}
	p.node = n
	if len(n.keys) > 0 {
		p.slot = len(n.keys) - 1
	}
	return p
}

func (p *path[K, V]) valid() bool {
	return p.node != nil && p.slot >= 0 && p.slot < len(p.node.keys)
}

func (p *path[K, V]) current() (K, V) {
	return p.node.keys[p.slot], p.node.payloads[p.slot]
}

func (p *path[K, V]) position() int {
	return p.offset
}

// descendToLeftmostOf descends from n down to its leftmost leaf element,
// pushing the traversed steps. Used when advancing Next() off an
// internal-node element into that element's right child.
func (p *path[K, V]) descendToLeftmostOf(n *Node[K, V], baseOffset int) {
	for !n.isLeaf() {
		p.ancestors = append(p.ancestors, step[K, V]{node: n, childSlot: 0})
		n = n.children[0]
	}
	p.node = n
	p.slot = 0
	p.offset = baseOffset
}

func (p *path[K, V]) descendToRightmostOf(n *Node[K, V], baseOffset int) {
	for !n.isLeaf() {
		last := len(n.children) - 1
		p.ancestors = append(p.ancestors, step[K, V]{node: n, childSlot: last})
		n = n.children[last]
	}
	p.node = n
	if len(n.keys) > 0 {
		p.slot = len(n.keys) - 1
	}
	p.offset = baseOffset
}

// moveNext advances the path to the next in-order element. Returns false and
// leaves the path one-past-the-end if there is no next element.
func (p *path[K, V]) moveNext() bool {
	if p.node == nil {
		return false
	}
	if !p.node.isLeaf() {
		// current element is in an internal node: descend into its right
		// child's leftmost element.
		child := p.node.children[p.slot+1]
		base := p.offset + 1
		p.ancestors = append(p.ancestors, step[K, V]{node: p.node, childSlot: p.slot + 1})
		p.descendToLeftmostOf(child, base)
		return true
	}
	if p.slot+1 < len(p.node.keys) {
		p.slot++
		p.offset++
		return true
	}
	// climb until we find an ancestor we descended into from a slot that has
	// a next key.
	for len(p.ancestors) > 0 {
		top := p.ancestors[len(p.ancestors)-1]
		p.ancestors = p.ancestors[:len(p.ancestors)-1]
		if top.childSlot < len(top.node.keys) {
			p.node = top.node
			p.slot = top.childSlot
			// offset: subtract what remained in child (we've consumed all
			// elements there already) — just recompute absolute offset
			// directly through positionOfSlot off the known parent offset.
			p.offset = p.ancestorOffset(top) + top.node.positionOfSlot(top.childSlot)
			return true
		}
	}
	p.node = nil
	return false
}

// ancestorOffset recomputes the subtree-local offset of `top.node` within
// root by re-walking the remaining ancestor chain. O(depth) but moveNext is
// already O(depth) in the worst case, so this adds no asymptotic cost.
func (p *path[K, V]) ancestorOffset(top step[K, V]) int {
	offset := 0
	for _, a := range p.ancestors {
		offset += a.node.childStartOffset(a.childSlot)
	}
	return offset
}

func (p *path[K, V]) movePrev() bool {
	if p.node == nil {
		return false
	}
	if !p.node.isLeaf() {
		child := p.node.children[p.slot]
		base := p.offset - 1
		p.ancestors = append(p.ancestors, step[K, V]{node: p.node, childSlot: p.slot})
		p.descendToRightmostOf(child, base)
		return true
	}
	if p.slot > 0 {
		p.slot--
		p.offset--
		return true
	}
	for len(p.ancestors) > 0 {
		top := p.ancestors[len(p.ancestors)-1]
		p.ancestors = p.ancestors[:len(p.ancestors)-1]
		if top.childSlot > 0 {
			p.node = top.node
			p.slot = top.childSlot - 1
			p.offset = p.ancestorOffset(top) + top.node.positionOfSlot(top.slotForPrev())
			return true
		}
	}
	p.node = nil
	return false
}

func (s step[K, V]) slotForPrev() int { return s.childSlot - 1 }
