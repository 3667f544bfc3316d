package btree

// fixDeficiency repairs parent.children[idx], which has just dropped below
// minKeys(order), by borrowing an element from a sibling if one has spare
// capacity, or merging with a sibling otherwise. parent must already be
// safe to mutate in place. After this call parent itself may have become
// deficient (a merge removes one of its children and the separator between
// them); the caller is responsible for continuing to propagate that
// upward, exactly as a split propagates upward during insertion.
func fixDeficiency[K any, V any](order int, parent *Node[K, V], idx int) {
	child := parent.children[idx]
	tracer().Debugf("fixDeficiency: child@%d has %d keys, min=%d", idx, len(child.keys), minKeys(order))

	if idx > 0 {
		left := parent.children[idx-1]
		if len(left.keys) > minKeys(order) {
			tracer().Debugf("fixDeficiency: rotating right from sibling@%d", idx-1)
			rotateRight(order, parent, idx-1)
			return
		}
	}
	if idx+1 < len(parent.children) {
		right := parent.children[idx+1]
		if len(right.keys) > minKeys(order) {
			tracer().Debugf("fixDeficiency: rotating left from sibling@%d", idx+1)
			rotateLeft(order, parent, idx)
			return
		}
	}
	if idx > 0 {
		tracer().Debugf("fixDeficiency: merging with left sibling@%d", idx-1)
		mergeChildren(parent, idx-1)
		return
	}
	tracer().Debugf("fixDeficiency: merging with right sibling@%d", idx+1)
	mergeChildren(parent, idx)
}

// rotateRight moves the last element of parent.children[sepIdx] (the left
// sibling) up through the separator at key-slot sepIdx and down into the
// front of parent.children[sepIdx+1] (the deficient child).
func rotateRight[K any, V any](order int, parent *Node[K, V], sepIdx int) {
	left := parent.children[sepIdx].clone()
	right := parent.children[sepIdx+1].clone()

	lastIdx := len(left.keys) - 1
	borrowedKey, borrowedVal := left.keys[lastIdx], left.payloads[lastIdx]
	var borrowedChild *Node[K, V]
	if !left.isLeaf() {
		borrowedChild = left.children[len(left.children)-1]
		left.children = left.children[:len(left.children)-1]
	}
	left.keys = left.keys[:lastIdx]
	left.payloads = left.payloads[:lastIdx]
	left.recomputeCount()

	right.keys = insertElem(right.keys, 0, parent.keys[sepIdx])
	right.payloads = insertElem(right.payloads, 0, parent.payloads[sepIdx])
	if !right.isLeaf() {
		right.children = insertElem(right.children, 0, borrowedChild)
	}
	right.recomputeCount()

	parent.keys[sepIdx] = borrowedKey
	parent.payloads[sepIdx] = borrowedVal
	parent.children[sepIdx] = left
	parent.children[sepIdx+1] = right
	parent.recomputeCount()
}

// rotateLeft moves the first element of parent.children[sepIdx+1] (the
// right sibling) up through the separator at key-slot sepIdx and down into
// the back of parent.children[sepIdx] (the deficient child).
func rotateLeft[K any, V any](order int, parent *Node[K, V], sepIdx int) {
	left := parent.children[sepIdx].clone()
	right := parent.children[sepIdx+1].clone()

	borrowedKey, borrowedVal := right.keys[0], right.payloads[0]
	var borrowedChild *Node[K, V]
	if !right.isLeaf() {
		borrowedChild = right.children[0]
		right.children, _ = removeElem(right.children, 0)
	}
	right.keys, _ = removeElem(right.keys, 0)
	right.payloads, _ = removeElem(right.payloads, 0)
	right.recomputeCount()

	left.keys = append(left.keys, parent.keys[sepIdx])
	left.payloads = append(left.payloads, parent.payloads[sepIdx])
	if !left.isLeaf() {
		left.children = append(left.children, borrowedChild)
	}
	left.recomputeCount()

	parent.keys[sepIdx] = borrowedKey
	parent.payloads[sepIdx] = borrowedVal
	parent.children[sepIdx] = left
	parent.children[sepIdx+1] = right
	parent.recomputeCount()
}

// mergeChildren folds parent.children[sepIdx], the separator at key-slot
// sepIdx, and parent.children[sepIdx+1] into a single node, removing one
// key and one child from parent. parent may end up underfull itself; the
// caller propagates that upward.
func mergeChildren[K any, V any](parent *Node[K, V], sepIdx int) {
	left := parent.children[sepIdx]
	right := parent.children[sepIdx+1]
	merged := concatNodes(left, parent.keys[sepIdx], parent.payloads[sepIdx], right)

	parent.keys, _ = removeElem(parent.keys, sepIdx)
	parent.payloads, _ = removeElem(parent.payloads, sepIdx)
	parent.children, _ = removeElem(parent.children, sepIdx+1)
	parent.children[sepIdx] = merged
	parent.recomputeCount()
}
