package btree

// mergeRule describes one of the five bulk set-algebra operators as a set
// of decisions for a synchronized two-iterator sorted merge: what to do
// when a's current key is less than b's, greater than b's, or equal, and
// whether to keep each side's remainder once the other side runs out.
type mergeRule struct {
	emitOnALess       bool
	emitOnBLess       bool
	emitAOnEqual      bool
	emitBOnEqual      bool
	includeARemainder bool
	includeBRemainder bool
}

var (
	ruleUnion = mergeRule{
		emitOnALess: true, emitOnBLess: true,
		emitAOnEqual: true, emitBOnEqual: true,
		includeARemainder: true, includeBRemainder: true,
	}
	ruleDistinctUnion = mergeRule{
		emitOnALess: true, emitOnBLess: true,
		emitAOnEqual: true, emitBOnEqual: false,
		includeARemainder: true, includeBRemainder: true,
	}
	ruleSubtract = mergeRule{
		emitOnALess: true, emitOnBLess: false,
		emitAOnEqual: false, emitBOnEqual: false,
		includeARemainder: true, includeBRemainder: false,
	}
	ruleExclusiveOr = mergeRule{
		emitOnALess: true, emitOnBLess: true,
		emitAOnEqual: false, emitBOnEqual: false,
		includeARemainder: true, includeBRemainder: true,
	}
	ruleIntersect = mergeRule{
		emitOnALess: false, emitOnBLess: false,
		emitAOnEqual: true, emitBOnEqual: false,
		includeARemainder: false, includeBRemainder: false,
	}
)

// Merger runs the bulk set-algebra operators over two trees sharing a
// comparator and order. It is a thin, stateless driver: each operation
// opens a fresh pair of iterators and a fresh Builder.
type Merger[K any, V any] struct {
	cmp   Comparator[K]
	order int
}

func NewMerger[K any, V any](cmp Comparator[K], order int) Merger[K, V] {
	return Merger[K, V]{cmp: cmp, order: order}
}

// Union returns every element of a and b, keeping every duplicate from
// both sides (a multiset union: a key present m times in a and n times in
// b appears m+n times in the result).
func (m Merger[K, V]) Union(a, b *Node[K, V]) *Node[K, V] {
	return m.run(a, b, ruleUnion)
}

// DistinctUnion returns every element of a and b, collapsing a key present
// in both trees to a single occurrence taken from a.
func (m Merger[K, V]) DistinctUnion(a, b *Node[K, V]) *Node[K, V] {
	return m.run(a, b, ruleDistinctUnion)
}

// Subtract returns every element of a that does not have a matching
// occurrence in b (multiset difference: one occurrence of a shared key in
// b cancels one occurrence in a).
func (m Merger[K, V]) Subtract(a, b *Node[K, V]) *Node[K, V] {
	return m.run(a, b, ruleSubtract)
}

// ExclusiveOr returns every element that appears an unmatched number of
// times across a and b (multiset symmetric difference).
func (m Merger[K, V]) ExclusiveOr(a, b *Node[K, V]) *Node[K, V] {
	return m.run(a, b, ruleExclusiveOr)
}

// Intersect returns one occurrence, from a, of every key present in both
// a and b (multiset intersection: min multiplicity via pairwise matching).
func (m Merger[K, V]) Intersect(a, b *Node[K, V]) *Node[K, V] {
	return m.run(a, b, ruleIntersect)
}

func (m Merger[K, V]) run(a, b *Node[K, V], rule mergeRule) *Node[K, V] {
	builder := NewBuilder[K, V](m.order)
	if a.isEmpty() && b.isEmpty() {
		return builder.Finish()
	}
	ia := firstIterator(a, m.cmp, m.order)
	ib := firstIterator(b, m.cmp, m.order)

	for ia.Valid() && ib.Valid() {
		if ia.p.node == ib.p.node && ia.p.slot == ib.p.slot && ia.p.node.isLeaf() {
			m.consumeSharedSubtree(&ia, &ib, builder, rule)
			continue
		}
		c := m.cmp(ia.Key(), ib.Key())
		switch {
		case c < 0:
			// Every element of a up to (not including) b's current key is
			// guaranteed to stay on the "a is less" side, so pull the whole
			// run in one O(log n) step rather than comparing one element at
			// a time against the unmoving bound.
			run := nextPart(m.cmp, m.order, &ia, ib.Key())
			if rule.emitOnALess {
				builder.AppendSubtree(run)
			}
		case c > 0:
			run := nextPart(m.cmp, m.order, &ib, ia.Key())
			if rule.emitOnBLess {
				builder.AppendSubtree(run)
			}
		default:
			if rule.emitAOnEqual {
				builder.AppendElement(ia.Key(), ia.Payload())
			}
			if rule.emitBOnEqual {
				builder.AppendElement(ib.Key(), ib.Payload())
			}
			ia.Next()
			ib.Next()
		}
	}
	if rule.includeARemainder && ia.Valid() {
		builder.AppendSubtree(ia.Suffix())
	}
	if rule.includeBRemainder && ib.Valid() {
		builder.AppendSubtree(ib.Suffix())
	}
	return builder.Finish()
}

// nextPartCalls counts nextPart invocations. It exists purely so tests can
// assert the merge driver stays at O(log n) calls against disjoint trees
// instead of degrading to one call per element; production code never reads
// it.
var nextPartCalls int

// nextPart extracts the maximal run of it's remaining elements that compares
// less than boundKey, as a single subtree, and advances it past that run.
// Both the extraction (lowerBoundPos, a path descent) and the advance (a
// re-seek via NewIteratorAt) are O(log n) regardless of how many elements
// the run contains, which is what lets run() merge two disjoint trees in
// O(log n) total instead of one comparison per element.
func nextPart[K any, V any](cmp Comparator[K], order int, it *Iterator[K, V], boundKey K) *Node[K, V] {
	nextPartCalls++
	root := it.p.root
	from := it.p.position()
	to := lowerBoundPos(root, cmp, order, boundKey)
	if to <= from {
		return newEmptyNode[K, V]()
	}
	run := subtreeByOffset(root, cmp, order, from, to)
	if to >= root.count {
		it.p.node = nil
	} else {
		*it = NewIteratorAt(root, cmp, order, to)
	}
	return run
}

// consumeSharedSubtree is the shared-subtree fast path: when both
// iterators are positioned on the identical underlying leaf (the trees
// were derived from one another without touching this region), the
// remainder of that leaf is consumed without comparing keys. When only one
// side's copy is kept it is appended or skipped as one unit; when both are
// kept (Union) each shared element is appended twice, in order.
func (m Merger[K, V]) consumeSharedSubtree(ia, ib *Iterator[K, V], builder *Builder[K, V], rule mergeRule) {
	n := ia.p.node
	slot := ia.p.slot
	tracer().Debugf("merger: shared subtree at node=%s slot=%d", n, slot)
	switch {
	case rule.emitAOnEqual && rule.emitBOnEqual:
		for i := slot; i < len(n.keys); i++ {
			builder.AppendElement(n.keys[i], n.payloads[i])
			builder.AppendElement(n.keys[i], n.payloads[i])
		}
	case rule.emitAOnEqual || rule.emitBOnEqual:
		shared := n.sliceNode(slot, len(n.keys))
		builder.AppendSubtree(shared)
	}
	for i := slot; i < len(n.keys); i++ {
		ia.Next()
		ib.Next()
	}
}
