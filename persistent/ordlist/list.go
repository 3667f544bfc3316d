/*
Package ordlist is a thin, positional-list façade over persistent/btree: a
persistent, indexable sequence with O(log n) random access, insertion and
removal at any position. The underlying tree's "key" is never consulted —
every operation addresses elements by rank, using the same cached subtree
counts that make persistent/btree's Tree.ElementAt/InsertAt/RemoveAt work.
*/
package ordlist

import "github.com/attaswift/BTree-sub001/persistent/btree"

// unit is the btree key type ordlist instantiates Tree with. Its
// comparator never distinguishes two elements, which is harmless: ordlist
// never calls a key-based Tree operation (Get/Contains/InsertOrReplace),
// only the position-based ones.
type unit struct{}

func compareUnits(a, b unit) int { return 0 }

// List is a persistent, ordered sequence of V. The zero value is not
// usable; construct one with New.
type List[V any] struct {
	t btree.Tree[unit, V]
}

// New returns an empty list.
func New[V any](opts ...btree.Option[unit, V]) List[V] {
	all := append([]btree.Option[unit, V]{btree.WithComparator[unit, V](compareUnits)}, opts...)
	return List[V]{t: btree.New(all...)}
}

func (l List[V]) Len() int      { return l.t.Len() }
func (l List[V]) IsEmpty() bool { return l.t.IsEmpty() }

// Get returns the element at position pos.
func (l List[V]) Get(pos int) V {
	_, v := l.t.ElementAt(pos)
	return v
}

// Set returns a list with the element at position pos replaced by val.
func (l List[V]) Set(pos int, val V) List[V] {
	return List[V]{t: l.t.SetPayloadAt(pos, val)}
}

// Insert returns a list with val inserted at position pos, shifting every
// later element one position on. pos may equal l.Len() to append.
func (l List[V]) Insert(pos int, val V) List[V] {
	return List[V]{t: l.t.InsertAt(pos, unit{}, val)}
}

// Append returns a list with val appended at the end.
func (l List[V]) Append(val V) List[V] {
	return List[V]{t: l.t.InsertAt(l.Len(), unit{}, val)}
}

// RemoveAt returns a list with the element at position pos removed,
// together with the removed value.
func (l List[V]) RemoveAt(pos int) (List[V], V) {
	t, _, v := l.t.RemoveAt(pos)
	return List[V]{t: t}, v
}

// Slice returns the sub-list spanning [lo, hi).
func (l List[V]) Slice(lo, hi int) List[V] {
	return List[V]{t: l.t.SubtreeOffsetRange(lo, hi)}
}

// Iterate returns a strong read-only iterator positioned at the first
// element.
func (l List[V]) Iterate() btree.Iterator[unit, V] {
	return l.t.Iterate()
}

// IterateAt returns a strong read-only iterator positioned at pos.
func (l List[V]) IterateAt(pos int) btree.Iterator[unit, V] {
	return l.t.IterateAt(pos)
}

// Concat returns a list with other's elements appended after l's.
func (l List[V]) Concat(other List[V]) List[V] {
	root := l.t.Root()
	root = appendTreeRoot(root, other.t.Root(), l.t.Order())
	return List[V]{t: btree.FromRoot(root, compareUnits, l.t.Order())}
}

func appendTreeRoot[V any](left, right *btree.Node[unit, V], order int) *btree.Node[unit, V] {
	b := btree.NewBuilder[unit, V](order)
	b.AppendSubtree(left)
	b.AppendSubtree(right)
	return b.Finish()
}

func (l List[V]) Dump() string { return l.t.Dump() }
