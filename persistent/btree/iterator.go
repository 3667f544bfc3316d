package btree

import "github.com/attaswift/BTree-sub001/maybe"

// Iterator is a strong read-only path: it holds references to every node on
// its trail, so it remains valid and keeps returning the same element even
// if the tree it was created from goes on to be mutated. Creating one is
// O(log n); Next/Prev are amortised O(1).
type Iterator[K any, V any] struct {
	p path[K, V]
}

// NewIterator returns an iterator positioned on the element matching key
// under sel, or on the insertion point for key (with ok == false) if no
// element matches.
func NewIterator[K any, V any](root *Node[K, V], cmp Comparator[K], order int, key K, sel Selector) (it Iterator[K, V], ok bool) {
	p, found := newPathAtKey(root, cmp, order, key, sel)
	return Iterator[K, V]{p: p}, found
}

// NewIteratorAt returns an iterator positioned on the element at subtree
// offset pos. Panics (via assertThat) if pos is out of range.
func NewIteratorAt[K any, V any](root *Node[K, V], cmp Comparator[K], order int, pos int) Iterator[K, V] {
	return Iterator[K, V]{p: newPathAtPosition(root, cmp, order, pos)}
}

func firstIterator[K any, V any](root *Node[K, V], cmp Comparator[K], order int) Iterator[K, V] {
	return Iterator[K, V]{p: firstPath(root, cmp, order)}
}

func lastIterator[K any, V any](root *Node[K, V], cmp Comparator[K], order int) Iterator[K, V] {
	return Iterator[K, V]{p: lastPath(root, cmp, order)}
}

// Valid reports whether the iterator is positioned on an element (false
// once it has run off either end).
func (it *Iterator[K, V]) Valid() bool { return it.p.valid() }

// Key and Payload return the element the iterator is positioned on.
func (it *Iterator[K, V]) Key() K {
	k, _ := it.p.current()
	return k
}

func (it *Iterator[K, V]) Payload() V {
	_, v := it.p.current()
	return v
}

// Get returns Just(payload) if valid, or Nothing.
func (it *Iterator[K, V]) Get() maybe.Maybe[V] {
	if !it.Valid() {
		return maybe.Nothing[V]()
	}
	_, v := it.p.current()
	return maybe.Just(v)
}

// Position returns the iterator's absolute in-order offset from the start
// of the tree it was created over.
func (it *Iterator[K, V]) Position() int { return it.p.position() }

// Next advances to the following element; returns false if there is none.
func (it *Iterator[K, V]) Next() bool { return it.p.moveNext() }

// Prev retreats to the preceding element; returns false if there is none.
func (it *Iterator[K, V]) Prev() bool { return it.p.movePrev() }

// Split partitions the iterator's root tree at the iterator's current
// position into a prefix ending just before it and a suffix starting at
// it, inclusive.
func (it *Iterator[K, V]) Split() (prefix, suffix *Node[K, V]) {
	return splitTree(it.p.order, it.p.root, it.p.position())
}

// Prefix returns every element strictly before the iterator's position.
func (it *Iterator[K, V]) Prefix() *Node[K, V] {
	prefix, _ := it.Split()
	return prefix
}

// Suffix returns every element from the iterator's position onward.
func (it *Iterator[K, V]) Suffix() *Node[K, V] {
	_, suffix := it.Split()
	return suffix
}
