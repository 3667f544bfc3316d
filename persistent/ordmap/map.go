/*
Package ordmap is a thin, ordered-map façade over persistent/btree: a
persistent dictionary that keeps its entries sorted by key and additionally
supports positional access (the n-th smallest key). All of the interesting
work — copy-on-write sharing, rebalancing, bulk set algebra — lives in
persistent/btree; this package only enforces key uniqueness on top of it.
*/
package ordmap

import (
	"github.com/attaswift/BTree-sub001/maybe"
	"github.com/attaswift/BTree-sub001/persistent/btree"
)

// Map is a persistent, ordered map from K to V. The zero value is not
// usable; construct one with New.
type Map[K any, V any] struct {
	t btree.Tree[K, V]
}

// New returns an empty map ordered by cmp.
func New[K any, V any](cmp func(a, b K) int, opts ...btree.Option[K, V]) Map[K, V] {
	all := append([]btree.Option[K, V]{btree.WithComparator[K, V](cmp)}, opts...)
	return Map[K, V]{t: btree.New(all...)}
}

func (m Map[K, V]) Len() int      { return m.t.Len() }
func (m Map[K, V]) IsEmpty() bool { return m.t.IsEmpty() }

// Get returns the value for key, if present.
func (m Map[K, V]) Get(key K) maybe.Maybe[V] {
	return m.t.Get(key, btree.Any)
}

// Contains reports whether key is present.
func (m Map[K, V]) Contains(key K) bool {
	return m.t.Contains(key)
}

// Set returns a map with key bound to val, replacing any existing binding.
func (m Map[K, V]) Set(key K, val V) Map[K, V] {
	t, _ := m.t.InsertOrReplace(key, val, btree.Any)
	return Map[K, V]{t: t}
}

// Delete returns a map with key removed, if it was present.
func (m Map[K, V]) Delete(key K) Map[K, V] {
	t, _ := m.t.Remove(key, btree.Any)
	return Map[K, V]{t: t}
}

// IndexOf returns the in-order rank of key among the map's keys.
func (m Map[K, V]) IndexOf(key K) (int, bool) {
	return m.t.IndexOf(key, btree.Any)
}

// At returns the key/value pair at in-order rank pos (0 is the smallest
// key).
func (m Map[K, V]) At(pos int) (K, V) {
	return m.t.ElementAt(pos)
}

// Iterate returns a strong read-only iterator positioned at the smallest
// key.
func (m Map[K, V]) Iterate() btree.Iterator[K, V] {
	return m.t.Iterate()
}

// IterateFrom returns a strong read-only iterator positioned at key.
func (m Map[K, V]) IterateFrom(key K) (btree.Iterator[K, V], bool) {
	return m.t.IterateFrom(key, btree.Any)
}

// Range returns the sub-map spanning keys in [lo, hi).
func (m Map[K, V]) Range(lo, hi K) Map[K, V] {
	return Map[K, V]{t: m.t.SubtreeRange(lo, btree.Including, hi, btree.Excluding)}
}

// Union returns a map containing every key of m and other; where both have
// the same key, m's value wins.
func (m Map[K, V]) Union(other Map[K, V]) Map[K, V] {
	merger := btree.NewMerger[K, V](comparatorOf(m), orderOf(m))
	root := merger.DistinctUnion(m.t.Root(), other.t.Root())
	return Map[K, V]{t: btree.FromRoot(root, comparatorOf(m), orderOf(m))}
}

// Intersect returns a map of every key present in both m and other, with
// m's value.
func (m Map[K, V]) Intersect(other Map[K, V]) Map[K, V] {
	merger := btree.NewMerger[K, V](comparatorOf(m), orderOf(m))
	root := merger.Intersect(m.t.Root(), other.t.Root())
	return Map[K, V]{t: btree.FromRoot(root, comparatorOf(m), orderOf(m))}
}

// Subtract returns a map of every key of m not present in other.
func (m Map[K, V]) Subtract(other Map[K, V]) Map[K, V] {
	merger := btree.NewMerger[K, V](comparatorOf(m), orderOf(m))
	root := merger.Subtract(m.t.Root(), other.t.Root())
	return Map[K, V]{t: btree.FromRoot(root, comparatorOf(m), orderOf(m))}
}

func (m Map[K, V]) Dump() string { return m.t.Dump() }

// comparatorOf/orderOf recover the options a Map's Tree was built with so
// Union/Intersect/Subtract can hand the Merger a compatible Tree to wrap
// their result in. Both sides of a merge must share a comparator and
// order; mismatched maps produce nonsense results, not a panic, exactly
// like feeding the wrong comparator to btree.Tree directly.
func comparatorOf[K any, V any](m Map[K, V]) btree.Comparator[K] {
	return m.t.CompareFunc()
}

func orderOf[K any, V any](m Map[K, V]) int {
	return m.t.Order()
}
