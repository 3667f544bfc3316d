package btree

import "testing"

func buildTree(order int, keys ...int) Tree[int, string] {
	tr := New[int, string](Degree[int, string](order), WithComparator[int, string](intCmp))
	for _, k := range keys {
		tr, _ = tr.InsertOrReplace(k, "x", Any)
	}
	return tr
}

func collectKeys(tr Tree[int, string]) []int {
	var out []int
	it := tr.Iterate()
	for it.Valid() {
		out = append(out, it.Key())
		it.Next()
	}
	return out
}

func sliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMergerUnion(t *testing.T) {
	a := buildTree(4, 1, 2, 3, 5)
	b := buildTree(4, 2, 3, 4, 6)
	m := NewMerger[int, string](intCmp, 4)
	root := m.Union(a.Root(), b.Root())
	root.checkInvariants(4, intCmp, true)
	got := collectKeys(FromRoot(root, intCmp, 4))
	want := []int{1, 2, 2, 3, 3, 4, 5, 6}
	if !sliceEqual(got, want) {
		t.Fatalf("Union = %v, want %v", got, want)
	}
}

func TestMergerDistinctUnion(t *testing.T) {
	a := buildTree(4, 1, 2, 3, 5)
	b := buildTree(4, 2, 3, 4, 6)
	m := NewMerger[int, string](intCmp, 4)
	root := m.DistinctUnion(a.Root(), b.Root())
	root.checkInvariants(4, intCmp, true)
	got := collectKeys(FromRoot(root, intCmp, 4))
	want := []int{1, 2, 3, 4, 5, 6}
	if !sliceEqual(got, want) {
		t.Fatalf("DistinctUnion = %v, want %v", got, want)
	}
}

func TestMergerSubtract(t *testing.T) {
	a := buildTree(4, 1, 2, 3, 4, 5)
	b := buildTree(4, 2, 4)
	m := NewMerger[int, string](intCmp, 4)
	root := m.Subtract(a.Root(), b.Root())
	root.checkInvariants(4, intCmp, true)
	got := collectKeys(FromRoot(root, intCmp, 4))
	want := []int{1, 3, 5}
	if !sliceEqual(got, want) {
		t.Fatalf("Subtract = %v, want %v", got, want)
	}
}

func TestMergerExclusiveOr(t *testing.T) {
	a := buildTree(4, 1, 2, 3)
	b := buildTree(4, 2, 3, 4)
	m := NewMerger[int, string](intCmp, 4)
	root := m.ExclusiveOr(a.Root(), b.Root())
	root.checkInvariants(4, intCmp, true)
	got := collectKeys(FromRoot(root, intCmp, 4))
	want := []int{1, 4}
	if !sliceEqual(got, want) {
		t.Fatalf("ExclusiveOr = %v, want %v", got, want)
	}
}

func TestMergerIntersect(t *testing.T) {
	a := buildTree(4, 1, 2, 3, 4)
	b := buildTree(4, 2, 4, 6)
	m := NewMerger[int, string](intCmp, 4)
	root := m.Intersect(a.Root(), b.Root())
	root.checkInvariants(4, intCmp, true)
	got := collectKeys(FromRoot(root, intCmp, 4))
	want := []int{2, 4}
	if !sliceEqual(got, want) {
		t.Fatalf("Intersect = %v, want %v", got, want)
	}
}

func buildRangeTree(order, lo, hi int) Tree[int, string] {
	tr := New[int, string](Degree[int, string](order), WithComparator[int, string](intCmp))
	for k := lo; k < hi; k++ {
		tr, _ = tr.InsertOrReplace(k, "x", Any)
	}
	return tr
}

// TestMergerDisjointTreesStayLogarithmic merges two large trees whose key
// ranges never interleave, so every comparison loop iteration in run()
// would see the same side "less" until that side runs dry. The nextPart
// bulk path must collapse that into a handful of calls rather than one per
// element.
func TestMergerDisjointTreesStayLogarithmic(t *testing.T) {
	const n = 50000
	a := buildRangeTree(8, 0, n)
	b := buildRangeTree(8, n, 2*n)
	nextPartCalls = 0
	m := NewMerger[int, string](intCmp, 8)
	root := m.Union(a.Root(), b.Root())
	root.checkInvariants(8, intCmp, true)
	if got := root.count; got != 2*n {
		t.Fatalf("merged count = %d, want %d", got, 2*n)
	}
	if nextPartCalls > 20 {
		t.Fatalf("nextPart called %d times merging disjoint trees, want O(log n) (<=20)", nextPartCalls)
	}
}

func TestMergerSharedSubtreeFastPath(t *testing.T) {
	base := buildTree(4, 1, 2, 3, 4, 5, 6, 7, 8)
	derived, _ := base.InsertOrReplace(100, "x", Any)
	m := NewMerger[int, string](intCmp, 4)
	root := m.Union(base.Root(), derived.Root())
	root.checkInvariants(4, intCmp, true)
	got := collectKeys(FromRoot(root, intCmp, 4))
	want := []int{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 100}
	if !sliceEqual(got, want) {
		t.Fatalf("Union over related trees = %v, want %v", got, want)
	}
}
