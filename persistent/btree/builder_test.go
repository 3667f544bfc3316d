package btree

import "testing"

func TestBuilderAppendElementSorted(t *testing.T) {
	b := NewBuilder[int, string](4)
	for k := 0; k < 100; k++ {
		b.AppendElement(k, "x")
	}
	root := b.Finish()
	root.checkInvariants(4, intCmp, true)
	if root.count != 100 {
		t.Fatalf("count = %d, want 100", root.count)
	}
	tr := FromRoot(root, intCmp, 4)
	for k := 0; k < 100; k++ {
		if !tr.Contains(k) {
			t.Fatalf("built tree missing %d", k)
		}
	}
	it := tr.Iterate()
	prev := -1
	for it.Valid() {
		if it.Key() <= prev {
			t.Fatalf("built tree out of order at %d after %d", it.Key(), prev)
		}
		prev = it.Key()
		it.Next()
	}
}

func TestBuilderAppendSubtree(t *testing.T) {
	a := NewBuilder[int, string](4)
	for k := 0; k < 10; k++ {
		a.AppendElement(k, "x")
	}
	left := a.Finish()

	b := NewBuilder[int, string](4)
	for k := 10; k < 30; k++ {
		b.AppendElement(k, "x")
	}
	right := b.Finish()

	combined := NewBuilder[int, string](4)
	combined.AppendSubtree(left)
	combined.AppendSubtree(right)
	root := combined.Finish()
	root.checkInvariants(4, intCmp, true)
	if root.count != 30 {
		t.Fatalf("count = %d, want 30", root.count)
	}
	for k := 0; k < 30; k++ {
		if !FromRoot(root, intCmp, 4).Contains(k) {
			t.Fatalf("combined tree missing %d", k)
		}
	}
}
