package btree

import "testing"

func TestIteratorPersistsAcrossMutation(t *testing.T) {
	tr := newIntTree(4)
	for k := 0; k < 20; k++ {
		tr, _ = tr.InsertOrReplace(k, "x", Any)
	}
	it, ok := tr.IterateFrom(10, Any)
	if !ok {
		t.Fatal("expected to find key 10")
	}
	if it.Key() != 10 {
		t.Fatalf("Key() = %d, want 10", it.Key())
	}

	// Mutate the tree after taking the iterator; the iterator must keep
	// observing the old value, since it holds its own node references.
	tr2, _ := tr.InsertOrReplace(10, "y", Any)
	if tr2.Len() == tr.Len() {
		// replace shouldn't change length
	}
	if it.Payload() != "x" {
		t.Fatalf("iterator observed mutation: Payload() = %q, want x", it.Payload())
	}
}

func TestIteratorNextPrevSymmetry(t *testing.T) {
	tr := newIntTree(3)
	for k := 0; k < 40; k++ {
		tr, _ = tr.InsertOrReplace(k, "x", Any)
	}
	it := tr.IterateAt(20)
	if it.Key() != 20 {
		t.Fatalf("IterateAt(20).Key() = %d, want 20", it.Key())
	}
	if !it.Next() || it.Key() != 21 {
		t.Fatalf("Next() landed on %d, want 21", it.Key())
	}
	if !it.Prev() || it.Key() != 20 {
		t.Fatalf("Prev() landed on %d, want 20", it.Key())
	}
}

func TestIteratorSplit(t *testing.T) {
	tr := newIntTree(4)
	for k := 0; k < 30; k++ {
		tr, _ = tr.InsertOrReplace(k, "x", Any)
	}
	it := tr.IterateAt(15)
	prefix, suffix := it.Split()
	prefix.checkInvariants(tr.order, tr.cmp, true)
	suffix.checkInvariants(tr.order, tr.cmp, true)
	if prefix.count != 15 || suffix.count != 15 {
		t.Fatalf("Split gave (%d,%d), want (15,15)", prefix.count, suffix.count)
	}
	for k := 0; k < 15; k++ {
		if !FromRoot(prefix, tr.cmp, tr.order).Contains(k) {
			t.Fatalf("prefix missing %d", k)
		}
	}
	for k := 15; k < 30; k++ {
		if !FromRoot(suffix, tr.cmp, tr.order).Contains(k) {
			t.Fatalf("suffix missing %d", k)
		}
	}
}

func TestIndexInvalidatesOnMutation(t *testing.T) {
	tr := newIntTree(4)
	for k := 0; k < 10; k++ {
		tr, _ = tr.InsertOrReplace(k, "x", Any)
	}
	ix, ok := tr.IndexFrom(5, Any)
	if !ok {
		t.Fatal("expected to find key 5")
	}
	if !ix.Valid(tr.Root()) {
		t.Fatal("index should be valid against the tree it was captured from")
	}
	tr2, _ := tr.InsertOrReplace(100, "y", Any)
	if ix.Valid(tr2.Root()) {
		t.Fatal("index should be invalidated after mutation")
	}
	if !ix.Valid(tr.Root()) {
		t.Fatal("index should remain valid against the original, unmutated tree")
	}
}
