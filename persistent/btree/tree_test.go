package btree

import "testing"

func newIntTree(order int) Tree[int, string] {
	return New[int, string](Degree[int, string](order), WithComparator[int, string](intCmp))
}

func TestTreeInsertAndGet(t *testing.T) {
	tr := newIntTree(4)
	for _, k := range []int{5, 3, 8, 1, 9, 2, 7, 4, 6} {
		tr, _ = tr.InsertOrReplace(k, "v", Any)
	}
	tr.root.checkInvariants(tr.order, tr.cmp, true)
	for k := 1; k <= 9; k++ {
		if !tr.Contains(k) {
			t.Fatalf("expected tree to contain %d", k)
		}
	}
	if tr.Len() != 9 {
		t.Fatalf("Len() = %d, want 9", tr.Len())
	}
}

func TestTreeInsertOrReplaceReplaces(t *testing.T) {
	tr := newIntTree(4)
	tr, found := tr.InsertOrReplace(1, "a", Any)
	if found {
		t.Fatal("expected first insert to report not-found")
	}
	tr, found = tr.InsertOrReplace(1, "b", Any)
	if !found {
		t.Fatal("expected second insert to report found")
	}
	v, _ := tr.Get(1, Any).Get()
	if v != "b" {
		t.Fatalf("Get(1) = %q, want b", v)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after replace", tr.Len())
	}
}

func TestTreeRemove(t *testing.T) {
	tr := newIntTree(4)
	for k := 0; k < 50; k++ {
		tr, _ = tr.InsertOrReplace(k, "x", Any)
	}
	for k := 0; k < 50; k += 2 {
		var removed string
		tr, removed = removeOrZero(tr, k)
		if removed == "" {
			t.Fatalf("remove(%d) reported not found", k)
		}
		tr.root.checkInvariants(tr.order, tr.cmp, true)
	}
	if tr.Len() != 25 {
		t.Fatalf("Len() = %d, want 25", tr.Len())
	}
	for k := 1; k < 50; k += 2 {
		if !tr.Contains(k) {
			t.Fatalf("expected odd key %d to remain", k)
		}
	}
	for k := 0; k < 50; k += 2 {
		if tr.Contains(k) {
			t.Fatalf("expected even key %d to be gone", k)
		}
	}
}

func removeOrZero(tr Tree[int, string], k int) (Tree[int, string], string) {
	t2, v := tr.Remove(k, Any)
	s, _ := v.Get()
	return t2, s
}

func TestTreeElementAtAndIndexOf(t *testing.T) {
	tr := newIntTree(5)
	for k := 0; k < 30; k++ {
		tr, _ = tr.InsertOrReplace(k, "x", Any)
	}
	for pos := 0; pos < 30; pos++ {
		k, _ := tr.ElementAt(pos)
		if k != pos {
			t.Fatalf("ElementAt(%d) = %d, want %d", pos, k, pos)
		}
		idx, ok := tr.IndexOf(pos, Any)
		if !ok || idx != pos {
			t.Fatalf("IndexOf(%d) = (%d,%v), want (%d,true)", pos, idx, ok, pos)
		}
	}
}

func TestTreeIterateInOrder(t *testing.T) {
	tr := newIntTree(3)
	want := []int{3, 1, 4, 1, 5, 9, 2, 6}
	for _, k := range want {
		tr, _ = tr.InsertOrReplace(k, "x", Any)
	}
	it := tr.Iterate()
	prev := -1 << 30
	count := 0
	for it.Valid() {
		if it.Key() < prev {
			t.Fatalf("iteration out of order at key %d after %d", it.Key(), prev)
		}
		prev = it.Key()
		count++
		it.Next()
	}
	if count != tr.Len() {
		t.Fatalf("iterated %d elements, want %d", count, tr.Len())
	}
}

func TestTreeSubtreeRange(t *testing.T) {
	tr := newIntTree(4)
	for k := 0; k < 20; k++ {
		tr, _ = tr.InsertOrReplace(k, "x", Any)
	}
	sub := tr.SubtreeRange(5, Including, 10, Excluding)
	if sub.Len() != 5 {
		t.Fatalf("SubtreeRange Len = %d, want 5", sub.Len())
	}
	for k := 5; k < 10; k++ {
		if !sub.Contains(k) {
			t.Fatalf("expected subtree to contain %d", k)
		}
	}
	if sub.Contains(4) || sub.Contains(10) {
		t.Fatal("subtree range leaked an out-of-range key")
	}
}
