package btree

import "testing"

func TestCursorSetPayload(t *testing.T) {
	tr := newIntTree(4)
	for k := 0; k < 10; k++ {
		tr, _ = tr.InsertOrReplace(k, "x", Any)
	}
	tr = tr.SetPayloadAt(3, "changed")
	v, _ := tr.Get(3, Any).Get()
	if v != "changed" {
		t.Fatalf("Get(3) = %q, want changed", v)
	}
}

func TestTreeInsertAtAppend(t *testing.T) {
	tr := newIntTree(4)
	for i := 0; i < 20; i++ {
		tr = tr.InsertAt(tr.Len(), i, "x")
	}
	tr.root.checkInvariants(tr.order, tr.cmp, true)
	for pos := 0; pos < 20; pos++ {
		k, _ := tr.ElementAt(pos)
		if k != pos {
			t.Fatalf("ElementAt(%d) = %d, want %d", pos, k, pos)
		}
	}
}

func TestTreeInsertAtMiddle(t *testing.T) {
	tr := newIntTree(4)
	for i := 0; i < 10; i++ {
		tr = tr.InsertAt(tr.Len(), i, "x")
	}
	tr = tr.InsertAt(5, -1, "mid")
	tr.root.checkInvariants(tr.order, tr.cmp, true)
	k, v := tr.ElementAt(5)
	if k != -1 || v != "mid" {
		t.Fatalf("ElementAt(5) = (%d,%q), want (-1,mid)", k, v)
	}
	if tr.Len() != 11 {
		t.Fatalf("Len() = %d, want 11", tr.Len())
	}
}

func TestTreeRemoveAt(t *testing.T) {
	tr := newIntTree(4)
	for i := 0; i < 15; i++ {
		tr = tr.InsertAt(tr.Len(), i, "x")
	}
	tr, k, _ := tr.RemoveAt(7)
	if k != 7 {
		t.Fatalf("RemoveAt(7) removed key %d, want 7", k)
	}
	tr.root.checkInvariants(tr.order, tr.cmp, true)
	if tr.Len() != 14 {
		t.Fatalf("Len() = %d, want 14", tr.Len())
	}
	k2, _ := tr.ElementAt(7)
	if k2 != 8 {
		t.Fatalf("ElementAt(7) after removal = %d, want 8", k2)
	}
}
