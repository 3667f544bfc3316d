package btree

import "testing"

func intCmp(a, b int) int { return a - b }

func leafOf(keys ...int) *Node[int, string] {
	n := &Node[int, string]{}
	for _, k := range keys {
		n.keys = append(n.keys, k)
		n.payloads = append(n.payloads, "")
	}
	n.count = len(keys)
	return n
}

func TestNodeFindSlot(t *testing.T) {
	n := leafOf(1, 3, 5, 7)
	cases := []struct {
		key      int
		wantIdx  int
		wantHit  bool
	}{
		{0, 0, false},
		{1, 0, true},
		{2, 1, false},
		{7, 3, true},
		{8, 4, false},
	}
	for _, c := range cases {
		idx, hit := n.findSlot(intCmp, c.key)
		if idx != c.wantIdx || hit != c.wantHit {
			t.Errorf("findSlot(%d) = (%d,%v), want (%d,%v)", c.key, idx, hit, c.wantIdx, c.wantHit)
		}
	}
}

func TestNodeSplit(t *testing.T) {
	n := leafOf(1, 2, 3, 4, 5)
	left, sepKey, _, right := n.split()
	if sepKey != 3 {
		t.Fatalf("sepKey = %d, want 3", sepKey)
	}
	if len(left.keys) != 2 || left.keys[0] != 1 || left.keys[1] != 2 {
		t.Fatalf("left = %v", left.keys)
	}
	if len(right.keys) != 2 || right.keys[0] != 4 || right.keys[1] != 5 {
		t.Fatalf("right = %v", right.keys)
	}
}

func TestNodeCloneIsIndependent(t *testing.T) {
	n := leafOf(1, 2, 3)
	c := n.clone()
	c.keys[0] = 99
	if n.keys[0] != 1 {
		t.Fatalf("mutating clone affected original: %v", n.keys)
	}
}

func TestEnsureOwnedReusesSameOwner(t *testing.T) {
	owner := newOwnerTag()
	n := leafOf(1, 2, 3)
	n.owner = owner
	got := n.ensureOwned(owner)
	if got != n {
		t.Fatalf("ensureOwned cloned a node already owned by the same session")
	}
	other := newOwnerTag()
	got2 := n.ensureOwned(other)
	if got2 == n {
		t.Fatalf("ensureOwned failed to clone a node owned by a different session")
	}
}

func TestPositionOfSlotLeaf(t *testing.T) {
	n := leafOf(10, 20, 30)
	for i := 0; i < 3; i++ {
		if got := n.positionOfSlot(i); got != i {
			t.Errorf("positionOfSlot(%d) = %d, want %d", i, got, i)
		}
	}
}

func TestCeilingGrowsWithHeadroom(t *testing.T) {
	c := ceiling(5)
	if c <= 5 {
		t.Fatalf("ceiling(5) = %d, want > 5", c)
	}
}
