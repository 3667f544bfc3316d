package btree

import (
	"math/rand"
	"testing"
)

func TestRandomizedInsertRemoveKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tr := newIntTree(5)
	present := map[int]bool{}

	for i := 0; i < 2000; i++ {
		k := rng.Intn(300)
		if rng.Intn(3) == 0 && present[k] {
			tr, _ = tr.Remove(k, Any)
			delete(present, k)
		} else {
			tr, _ = tr.InsertOrReplace(k, "x", Any)
			present[k] = true
		}
		tr.root.checkInvariants(tr.order, tr.cmp, true)
	}

	if tr.Len() != len(present) {
		t.Fatalf("Len() = %d, want %d", tr.Len(), len(present))
	}
	for k := range present {
		if !tr.Contains(k) {
			t.Fatalf("expected present key %d to be found", k)
		}
	}
}

func TestPersistenceAcrossIncarnations(t *testing.T) {
	tr := newIntTree(4)
	var incarnations []Tree[int, string]
	for k := 0; k < 50; k++ {
		tr, _ = tr.InsertOrReplace(k, "x", Any)
		incarnations = append(incarnations, tr)
	}
	for i, snap := range incarnations {
		if snap.Len() != i+1 {
			t.Fatalf("incarnation %d has Len() = %d, want %d", i, snap.Len(), i+1)
		}
		for k := 0; k <= i; k++ {
			if !snap.Contains(k) {
				t.Fatalf("incarnation %d missing key %d", i, k)
			}
		}
		for k := i + 1; k < 50; k++ {
			if snap.Contains(k) {
				t.Fatalf("incarnation %d unexpectedly contains future key %d", i, k)
			}
		}
	}
}
