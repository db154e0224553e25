package domain

import "testing"

func TestMerge(t *testing.T) {
	t.Run("server wins on collision, union on disjoint keys", func(t *testing.T) {
		local := Ledger{"a": 2, "b": 1}
		server := Ledger{"b": 3, "c": 1}

		got := Merge(local, server)

		want := Ledger{"a": 2, "b": 3, "c": 1}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for id, qty := range want {
			if got[id] != qty {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	})

	t.Run("non-positive server entries are dropped", func(t *testing.T) {
		got := Merge(Ledger{"a": 2}, Ledger{"a": 0, "b": -1})
		if len(got) != 0 {
			t.Fatalf("expected empty ledger, got %v", got)
		}
	})

	t.Run("empty server keeps local", func(t *testing.T) {
		got := Merge(Ledger{"a": 2}, Ledger{})
		if got["a"] != 2 || len(got) != 1 {
			t.Fatalf("expected {a:2}, got %v", got)
		}
	})
}

func TestClone(t *testing.T) {
	orig := Ledger{"a": 1}
	clone := orig.Clone()
	clone["a"] = 5
	clone["b"] = 2

	if orig["a"] != 1 || len(orig) != 1 {
		t.Fatalf("clone mutation leaked into original: %v", orig)
	}
}

func TestCount(t *testing.T) {
	if got := (Ledger{}).Count(); got != 0 {
		t.Fatalf("empty ledger count = %d", got)
	}
	if got := (Ledger{"a": 2, "b": 3}).Count(); got != 5 {
		t.Fatalf("count = %d, want 5", got)
	}
}
