package kv

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer store.Close()

	if err := store.Put(ctx, "cartItems", []byte(`{"apple":2}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	raw, found, err := store.Get(ctx, "cartItems")
	if err != nil || !found {
		t.Fatalf("Get = (%v, %v, %v)", raw, found, err)
	}
	if string(raw) != `{"apple":2}` {
		t.Fatalf("got %q", raw)
	}
}

func TestSQLiteStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer store.Close()

	if err := store.Put(ctx, "k", []byte("one")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, "k", []byte("two")); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	raw, _, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(raw) != "two" {
		t.Fatalf("got %q, want overwrite", raw)
	}
}

func TestSQLiteStore_AbsentKey(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer store.Close()

	_, found, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Fatal("missing key reported as found")
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := first.Put(ctx, "cartItems", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	first.Close()

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()

	raw, found, err := second.Get(ctx, "cartItems")
	if err != nil || !found || string(raw) != `{"a":1}` {
		t.Fatalf("Get after reopen = (%q, %v, %v)", raw, found, err)
	}
}
