package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := store.Put(ctx, "cartItems", []byte(`{"apple":2}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	raw, found, err := store.Get(ctx, "cartItems")
	if err != nil || !found || string(raw) != `{"apple":2}` {
		t.Fatalf("Get = (%q, %v, %v)", raw, found, err)
	}
}

func TestFileStore_AbsentKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	_, found, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Fatal("missing key reported as found")
	}
}

func TestFileStore_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if err := store.Put(context.Background(), "k", []byte("v")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFileStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "store")
	if _, err := NewFileStore(dir); err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("store dir not created: %v", err)
	}
}
