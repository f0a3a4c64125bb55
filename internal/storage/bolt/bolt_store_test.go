package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) (*Store, func()) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath, time.Second)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return store, cleanup
}

func TestOpen(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if store == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestGet_Missing(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	v, found, err := store.Get(context.Background(), "user_habits")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found || v != nil {
		t.Fatalf("expected nothing stored, got found=%v value=%q", found, v)
	}
}

func TestSetGet(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Set(ctx, "user_habits", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "user_habits", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	v, found, err := store.Get(ctx, "user_habits")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatal("expected key to be found")
	}
	if string(v) != `[]` {
		t.Fatalf("got %q want []", v)
	}
}

func TestClear(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	for _, k := range []string{"a", "b"} {
		if err := store.Set(ctx, k, []byte("x")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	for _, k := range []string{"a", "b"} {
		_, found, err := store.Get(ctx, k)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if found {
			t.Fatalf("expected %s to be cleared", k)
		}
	}

	// still writable after a clear
	if err := store.Set(ctx, "a", []byte("y")); err != nil {
		t.Fatalf("Set after Clear failed: %v", err)
	}
}

func TestReopenPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	s, err := Open(dbPath, time.Second)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = Open(dbPath, time.Second)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	v, found, err := s.Get(ctx, "k")
	if err != nil || !found || string(v) != "v" {
		t.Fatalf("got %q found=%v err=%v", v, found, err)
	}
}
