package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "habits.sqlite"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

func TestGet_Missing(t *testing.T) {
	store := newTestStore(t)

	_, found, err := store.Get(context.Background(), "user_habits")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Fatal("expected key not found")
	}
}

func TestSetOverwriteGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "user_habits", []byte("first")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "user_habits", []byte("second")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	v, found, err := store.Get(ctx, "user_habits")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found || string(v) != "second" {
		t.Fatalf("got %q found=%v, want second", v, found)
	}
}

func TestSetEmptyValue(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "k", nil); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, found, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found || len(v) != 0 {
		t.Fatalf("got %q found=%v, want empty found value", v, found)
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "user_habits", []byte("x")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found, _ := store.Get(ctx, "user_habits"); found {
		t.Fatal("expected store to be empty after Clear")
	}
}
