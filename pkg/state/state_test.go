package state

import (
	"context"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "user-1", "cart"); err != nil || ok {
		t.Fatalf("expected miss on empty store, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "user-1", "cart", []byte(`[{"id":"p1"}]`)); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	value, ok, err := store.Get(ctx, "user-1", "cart")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(value) != `[{"id":"p1"}]` {
		t.Fatalf("unexpected value %q", value)
	}

	// Owners do not leak into each other.
	if _, ok, _ := store.Get(ctx, "user-2", "cart"); ok {
		t.Fatal("expected miss for different owner")
	}

	if err := store.Delete(ctx, "user-1", "cart"); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "user-1", "cart"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	original := []byte("abc")
	if err := store.Set(ctx, "u", "k", original); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	original[0] = 'z'

	value, _, _ := store.Get(ctx, "u", "k")
	if string(value) != "abc" {
		t.Fatalf("expected stored value isolated from caller mutation, got %q", value)
	}
}
