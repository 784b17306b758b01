package settings

import (
	"context"
	"testing"

	"github.com/simplyaboveaverage/multicart-backend/pkg/config"
	"github.com/simplyaboveaverage/multicart-backend/pkg/state"
)

func newTestStore(t *testing.T) (*Store, state.Store) {
	t.Helper()
	mem := state.NewMemory()
	store, err := NewStore(mem, config.CatalogConfig{DefaultPageSize: 24}, nil)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	return store, mem
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	got, err := store.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ProductsPerPage != 24 {
		t.Fatalf("expected default 24, got %d", got.ProductsPerPage)
	}
	if got.HasSeenWelcome {
		t.Fatal("expected welcome flag to default to false")
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.SetProductsPerPage(ctx, "u1", 48); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.SetHasSeenWelcome(ctx, "u1", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ProductsPerPage != 48 || !got.HasSeenWelcome {
		t.Fatalf("unexpected settings: %+v", got)
	}
}

func TestSetProductsPerPageRejectsNonPositive(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	if err := store.SetProductsPerPage(context.Background(), "u1", 0); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCorruptPerPageFallsBackToDefault(t *testing.T) {
	t.Parallel()

	store, mem := newTestStore(t)
	ctx := context.Background()

	if err := mem.Set(ctx, "u1", "productsPerPage", []byte("twelve")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("expected corruption to be tolerated, got %v", err)
	}
	if got.ProductsPerPage != 24 {
		t.Fatalf("expected default 24, got %d", got.ProductsPerPage)
	}
}
