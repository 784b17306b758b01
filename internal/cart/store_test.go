package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/simplyaboveaverage/multicart-backend/internal/catalog"
	"github.com/simplyaboveaverage/multicart-backend/pkg/state"
)

func newTestStore(t *testing.T) (*Store, state.Store) {
	t.Helper()
	mem := state.NewMemory()
	store, err := NewStore(mem, nil)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	return store, mem
}

func product(id, vendor, price string) catalog.Product {
	return catalog.Product{
		ID:        id,
		Vendor:    vendor,
		Price:     decimal.RequireFromString(price),
		ProductID: "pid-" + id,
	}
}

func TestAddIncrementsExisting(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "u1", product("p1", "A", "10")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, err := store.Add(ctx, "u1", product("p1", "A", "10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected one entry, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "u1", product("p1", "A", "10")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, err := store.UpdateQuantity(ctx, "u1", "p1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}

	count, err := store.ItemsCount(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected count 0, got %d", count)
	}
}

func TestUpdateQuantitySetsExactValue(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "u1", product("p1", "A", "10")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, err := store.UpdateQuantity(ctx, "u1", "p1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "u1", product("p1", "A", "10")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, err := store.Remove(ctx, "u1", "absent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected cart unchanged, got %d items", len(items))
	}
}

func TestSubtotalAndBrandViews(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	mustAdd := func(p catalog.Product) {
		t.Helper()
		if _, err := store.Add(ctx, "u1", p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	mustAdd(product("p1", "A", "10.50"))
	mustAdd(product("p1", "A", "10.50")) // qty 2
	mustAdd(product("p2", "B", "20"))
	mustAdd(product("p3", "A", "5"))

	total, err := store.Subtotal(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("46")) {
		t.Fatalf("expected subtotal 46, got %s", total)
	}

	brandTotal, err := store.BrandSubtotal(ctx, "u1", "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !brandTotal.Equal(decimal.RequireFromString("26")) {
		t.Fatalf("expected brand subtotal 26, got %s", brandTotal)
	}

	brands, err := store.UniqueBrands(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(brands) != 2 || brands[0] != "A" || brands[1] != "B" {
		t.Fatalf("expected brands [A B], got %v", brands)
	}
}

func TestBrandItemsCaseSensitive(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "u1", product("p1", "Amalli Talli", "10")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := store.BrandItems(ctx, "u1", "amalli talli")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatal("expected case-sensitive vendor match to miss")
	}
}

func TestRehydrationRoundTrip(t *testing.T) {
	t.Parallel()

	mem := state.NewMemory()
	store, err := NewStore(mem, nil)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Add(ctx, "u1", product("p1", "A", "10")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.UpdateQuantity(ctx, "u1", "p1", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Simulate a restart: a fresh store over the same persisted state.
	reloaded, err := NewStore(mem, nil)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	items, err := reloaded.Items(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "p1" || items[0].Quantity != 3 {
		t.Fatalf("unexpected rehydrated cart: %+v", items)
	}
	if !items[0].Price.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("expected price to survive round-trip, got %s", items[0].Price)
	}
}

func TestCorruptStateYieldsEmptyCart(t *testing.T) {
	t.Parallel()

	mem := state.NewMemory()
	ctx := context.Background()
	if err := mem.Set(ctx, "u1", "cart", []byte(`[{"id":"p1","quantity":`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store, err := NewStore(mem, nil)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	items, err := store.Items(ctx, "u1")
	if err != nil {
		t.Fatalf("expected corruption to be tolerated, got %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}
}

func TestSummarizeGroupsByVendor(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "u1", product("p1", "A", "10")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Add(ctx, "u1", product("p2", "B", "7")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := store.Summarize(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.ItemsCount != 2 {
		t.Fatalf("expected count 2, got %d", summary.ItemsCount)
	}
	if len(summary.Brands) != 2 {
		t.Fatalf("expected 2 brand groups, got %d", len(summary.Brands))
	}
	if summary.Brands[0].Vendor != "A" || summary.Brands[1].Vendor != "B" {
		t.Fatalf("expected first-seen brand order, got %+v", summary.Brands)
	}
}
