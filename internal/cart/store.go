package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/simplyaboveaverage/multicart-backend/internal/catalog"
	pkgerrors "github.com/simplyaboveaverage/multicart-backend/pkg/errors"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
	"github.com/simplyaboveaverage/multicart-backend/pkg/state"
)

const stateKey = "cart"

// Store owns the per-account cart collection. Mutations are funnelled
// through a single writer and the full item list is persisted after each
// change; persistence failures degrade to logging, never to a lost mutation.
type Store struct {
	mu    sync.Mutex
	state state.Store
	logg  *logger.Logger
}

// NewStore builds a cart store on top of the client-state backend.
func NewStore(st state.Store, logg *logger.Logger) (*Store, error) {
	if st == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "state store is required")
	}
	return &Store{state: st, logg: logg}, nil
}

// Items returns the owner's cart, rehydrating from persisted state.
// Corrupt persisted data falls back to an empty cart.
func (s *Store) Items(ctx context.Context, owner string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, owner)
}

// Add inserts the product with quantity 1, or increments the quantity when
// the product id is already present.
func (s *Store) Add(ctx context.Context, owner string, product catalog.Product) ([]Item, error) {
	return s.mutate(ctx, owner, func(items []Item) []Item {
		for i := range items {
			if items[i].ID == product.ID {
				items[i].Quantity++
				return items
			}
		}
		return append(items, Item{Product: product, Quantity: 1})
	})
}

// Remove drops the matching entry; absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, owner, productID string) ([]Item, error) {
	return s.mutate(ctx, owner, func(items []Item) []Item {
		return removeByID(items, productID)
	})
}

// UpdateQuantity sets the quantity exactly. Quantities <= 0 remove the item.
func (s *Store) UpdateQuantity(ctx context.Context, owner, productID string, quantity int) ([]Item, error) {
	return s.mutate(ctx, owner, func(items []Item) []Item {
		if quantity <= 0 {
			return removeByID(items, productID)
		}
		for i := range items {
			if items[i].ID == productID {
				items[i].Quantity = quantity
			}
		}
		return items
	})
}

// Clear empties the owner's cart.
func (s *Store) Clear(ctx context.Context, owner string) error {
	_, err := s.mutate(ctx, owner, func([]Item) []Item {
		return []Item{}
	})
	return err
}

// ItemsCount sums quantities across the cart.
func (s *Store) ItemsCount(ctx context.Context, owner string) (int, error) {
	items, err := s.Items(ctx, owner)
	if err != nil {
		return 0, err
	}
	return countItems(items), nil
}

// Subtotal sums price x quantity across the cart.
func (s *Store) Subtotal(ctx context.Context, owner string) (decimal.Decimal, error) {
	items, err := s.Items(ctx, owner)
	if err != nil {
		return decimal.Zero, err
	}
	return subtotal(items), nil
}

// BrandItems returns items whose vendor exactly equals the given string.
// The match is deliberately case-sensitive: vendor names come from the
// catalog verbatim and grouping must not merge near-duplicates.
func (s *Store) BrandItems(ctx context.Context, owner, vendor string) ([]Item, error) {
	items, err := s.Items(ctx, owner)
	if err != nil {
		return nil, err
	}
	return brandItems(items, vendor), nil
}

// BrandSubtotal is the subtotal restricted to one vendor.
func (s *Store) BrandSubtotal(ctx context.Context, owner, vendor string) (decimal.Decimal, error) {
	items, err := s.BrandItems(ctx, owner, vendor)
	if err != nil {
		return decimal.Zero, err
	}
	return subtotal(items), nil
}

// UniqueBrands returns distinct vendors in first-seen order.
func (s *Store) UniqueBrands(ctx context.Context, owner string) ([]string, error) {
	items, err := s.Items(ctx, owner)
	if err != nil {
		return nil, err
	}
	return uniqueBrands(items), nil
}

// Summarize builds the cart rollup grouped by vendor.
func (s *Store) Summarize(ctx context.Context, owner string) (Summary, error) {
	items, err := s.Items(ctx, owner)
	if err != nil {
		return Summary{}, err
	}

	brands := uniqueBrands(items)
	groups := make([]BrandGroup, 0, len(brands))
	for _, vendor := range brands {
		vendorItems := brandItems(items, vendor)
		groups = append(groups, BrandGroup{
			Vendor:   vendor,
			Items:    vendorItems,
			Subtotal: subtotal(vendorItems),
		})
	}

	return Summary{
		ItemsCount: countItems(items),
		Subtotal:   subtotal(items),
		Brands:     groups,
	}, nil
}

func (s *Store) mutate(ctx context.Context, owner string, apply func([]Item) []Item) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	items = apply(items)
	s.persist(ctx, owner, items)
	return items, nil
}

func (s *Store) load(ctx context.Context, owner string) ([]Item, error) {
	raw, ok, err := s.state.Get(ctx, owner, stateKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart state")
	}
	if !ok {
		return []Item{}, nil
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "discarding corrupt persisted cart")
		}
		return []Item{}, nil
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (s *Store) persist(ctx context.Context, owner string, items []Item) {
	raw, err := json.Marshal(items)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "failed to encode cart state", err)
		}
		return
	}
	if err := s.state.Set(ctx, owner, stateKey, raw); err != nil && s.logg != nil {
		s.logg.Error(ctx, "failed to persist cart state", err)
	}
}

func removeByID(items []Item, productID string) []Item {
	kept := items[:0]
	for _, item := range items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	return kept
}

func brandItems(items []Item, vendor string) []Item {
	matched := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Vendor == vendor {
			matched = append(matched, item)
		}
	}
	return matched
}

func countItems(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func subtotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func uniqueBrands(items []Item) []string {
	seen := make(map[string]struct{}, len(items))
	brands := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Vendor]; ok {
			continue
		}
		seen[item.Vendor] = struct{}{}
		brands = append(brands, item.Vendor)
	}
	return brands
}
