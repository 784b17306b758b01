package wishlist

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/simplyaboveaverage/multicart-backend/internal/catalog"
	pkgerrors "github.com/simplyaboveaverage/multicart-backend/pkg/errors"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
	"github.com/simplyaboveaverage/multicart-backend/pkg/state"
)

const stateKey = "wishlist"

// Store owns the per-account wishlist. Unlike the cart there are no
// quantities: an entry either is or is not on the list, and re-adding an
// existing product is a no-op.
type Store struct {
	mu    sync.Mutex
	state state.Store
	logg  *logger.Logger
}

// NewStore builds a wishlist store on top of the client-state backend.
func NewStore(st state.Store, logg *logger.Logger) (*Store, error) {
	if st == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "state store is required")
	}
	return &Store{state: st, logg: logg}, nil
}

// Items returns the owner's wishlist, rehydrating from persisted state.
func (s *Store) Items(ctx context.Context, owner string) ([]catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, owner)
}

// Add appends the product unless its id is already on the list.
func (s *Store) Add(ctx context.Context, owner string, product catalog.Product) ([]catalog.Product, error) {
	return s.mutate(ctx, owner, func(items []catalog.Product) []catalog.Product {
		for _, item := range items {
			if item.ID == product.ID {
				return items
			}
		}
		return append(items, product)
	})
}

// Remove drops the matching entry; absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, owner, productID string) ([]catalog.Product, error) {
	return s.mutate(ctx, owner, func(items []catalog.Product) []catalog.Product {
		kept := items[:0]
		for _, item := range items {
			if item.ID != productID {
				kept = append(kept, item)
			}
		}
		return kept
	})
}

// Contains reports whether the product id is on the list.
func (s *Store) Contains(ctx context.Context, owner, productID string) (bool, error) {
	items, err := s.Items(ctx, owner)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if item.ID == productID {
			return true, nil
		}
	}
	return false, nil
}

// Count returns the number of entries. Each product counts once.
func (s *Store) Count(ctx context.Context, owner string) (int, error) {
	items, err := s.Items(ctx, owner)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Clear empties the owner's wishlist. Callers that want the two-step
// confirmation flow go through Confirmer instead of calling this directly.
func (s *Store) Clear(ctx context.Context, owner string) error {
	_, err := s.mutate(ctx, owner, func([]catalog.Product) []catalog.Product {
		return []catalog.Product{}
	})
	return err
}

func (s *Store) mutate(ctx context.Context, owner string, apply func([]catalog.Product) []catalog.Product) ([]catalog.Product, error) {
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

func (s *Store) load(ctx context.Context, owner string) ([]catalog.Product, error) {
	raw, ok, err := s.state.Get(ctx, owner, stateKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist state")
	}
	if !ok {
		return []catalog.Product{}, nil
	}

	var items []catalog.Product
	if err := json.Unmarshal(raw, &items); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "discarding corrupt persisted wishlist")
		}
		return []catalog.Product{}, nil
	}
	if items == nil {
		items = []catalog.Product{}
	}
	return items, nil
}

func (s *Store) persist(ctx context.Context, owner string, items []catalog.Product) {
	raw, err := json.Marshal(items)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "failed to encode wishlist state", err)
		}
		return
	}
	if err := s.state.Set(ctx, owner, stateKey, raw); err != nil && s.logg != nil {
		s.logg.Error(ctx, "failed to persist wishlist state", err)
	}
}
