package settings

import (
	"context"
	"strconv"
	"sync"

	"github.com/simplyaboveaverage/multicart-backend/pkg/config"
	pkgerrors "github.com/simplyaboveaverage/multicart-backend/pkg/errors"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
	"github.com/simplyaboveaverage/multicart-backend/pkg/state"
)

const (
	perPageKey = "productsPerPage"
	welcomeKey = "hasSeenWelcome"
)

// Settings are the per-account presentation preferences.
type Settings struct {
	ProductsPerPage int  `json:"products_per_page"`
	HasSeenWelcome  bool `json:"has_seen_welcome"`
}

// Store persists presentation preferences. Each preference lives under its
// own state key as a bare scalar, which keeps old persisted values readable.
type Store struct {
	mu             sync.Mutex
	state          state.Store
	logg           *logger.Logger
	defaultPerPage int
}

// NewStore builds a settings store; the catalog page-size default doubles
// as the products-per-page default.
func NewStore(st state.Store, cfg config.CatalogConfig, logg *logger.Logger) (*Store, error) {
	if st == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "state store is required")
	}
	perPage := cfg.DefaultPageSize
	if perPage <= 0 {
		perPage = 24
	}
	return &Store{state: st, logg: logg, defaultPerPage: perPage}, nil
}

// Get returns the owner's settings, substituting defaults for anything
// missing or unreadable.
func (s *Store) Get(ctx context.Context, owner string) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := Settings{ProductsPerPage: s.defaultPerPage}

	raw, ok, err := s.state.Get(ctx, owner, perPageKey)
	if err != nil {
		return Settings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}
	if ok {
		if n, convErr := strconv.Atoi(string(raw)); convErr == nil && n > 0 {
			out.ProductsPerPage = n
		} else if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "value", string(raw)), "discarding corrupt products-per-page setting")
		}
	}

	raw, ok, err = s.state.Get(ctx, owner, welcomeKey)
	if err != nil {
		return Settings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}
	if ok {
		out.HasSeenWelcome = string(raw) == "true"
	}

	return out, nil
}

// SetProductsPerPage stores the page-size preference.
func (s *Store) SetProductsPerPage(ctx context.Context, owner string, perPage int) error {
	if perPage <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "products per page must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.Set(ctx, owner, perPageKey, []byte(strconv.Itoa(perPage))); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist settings")
	}
	return nil
}

// SetHasSeenWelcome marks whether the welcome flow has been shown.
func (s *Store) SetHasSeenWelcome(ctx context.Context, owner string, seen bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.Set(ctx, owner, welcomeKey, []byte(strconv.FormatBool(seen))); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist settings")
	}
	return nil
}
