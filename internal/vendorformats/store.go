package vendorformats

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	pkgerrors "github.com/simplyaboveaverage/multicart-backend/pkg/errors"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
	"github.com/simplyaboveaverage/multicart-backend/pkg/state"
)

const stateKey = "vendorFormats"

// Store persists each account's preferred cart-link format per vendor.
// Vendor names are lowercased on write so lookups are case-insensitive;
// the format key ("standard", "alternative", "format_1", ...) is stored
// verbatim.
type Store struct {
	mu    sync.Mutex
	state state.Store
	logg  *logger.Logger
}

// NewStore builds a vendor-format store on top of the client-state backend.
func NewStore(st state.Store, logg *logger.Logger) (*Store, error) {
	if st == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "state store is required")
	}
	return &Store{state: st, logg: logg}, nil
}

// Save records the preferred format for a vendor, replacing any earlier
// choice.
func (s *Store) Save(ctx context.Context, owner, vendor, format string) error {
	if vendor == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor is required")
	}
	if format == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "format is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	formats, err := s.load(ctx, owner)
	if err != nil {
		return err
	}
	formats[strings.ToLower(vendor)] = format
	s.persist(ctx, owner, formats)
	return nil
}

// Get returns the saved format for the vendor, if any.
func (s *Store) Get(ctx context.Context, owner, vendor string) (string, bool, error) {
	formats, err := s.All(ctx, owner)
	if err != nil {
		return "", false, err
	}
	format, ok := formats[strings.ToLower(vendor)]
	return format, ok, nil
}

// All returns the full vendor -> format map for the owner.
func (s *Store) All(ctx context.Context, owner string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, owner)
}

func (s *Store) load(ctx context.Context, owner string) (map[string]string, error) {
	raw, ok, err := s.state.Get(ctx, owner, stateKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor formats")
	}
	if !ok {
		return map[string]string{}, nil
	}

	var formats map[string]string
	if err := json.Unmarshal(raw, &formats); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "discarding corrupt persisted vendor formats")
		}
		return map[string]string{}, nil
	}
	if formats == nil {
		formats = map[string]string{}
	}
	return formats, nil
}

func (s *Store) persist(ctx context.Context, owner string, formats map[string]string) {
	raw, err := json.Marshal(formats)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "failed to encode vendor formats", err)
		}
		return
	}
	if err := s.state.Set(ctx, owner, stateKey, raw); err != nil && s.logg != nil {
		s.logg.Error(ctx, "failed to persist vendor formats", err)
	}
}
