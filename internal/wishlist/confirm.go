package wishlist

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/simplyaboveaverage/multicart-backend/pkg/config"
	pkgerrors "github.com/simplyaboveaverage/multicart-backend/pkg/errors"
)

// Confirmer is the two-step clear flow: RequestClear hands back a one-time
// token, ConfirmClear spends it and empties the list. A pending token is
// invalidated by the next RequestClear and expires after the configured
// window. Expiry is checked lazily on confirm, there is no sweeper.
type Confirmer struct {
	mu      sync.Mutex
	store   *Store
	window  time.Duration
	now     func() time.Time
	pending map[string]pendingClear
}

type pendingClear struct {
	token     string
	expiresAt time.Time
}

// NewConfirmer builds the confirmation flow over an existing wishlist store.
func NewConfirmer(store *Store, cfg config.WishlistConfig) (*Confirmer, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist store is required")
	}
	window := cfg.ClearConfirmWindow
	if window <= 0 {
		window = 15 * time.Second
	}
	return &Confirmer{
		store:   store,
		window:  window,
		now:     time.Now,
		pending: make(map[string]pendingClear),
	}, nil
}

// RequestClear opens a pending confirmation for the owner and returns the
// token plus its expiry. Any earlier pending token for the owner is replaced.
func (c *Confirmer) RequestClear(_ context.Context, owner string) (string, time.Time, error) {
	if owner == "" {
		return "", time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "owner is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry := pendingClear{
		token:     uuid.NewString(),
		expiresAt: c.now().Add(c.window),
	}
	c.pending[owner] = entry
	return entry.token, entry.expiresAt, nil
}

// ConfirmClear spends the token and clears the wishlist. Tokens are
// single-use: a second confirm with the same token fails.
func (c *Confirmer) ConfirmClear(ctx context.Context, owner, token string) error {
	if err := c.consume(owner, token); err != nil {
		return err
	}
	return c.store.Clear(ctx, owner)
}

// CancelClear drops any pending confirmation for the owner without clearing.
func (c *Confirmer) CancelClear(_ context.Context, owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, owner)
}

func (c *Confirmer) consume(owner, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.pending[owner]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no pending wishlist clear")
	}
	if c.now().After(entry.expiresAt) {
		delete(c.pending, owner)
		return pkgerrors.New(pkgerrors.CodeExpired, "wishlist clear confirmation expired")
	}
	if entry.token != token {
		return pkgerrors.New(pkgerrors.CodeValidation, "confirmation token does not match")
	}
	delete(c.pending, owner)
	return nil
}
