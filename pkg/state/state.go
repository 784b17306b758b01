// Package state is the durable client-state surface: a small key-value
// store holding the serialized cart, wishlist, vendor format preferences
// and presentational settings per account. It plays the role browser
// localStorage played for the web client, keyed by the authenticated owner.
package state

import (
	"context"
	"sync"
)

// Store persists one JSON blob per (owner, key) pair. Implementations must
// treat a missing key as (nil, false, nil), never as an error.
type Store interface {
	Get(ctx context.Context, owner, key string) ([]byte, bool, error)
	Set(ctx context.Context, owner, key string, value []byte) error
	Delete(ctx context.Context, owner, key string) error
}

// Memory is an in-process Store used by tests and local tooling.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Get(_ context.Context, owner, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[owner+"\x00"+key]
	if !ok {
		return nil, false, nil
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, true, nil
}

func (m *Memory) Set(_ context.Context, owner, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]byte, len(value))
	copy(copied, value)
	m.data[owner+"\x00"+key] = copied
	return nil
}

func (m *Memory) Delete(_ context.Context, owner, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, owner+"\x00"+key)
	return nil
}
